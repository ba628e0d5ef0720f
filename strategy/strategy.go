package strategy

import (
	"context"

	"github.com/CoolBanHub/minghe/intent"
	"github.com/CoolBanHub/minghe/knowledge"
	"github.com/CoolBanHub/minghe/memory"
	"github.com/CoolBanHub/minghe/model"
	"github.com/CoolBanHub/minghe/prompt"
	"github.com/gookit/slog"
)

// 工具名称，写入响应的 tools_used
const (
	ToolRAGRetrieval   = "rag_retrieval"
	ToolEmpathy        = "empathy_response"
	ToolIntervention   = "intervention"
	ToolLLMGeneration  = "llm_generation"
	MetaResponseSource = "response_source"
	SourceLLM          = "llm"
	SourceTemplate     = "template"
)

// Input 处理一条消息所需的上下文
type Input struct {
	Message       string
	MemoryContext string
	Profile       *memory.UserProfile
	// 之前步骤已使用的工具，写入系统提示词
	ToolsUsed []string
}

func (in *Input) ageGroup() memory.AgeGroup {
	if in.Profile == nil {
		return memory.AgeYoungAdult
	}
	return in.Profile.AgeGroup
}

type Output struct {
	Content   string
	ToolsUsed []string
	Metadata  map[string]any
}

// Handler 某一意图的回复策略，不返回错误，失败时自行回退到模板
type Handler interface {
	Handle(ctx context.Context, in *Input) *Output
}

type HandlerFunc func(ctx context.Context, in *Input) *Output

func (f HandlerFunc) Handle(ctx context.Context, in *Input) *Output {
	return f(ctx, in)
}

// Searcher 知识检索，*knowledge.Retriever 实现了该接口
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]*knowledge.Result, error)
}

type Option func(*Registry)

// WithGenerator nil 表示未配置模型，全部走模板
func WithGenerator(generator model.Generator) Option {
	return func(r *Registry) {
		r.generator = generator
	}
}

func WithPrompts(prompts *prompt.Library) Option {
	return func(r *Registry) {
		r.prompts = prompts
	}
}

func WithSearcher(searcher Searcher) Option {
	return func(r *Registry) {
		r.searcher = searcher
	}
}

// WithHandler 覆盖某一意图的默认策略
func WithHandler(i intent.Intent, h Handler) Option {
	return func(r *Registry) {
		r.overrides[i] = h
	}
}

// Registry 意图到策略的分发表
type Registry struct {
	generator model.Generator
	prompts   *prompt.Library
	searcher  Searcher

	handlers  map[intent.Intent]Handler
	overrides map[intent.Intent]Handler
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{overrides: make(map[intent.Intent]Handler)}
	for _, opt := range opts {
		opt(r)
	}
	if r.prompts == nil {
		r.prompts = prompt.NewLibrary()
	}

	r.handlers = map[intent.Intent]Handler{
		intent.KnowledgeQuery:   HandlerFunc(r.handleKnowledge),
		intent.EmotionalSupport: HandlerFunc(r.handleEmpathy),
		intent.HelpSeeking:      HandlerFunc(r.handleHelp),
		intent.PracticeRequest:  HandlerFunc(r.handlePractice),
		intent.GeneralChat:      HandlerFunc(r.handleGeneral),
	}
	for i, h := range r.overrides {
		r.handlers[i] = h
	}
	return r
}

// Handle 未注册的意图按普通聊天处理；处理器返回 nil 时使用普通聊天模板
func (r *Registry) Handle(ctx context.Context, i intent.Intent, in *Input) *Output {
	h, ok := r.handlers[i]
	if !ok {
		h = r.handlers[intent.GeneralChat]
	}
	out := h.Handle(ctx, in)
	if out == nil {
		slog.Warnf("意图 %s 的处理器未返回结果，使用默认回复", i)
		return templated(generalFallback)
	}
	if out.Metadata == nil {
		out.Metadata = make(map[string]any)
	}
	return out
}

// generate 生成失败只记录日志，返回 false 由调用方回退
func (r *Registry) generate(ctx context.Context, in *Input, userPrompt string) (string, bool) {
	if r.generator == nil {
		return "", false
	}
	system := prompt.BuildSystemPrompt(r.prompts.System(ctx), in.ageGroup(), in.MemoryContext, in.ToolsUsed)
	content, err := r.generator.Generate(ctx, system, userPrompt)
	if err != nil {
		slog.Warnf("LLM调用失败，使用备用响应: %s", err)
		return "", false
	}
	return content, true
}

func templated(content string, tools ...string) *Output {
	return &Output{
		Content:   content,
		ToolsUsed: tools,
		Metadata:  map[string]any{MetaResponseSource: SourceTemplate},
	}
}

func generated(content string, tools ...string) *Output {
	return &Output{
		Content:   content,
		ToolsUsed: append(tools, ToolLLMGeneration),
		Metadata:  map[string]any{MetaResponseSource: SourceLLM},
	}
}

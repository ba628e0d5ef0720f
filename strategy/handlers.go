package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/CoolBanHub/minghe/knowledge"
	"github.com/CoolBanHub/minghe/prompt"
	"github.com/gookit/slog"
)

const knowledgeTopK = 2

func (r *Registry) retrieve(ctx context.Context, query string) []*knowledge.Result {
	if r.searcher == nil {
		return nil
	}
	results, err := r.searcher.Search(ctx, query, knowledgeTopK)
	if err != nil {
		slog.Warnf("知识检索失败: %s", err)
		return nil
	}
	return results
}

// passagesText 每段为 "【描述】\n内容\n"，段间空一行
func passagesText(results []*knowledge.Result) string {
	parts := make([]string, 0, len(results))
	for _, res := range results {
		desc := res.Description
		if desc == "" {
			desc = "知识"
		}
		parts = append(parts, fmt.Sprintf("【%s】\n%s\n", desc, res.Content))
	}
	return strings.Join(parts, "\n\n")
}

func (r *Registry) handleKnowledge(ctx context.Context, in *Input) *Output {
	results := r.retrieve(ctx, in.Message)
	passages := passagesText(results)

	var out *Output
	userPrompt := prompt.RenderRAG(r.prompts.Get(ctx, prompt.NameRAG), passages, in.Message)
	if content, ok := r.generate(ctx, in, userPrompt); ok {
		out = generated(content, ToolRAGRetrieval)
	} else if passages != "" {
		out = templated(strings.Replace(knowledgeWithContextTemplate, "{context}", passages, 1), ToolRAGRetrieval)
	} else {
		out = templated(knowledgeMenu, ToolRAGRetrieval)
	}

	sources := make([]string, 0, len(results))
	for _, res := range results {
		sources = append(sources, res.Source)
	}
	out.Metadata["knowledge_sources"] = sources
	return out
}

func (r *Registry) handleEmpathy(ctx context.Context, in *Input) *Output {
	userPrompt := prompt.RenderWithMessage(r.prompts.Get(ctx, prompt.NameEmpathy), in.Message)
	if content, ok := r.generate(ctx, in, userPrompt); ok {
		return generated(content, ToolEmpathy)
	}
	return templated(empathyFallback, ToolEmpathy)
}

func (r *Registry) handleHelp(ctx context.Context, in *Input) *Output {
	userPrompt := prompt.RenderWithMessage(r.prompts.Get(ctx, prompt.NameHelp), in.Message)
	if content, ok := r.generate(ctx, in, userPrompt); ok {
		return generated(content)
	}
	return templated(helpMenu)
}

type exercise struct {
	name     string
	keywords []string
	script   string
}

// exercises 按顺序匹配
var exercises = []exercise{
	{name: "mindfulness", keywords: []string{"冥想", "正念"}, script: mindfulnessScript},
	{name: "breathing", keywords: []string{"呼吸", "放松"}, script: breathingScript},
	{name: "cbt", keywords: []string{"认知", "cbt", "思维"}, script: cbtScript},
	{name: "emotion_thermometer", keywords: []string{"情绪记录", "情绪日记", "记录情绪"}, script: emotionThermometerScript},
}

func matchExercise(message string) (exercise, bool) {
	lower := strings.ToLower(message)
	for _, ex := range exercises {
		for _, kw := range ex.keywords {
			if strings.Contains(lower, kw) {
				return ex, true
			}
		}
	}
	return exercise{}, false
}

// handlePractice 命中固定练习时直接返回脚本，不调用模型
func (r *Registry) handlePractice(ctx context.Context, in *Input) *Output {
	if ex, ok := matchExercise(in.Message); ok {
		out := templated(ex.script, ToolIntervention)
		out.Metadata["exercise"] = ex.name
		return out
	}
	if content, ok := r.generate(ctx, in, prompt.RenderGeneral(in.Message)); ok {
		return generated(content, ToolIntervention)
	}
	out := templated(practiceMenu, ToolIntervention)
	out.Metadata["exercise"] = "menu"
	return out
}

func (r *Registry) handleGeneral(ctx context.Context, in *Input) *Output {
	if content, ok := r.generate(ctx, in, prompt.RenderGeneral(in.Message)); ok {
		return generated(content)
	}
	return templated(generalFallback)
}

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/CoolBanHub/minghe/agent"
	mhcallbacks "github.com/CoolBanHub/minghe/callbacks"
	"github.com/CoolBanHub/minghe/config"
	"github.com/CoolBanHub/minghe/knowledge"
	"github.com/CoolBanHub/minghe/memory"
	"github.com/CoolBanHub/minghe/memory/storage"
	"github.com/CoolBanHub/minghe/metrics"
	"github.com/CoolBanHub/minghe/model"
	"github.com/CoolBanHub/minghe/pkg/langfuse"
	"github.com/CoolBanHub/minghe/prompt"
	"github.com/CoolBanHub/minghe/strategy"
	"github.com/cloudwego/eino/callbacks"
	"github.com/gookit/slog"
)

var registerCallbacks sync.Once

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	config.SetLogLevel(cfg)
	return cfg, nil
}

// newAgent 按配置组装各组件；未配置 API Key 时不创建模型，回复全部走模板
func newAgent(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*agent.Agent, error) {
	registerCallbacks.Do(func() {
		callbacks.AppendGlobalHandlers(mhcallbacks.NewChatModelCallback(m))
	})

	mem, err := memory.NewSystem(storage.NewMemoryStore(), &memory.Config{
		MaxMessages:     cfg.Memory.MaxMessages,
		ContextMessages: cfg.Memory.ContextMessages,
		SummaryInterval: cfg.Memory.SummaryInterval,
	})
	if err != nil {
		return nil, err
	}

	opts := []strategy.Option{
		strategy.WithPrompts(newPromptLibrary(cfg.Langfuse)),
		strategy.WithSearcher(newKnowledge(ctx, cfg.Knowledge)),
	}
	if cfg.LLM.APIKey == "" {
		slog.Warnf("未配置模型 API Key，将使用模板回复")
	} else {
		generator, err := newGenerator(cfg.LLM)
		if err != nil {
			return nil, err
		}
		opts = append(opts, strategy.WithGenerator(generator))
	}

	return agent.NewAgent(mem,
		agent.WithStrategies(strategy.NewRegistry(opts...)),
		agent.WithMetrics(m),
	)
}

func newGenerator(cfg config.LLMConfig) (*model.ChatGenerator, error) {
	cm, err := model.NewChatModel(
		model.WithPlatform(cfg.Platform),
		model.WithBaseUrl(cfg.BaseURL),
		model.WithAPIKey(cfg.APIKey),
		model.WithModel(cfg.Model),
		model.WithTemperature(cfg.Temperature),
		model.WithMaxTokens(cfg.MaxTokens),
		model.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("创建对话模型失败: %w", err)
	}
	return model.NewChatGenerator(cm,
		model.WithGenerateTimeout(cfg.Timeout),
		model.WithMaxConcurrency(cfg.MaxConcurrency),
		model.WithGenerateTemperature(cfg.Temperature),
		model.WithGenerateMaxTokens(cfg.MaxTokens),
	)
}

// newKnowledge 知识库加载失败不影响启动
func newKnowledge(ctx context.Context, cfg config.KnowledgeConfig) *knowledge.Retriever {
	retriever := knowledge.NewRetriever(
		knowledge.WithTopK(cfg.TopK),
		knowledge.WithChunking(cfg.ChunkSize, cfg.ChunkOverlap),
	)
	if err := retriever.Load(ctx, cfg.Path); err != nil {
		slog.Warnf("加载知识库失败: %s", err)
	}
	if len(cfg.URLs) > 0 {
		if err := retriever.LoadURLs(ctx, cfg.URLs); err != nil {
			slog.Warnf("部分远程知识加载失败: %s", err)
		}
	}
	return retriever
}

func newPromptLibrary(cfg config.LangfuseConfig) *prompt.Library {
	if !cfg.Enabled() {
		return prompt.NewLibrary()
	}
	slog.Infof("使用 langfuse 远程系统提示词: %s", cfg.PromptName)
	source := langfuse.New(cfg.PublicKey, cfg.SecretKey, cfg.Host)
	return prompt.NewLibrary(prompt.WithSource(source, map[string]string{
		prompt.NameSystem: cfg.PromptName,
	}))
}

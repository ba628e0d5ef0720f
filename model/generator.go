package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CoolBanHub/minghe/utils"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/sync/semaphore"
)

var ErrEmptyResponse = errors.New("模型返回内容为空")

// Generator 文本生成能力，调用方在出错时回退到模板回复
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type GeneratorOption func(*ChatGenerator)

func WithGenerateTimeout(timeout time.Duration) GeneratorOption {
	return func(g *ChatGenerator) {
		g.timeout = timeout
	}
}

// WithMaxConcurrency 同时进行的生成请求上限
func WithMaxConcurrency(n int) GeneratorOption {
	return func(g *ChatGenerator) {
		g.maxConcurrency = n
	}
}

func WithGenerateTemperature(temperature float32) GeneratorOption {
	return func(g *ChatGenerator) {
		g.temperature = temperature
	}
}

func WithGenerateMaxTokens(maxTokens int) GeneratorOption {
	return func(g *ChatGenerator) {
		g.maxTokens = maxTokens
	}
}

// ChatGenerator 用 eino 对话模型实现 Generator，单次调用受超时和并发上限约束
type ChatGenerator struct {
	cm             model.BaseChatModel
	timeout        time.Duration
	maxConcurrency int
	temperature    float32
	maxTokens      int

	sem *semaphore.Weighted
}

var _ Generator = (*ChatGenerator)(nil)

func NewChatGenerator(cm model.BaseChatModel, opts ...GeneratorOption) (*ChatGenerator, error) {
	if cm == nil {
		return nil, errors.New("对话模型不能为空")
	}
	g := &ChatGenerator{cm: cm}
	for _, opt := range opts {
		opt(g)
	}
	g.timeout = utils.PositiveOr(g.timeout, DefaultTimeout)
	g.maxConcurrency = utils.PositiveOr(g.maxConcurrency, 8)
	g.temperature = utils.PositiveOr(g.temperature, float32(DefaultTemperature))
	g.maxTokens = utils.PositiveOr(g.maxTokens, DefaultMaxTokens)
	g.sem = semaphore.NewWeighted(int64(g.maxConcurrency))
	return g, nil
}

// Generate 排队等待与模型调用共用同一个超时
func (g *ChatGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("等待生成配额失败: %w", err)
	}
	defer g.sem.Release(1)

	messages := make([]*schema.Message, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, schema.SystemMessage(systemPrompt))
	}
	messages = append(messages, schema.UserMessage(userPrompt))

	out, err := g.cm.Generate(ctx, messages,
		model.WithTemperature(g.temperature),
		model.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("模型生成失败: %w", err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(out.Content), nil
}

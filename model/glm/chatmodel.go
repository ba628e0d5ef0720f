package glm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/libs/acl/openai"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// 智谱开放平台 OpenAI 兼容接口
const DefaultBaseURL = "https://open.bigmodel.cn/api/paas/v4"

// thinking.type 取值
const (
	ThinkingEnabled  = "enabled"
	ThinkingDisabled = "disabled"
)

var _ model.ToolCallingChatModel = (*ChatModel)(nil)

type ChatModelConfig struct {
	// 必填
	APIKey string `json:"api_key"`
	// 设置 HTTPClient 时忽略
	Timeout    time.Duration `json:"timeout"`
	HTTPClient *http.Client  `json:"http_client"`
	// 为空时使用 DefaultBaseURL
	BaseURL string `json:"base_url"`
	// 必填，例如 glm-4.5-flash
	Model       string   `json:"model"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	TopP        *float32 `json:"top_p,omitempty"`
	Stop        []string `json:"stop,omitempty"`
	// 深度思考开关，nil 时由模型决定
	Thinking *string `json:"thinking,omitempty"`
}

// ChatModel 智谱 GLM 对话模型
type ChatModel struct {
	cli *openai.Client

	extraOptions *options
}

func NewChatModel(ctx context.Context, config *ChatModelConfig) (*ChatModel, error) {
	if config == nil {
		return nil, errors.New("GLM配置不能为空")
	}
	if config.Model == "" {
		return nil, errors.New("GLM模型名称不能为空")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cli, err := openai.NewClient(ctx, &openai.Config{
		BaseURL:     baseURL,
		APIKey:      config.APIKey,
		HTTPClient:  httpClient,
		Model:       config.Model,
		MaxTokens:   config.MaxTokens,
		Temperature: config.Temperature,
		TopP:        config.TopP,
		Stop:        config.Stop,
	})
	if err != nil {
		return nil, err
	}

	return &ChatModel{
		cli:          cli,
		extraOptions: &options{Thinking: config.Thinking},
	}, nil
}

func (cm *ChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	ctx = callbacks.EnsureRunInfo(ctx, cm.GetType(), components.ComponentOfChatModel)
	return cm.cli.Generate(ctx, in, cm.parseCustomOptions(opts...)...)
}

func (cm *ChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	ctx = callbacks.EnsureRunInfo(ctx, cm.GetType(), components.ComponentOfChatModel)
	return cm.cli.Stream(ctx, in, cm.parseCustomOptions(opts...)...)
}

func (cm *ChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	cli, err := cm.cli.WithToolsForClient(tools)
	if err != nil {
		return nil, err
	}
	return &ChatModel{cli: cli, extraOptions: cm.extraOptions}, nil
}

// parseCustomOptions 把 GLM 特有参数放进请求体的额外字段
func (cm *ChatModel) parseCustomOptions(opts ...model.Option) []model.Option {
	glmOpts := model.GetImplSpecificOptions(&options{
		Thinking: cm.extraOptions.Thinking,
	}, opts...)

	if glmOpts.Thinking == nil {
		return opts
	}
	return append(opts, openai.WithExtraFields(map[string]any{
		"thinking": map[string]any{"type": *glmOpts.Thinking},
	}))
}

func (cm *ChatModel) GetType() string {
	return "GLM"
}

func (cm *ChatModel) IsCallbacksEnabled() bool {
	return cm.cli.IsCallbacksEnabled()
}

package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/CoolBanHub/minghe/model/glm"
	"github.com/CoolBanHub/minghe/utils"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

var ErrEmptyAPIKey = errors.New("模型API Key不能为空")

// NewChatModel 按平台创建对话模型，未指定平台时按 DeepSeek 处理
func NewChatModel(opts ...OptionFunc) (model.ToolCallingChatModel, error) {
	o := &Option{}
	for _, opt := range opts {
		opt(o)
	}
	if o.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	o.Timeout = utils.PositiveOr(o.Timeout, DefaultTimeout)

	switch o.Platform {
	case PlatformGLM:
		return getChatByGLM(o)
	case PlatformOpenAI:
		return getChatByOpenai(o)
	case PlatformDeepSeek, "":
		if o.BaseUrl == "" {
			o.BaseUrl = DefaultDeepSeekBaseURL
		}
		if o.Model == "" {
			o.Model = DefaultDeepSeekModel
		}
		return getChatByOpenai(o)
	default:
		return nil, fmt.Errorf("不支持的模型平台: %s", o.Platform)
	}
}

func getChatByOpenai(o *Option) (model.ToolCallingChatModel, error) {
	param := &openai.ChatModelConfig{
		APIKey:  o.APIKey,
		BaseURL: o.BaseUrl,
		Model:   o.Model,
		Timeout: o.Timeout,
	}
	if o.ReasoningEffortLevel != "" {
		param.ReasoningEffort = openai.ReasoningEffortLevel(o.ReasoningEffortLevel)
	}
	if o.MaxTokens > 0 {
		param.MaxTokens = &o.MaxTokens
	}
	if o.Temperature > 0 {
		param.Temperature = &o.Temperature
	}
	cm, err := openai.NewChatModel(context.Background(), param)
	if err != nil {
		return nil, err
	}
	return cm, nil
}

func getChatByGLM(o *Option) (model.ToolCallingChatModel, error) {
	if o.Model == "" {
		o.Model = "glm-4.5-flash"
	}
	param := &glm.ChatModelConfig{
		APIKey:  o.APIKey,
		BaseURL: o.BaseUrl,
		Model:   o.Model,
		Timeout: o.Timeout,
	}
	if o.MaxTokens > 0 {
		param.MaxTokens = &o.MaxTokens
	}
	if o.Temperature > 0 {
		param.Temperature = &o.Temperature
	}
	if o.Thinking != "" {
		param.Thinking = &o.Thinking
	}
	cm, err := glm.NewChatModel(context.Background(), param)
	if err != nil {
		return nil, err
	}
	return cm, nil
}

package model

import "time"

// 支持的模型平台
const (
	PlatformDeepSeek = "deepseek"
	PlatformOpenAI   = "openai"
	PlatformGLM      = "glm"
)

// DeepSeek 默认接入参数
const (
	DefaultDeepSeekBaseURL = "https://api.deepseek.com/v1"
	DefaultDeepSeekModel   = "deepseek-chat"
	DefaultTemperature     = 0.7
	DefaultMaxTokens       = 2000
	DefaultTimeout         = 60 * time.Second
)

type Option struct {
	Platform             string
	Model                string
	BaseUrl              string
	APIKey               string `json:"apiKey"`
	MaxTokens            int
	Temperature          float32
	Timeout              time.Duration
	ReasoningEffortLevel string
	// 仅 GLM 使用
	Thinking string
}

type OptionFunc func(option *Option)

func WithPlatform(platform string) OptionFunc {
	return func(option *Option) {
		option.Platform = platform
	}
}

func WithModel(model string) OptionFunc {
	return func(option *Option) {
		option.Model = model
	}
}

func WithBaseUrl(baseUrl string) OptionFunc {
	return func(option *Option) {
		option.BaseUrl = baseUrl
	}
}

func WithAPIKey(apiKey string) OptionFunc {
	return func(option *Option) {
		option.APIKey = apiKey
	}
}

func WithMaxTokens(maxTokens int) OptionFunc {
	return func(option *Option) {
		option.MaxTokens = maxTokens
	}
}

func WithTemperature(temperature float32) OptionFunc {
	return func(option *Option) {
		option.Temperature = temperature
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(option *Option) {
		option.Timeout = timeout
	}
}

func WithReasoningEffortLevel(level string) OptionFunc {
	return func(option *Option) {
		option.ReasoningEffortLevel = level
	}
}

func WithThinking(thinking string) OptionFunc {
	return func(option *Option) {
		option.Thinking = thinking
	}
}

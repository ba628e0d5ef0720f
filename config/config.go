package config

import (
	"errors"
	"strings"
	"time"

	"github.com/gookit/slog"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "MINGHE"

// Config 应用配置，字段均可通过 MINGHE_<SECTION>_<KEY> 环境变量覆盖
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Memory    MemoryConfig    `mapstructure:"memory"`
	Langfuse  LangfuseConfig  `mapstructure:"langfuse"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type LLMConfig struct {
	// deepseek、openai 或 glm
	Platform string `mapstructure:"platform"`
	BaseURL  string `mapstructure:"base_url"`
	// 为空时不调用模型，全部使用模板回复
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	Temperature    float32       `mapstructure:"temperature"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
}

type KnowledgeConfig struct {
	Path string `mapstructure:"path"`
	TopK int    `mapstructure:"top_k"`
	// 大于0时按字符数切分文档
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
	// 类别 -> 远程文档地址
	URLs map[string][]string `mapstructure:"urls"`
}

type MemoryConfig struct {
	MaxMessages     int `mapstructure:"max_messages"`
	SummaryInterval int `mapstructure:"summary_interval"`
	ContextMessages int `mapstructure:"context_messages"`
}

type LangfuseConfig struct {
	Host      string `mapstructure:"host"`
	PublicKey string `mapstructure:"public_key"`
	SecretKey string `mapstructure:"secret_key"`
	// 远程系统提示词名称，为空时使用内置提示词
	PromptName string `mapstructure:"prompt_name"`
}

// Enabled 地址、密钥和提示词名称都配置后才启用远程提示词
func (c LangfuseConfig) Enabled() bool {
	return c.Host != "" && c.PublicKey != "" && c.SecretKey != "" && c.PromptName != ""
}

var defaults = map[string]any{
	"server.port":             8000,
	"server.request_timeout":  90 * time.Second,
	"log.level":               "info",
	"llm.platform":            "deepseek",
	"llm.base_url":            "",
	"llm.api_key":             "",
	"llm.model":               "",
	"llm.temperature":         0.7,
	"llm.max_tokens":          2000,
	"llm.timeout":             60 * time.Second,
	"llm.max_concurrency":     8,
	"knowledge.path":          "knowledge_base",
	"knowledge.top_k":         3,
	"knowledge.chunk_size":    0,
	"knowledge.chunk_overlap": 0,
	"memory.max_messages":     50,
	"memory.summary_interval": 10,
	"memory.context_messages": 10,
	"langfuse.host":           "",
	"langfuse.public_key":     "",
	"langfuse.secret_key":     "",
	"langfuse.prompt_name":    "",
}

// LoadConfig 读取配置文件和环境变量。configFile 为空时在当前目录查找 config.yaml，找不到则只用默认值和环境变量
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		slog.Infof("未找到配置文件，使用默认配置")
	}

	// 环境变量优先于配置文件
	loadDotEnv()

	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "DEEPSEEK_API_KEY"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debugf(".env 文件不存在或无法读取")
	}
}

// SetLogLevel 按配置设置日志级别，无法识别时使用 info
func SetLogLevel(cfg *Config) {
	level := slog.LevelByName(cfg.Log.Level)
	slog.SetLogLevel(level)
	slog.Infof("Log level set to: %s", level)
}

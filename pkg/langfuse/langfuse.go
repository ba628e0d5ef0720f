package langfuse

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gookit/slog"
	"gopkg.in/resty.v1"
)

// Langfuse 只读取提示词管理接口
type Langfuse struct {
	pk     string
	sk     string
	host   string
	client *resty.Client
}

func New(pk string, sk string, host string) *Langfuse {
	return &Langfuse{
		pk:     pk,
		sk:     sk,
		host:   strings.TrimRight(host, "/"),
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

// GetPrompt 获取生产标签下的文本提示词
func (l *Langfuse) GetPrompt(ctx context.Context, promptName string) (string, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetBasicAuth(l.pk, l.sk).
		Get(l.host + "/api/public/v2/prompts/" + url.PathEscape(promptName))
	if err != nil {
		return "", fmt.Errorf("get prompt fail: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return "", fmt.Errorf("get prompt fail, status:%d", resp.StatusCode())
	}

	res := &GetPromptResponse{}
	if err := sonic.Unmarshal(resp.Body(), res); err != nil {
		return "", fmt.Errorf("unmarshal prompt fail: %w", err)
	}
	if res.Type != "" && res.Type != "text" {
		slog.Warnf("langfuse prompt %s type is %s, only text prompts are used", promptName, res.Type)
		return "", fmt.Errorf("unsupported prompt type: %s", res.Type)
	}
	return res.Prompt, nil
}

type GetPromptResponse struct {
	Id        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ProjectId string    `json:"projectId"`
	Prompt    string    `json:"prompt"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	Type      string    `json:"type"`
	Labels    []string  `json:"labels"`
}

package prompt

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gookit/slog"
)

// 提示词名称
const (
	NameSystem  = "system"
	NameEmpathy = "empathy"
	NameHelp    = "help"
	NameRAG     = "rag"
	NameCrisis  = "crisis"
)

var builtin = map[string]string{
	NameSystem:  SystemPrompt,
	NameEmpathy: EmpathyResponsePrompt,
	NameHelp:    HelpResponsePrompt,
	NameRAG:     RAGPromptTemplate,
	NameCrisis:  CrisisResponsePrompt,
}

// Source 远程提示词来源，例如 langfuse
type Source interface {
	GetPrompt(ctx context.Context, name string) (string, error)
}

type LibraryOption func(*Library)

// WithSource remoteNames 把内置名称映射到远程提示词名称，未映射的名称只用内置版本
func WithSource(source Source, remoteNames map[string]string) LibraryOption {
	return func(l *Library) {
		l.source = source
		for k, v := range remoteNames {
			if v != "" {
				l.remoteNames[k] = v
			}
		}
	}
}

func WithCacheTTL(ttl time.Duration) LibraryOption {
	return func(l *Library) {
		l.ttl = ttl
	}
}

type cached struct {
	text      string
	expiresAt time.Time
}

// Library 按名称取提示词：远程可用时优先远程并缓存，失败时用内置版本
type Library struct {
	source      Source
	remoteNames map[string]string
	ttl         time.Duration

	mu    sync.RWMutex
	cache map[string]cached
}

func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		remoteNames: make(map[string]string),
		ttl:         5 * time.Minute,
		cache:       make(map[string]cached),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) Get(ctx context.Context, name string) string {
	if l == nil || l.source == nil {
		return builtin[name]
	}
	remote, ok := l.remoteNames[name]
	if !ok {
		return builtin[name]
	}

	now := time.Now()
	l.mu.RLock()
	c, hit := l.cache[name]
	l.mu.RUnlock()
	if hit && now.Before(c.expiresAt) {
		return c.text
	}

	text, err := l.source.GetPrompt(ctx, remote)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			slog.Warnf("获取远程提示词 %s 失败，使用内置版本: %s", remote, err)
		}
		// 失败时沿用上次的远程版本，同样缓存 ttl
		text = builtin[name]
		if hit {
			text = c.text
		}
	}

	l.mu.Lock()
	l.cache[name] = cached{text: text, expiresAt: now.Add(l.ttl)}
	l.mu.Unlock()
	return text
}

func (l *Library) System(ctx context.Context) string {
	return l.Get(ctx, NameSystem)
}

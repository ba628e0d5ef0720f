package memory

import (
	"context"
	"strings"
)

// System 统一的记忆系统，整合短期记忆和长期记忆
type System struct {
	config    Config
	shortTerm *ShortTermMemory
	longTerm  *LongTermMemory
}

// NewSystem 创建记忆系统，config为nil时使用默认配置
func NewSystem(storage Storage, config *Config) (*System, error) {
	cfg := config.withDefaults()
	longTerm, err := NewLongTermMemory(storage, &cfg)
	if err != nil {
		return nil, err
	}
	return &System{
		config:    cfg,
		shortTerm: NewShortTermMemory(cfg.MaxMessages),
		longTerm:  longTerm,
	}, nil
}

func (s *System) ShortTerm() *ShortTermMemory {
	return s.shortTerm
}

func (s *System) LongTerm() *LongTermMemory {
	return s.longTerm
}

// AddUserMessage 记录用户消息到会话
func (s *System) AddUserMessage(ctx context.Context, sessionID, userID, content string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	_, err := s.shortTerm.AddMessage(sessionID, RoleUser, content, map[string]any{"userId": userID})
	return err
}

// AddAssistantMessage 记录助手消息到会话，同时向长期记忆追加一条交互记录
// 交互记录中的用户消息取自该会话最近一条用户消息
func (s *System) AddAssistantMessage(ctx context.Context, sessionID, userID, content, intent, emotion string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	_, err := s.shortTerm.AddMessage(sessionID, RoleAssistant, content, map[string]any{
		"intent":  intent,
		"emotion": emotion,
	})
	if err != nil {
		return err
	}

	return s.longTerm.SaveInteraction(ctx, &Interaction{
		UserID:    userID,
		SessionID: sessionID,
		Message:   s.shortTerm.LastUserMessage(sessionID),
		Response:  content,
		Intent:    intent,
		Emotion:   emotion,
	})
}

// ConversationContext 组合长期记忆摘要和当前会话上下文
func (s *System) ConversationContext(ctx context.Context, sessionID, userID string) (string, error) {
	shortContext := s.shortTerm.ConversationContext(sessionID, s.config.ContextMessages)

	longSummary := ""
	if userID != "" {
		var err error
		longSummary, err = s.longTerm.MemorySummary(ctx, userID)
		if err != nil {
			return "", err
		}
	}

	var parts []string
	if longSummary != "" {
		parts = append(parts, "【用户历史】"+longSummary)
	}
	if shortContext != "" {
		parts = append(parts, "【当前对话】\n"+shortContext)
	}
	return strings.Join(parts, "\n\n"), nil
}

// UserProfile 获取用户画像，不存在时创建
func (s *System) UserProfile(ctx context.Context, userID string) (*UserProfile, error) {
	return s.longTerm.GetOrCreateProfile(ctx, userID)
}

// UpdateUserProfile 部分更新用户画像
func (s *System) UpdateUserProfile(ctx context.Context, userID string, update *ProfileUpdate) (*UserProfile, error) {
	return s.longTerm.UpdateProfile(ctx, userID, update)
}

// SearchMemory 搜索用户的交互历史
func (s *System) SearchMemory(ctx context.Context, userID, query string) ([]*Interaction, error) {
	return s.longTerm.SearchInteractions(ctx, userID, query)
}

// RecentInteractions 最近的交互记录
func (s *System) RecentInteractions(ctx context.Context, userID string, limit int) ([]*Interaction, error) {
	return s.longTerm.RecentInteractions(ctx, userID, limit)
}

// ClearSession 清除会话的短期记忆，长期记忆不受影响
func (s *System) ClearSession(sessionID string) bool {
	return s.shortTerm.ClearSession(sessionID)
}

// SessionCount 活跃会话数
func (s *System) SessionCount() int {
	return s.shortTerm.SessionCount()
}

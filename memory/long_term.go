package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/CoolBanHub/minghe/pkg/shardmap"
	"github.com/CoolBanHub/minghe/utils"
	"github.com/gookit/slog"
)

// LongTermMemory 长期记忆，跨会话保存用户画像、交互历史和记忆摘要
type LongTermMemory struct {
	storage Storage
	config  Config
	trigger SummaryTrigger

	// 按用户串行化"追加交互再重算摘要"和"创建画像"这类组合操作
	userLocks *shardmap.Map[*sync.Mutex]
}

func NewLongTermMemory(storage Storage, config *Config) (*LongTermMemory, error) {
	if storage == nil {
		return nil, errors.New("存储不能为空")
	}
	cfg := config.withDefaults()
	return &LongTermMemory{
		storage:   storage,
		config:    cfg,
		trigger:   NewSummaryTrigger(cfg.SummaryInterval),
		userLocks: shardmap.New[*sync.Mutex](0),
	}, nil
}

func (m *LongTermMemory) lockUser(userID string) func() {
	mu := m.userLocks.Update(userID, func(mu *sync.Mutex, ok bool) *sync.Mutex {
		if !ok {
			mu = &sync.Mutex{}
		}
		return mu
	})
	mu.Lock()
	return mu.Unlock
}

// GetOrCreateProfile 获取用户画像，不存在时创建默认画像
func (m *LongTermMemory) GetOrCreateProfile(ctx context.Context, userID string) (*UserProfile, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	unlock := m.lockUser(userID)
	defer unlock()
	return m.getOrCreateLocked(ctx, userID)
}

func (m *LongTermMemory) getOrCreateLocked(ctx context.Context, userID string) (*UserProfile, error) {
	profile, err := m.storage.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("获取用户画像失败: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile = NewUserProfile(userID)
	if err = m.storage.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("创建用户画像失败: %w", err)
	}
	return profile.Clone(), nil
}

// GetProfile 获取用户画像，不存在时返回nil
func (m *LongTermMemory) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return m.storage.GetProfile(ctx, userID)
}

// UpdateProfile 部分更新用户画像，画像不存在时先创建
func (m *LongTermMemory) UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*UserProfile, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	unlock := m.lockUser(userID)
	defer unlock()

	profile, err := m.getOrCreateLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err = update.Apply(profile); err != nil {
		return nil, err
	}
	if err = m.storage.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("更新用户画像失败: %w", err)
	}
	return profile.Clone(), nil
}

// SaveInteraction 追加交互记录，总数到达摘要间隔的倍数时重算摘要
func (m *LongTermMemory) SaveInteraction(ctx context.Context, interaction *Interaction) error {
	if interaction == nil {
		return errors.New("交互记录不能为空")
	}
	if interaction.UserID == "" {
		return ErrEmptyUserID
	}
	if interaction.ID == "" {
		interaction.ID = utils.GetULID()
	}
	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = time.Now()
	}
	if interaction.Metadata == nil {
		interaction.Metadata = map[string]any{}
	}

	unlock := m.lockUser(interaction.UserID)
	defer unlock()

	count, err := m.storage.AppendInteraction(ctx, interaction)
	if err != nil {
		return fmt.Errorf("保存交互记录失败: %w", err)
	}
	if !m.trigger.ShouldTrigger(count) {
		return nil
	}

	history, err := m.storage.GetInteractions(ctx, interaction.UserID, 0)
	if err != nil {
		return fmt.Errorf("读取交互历史失败: %w", err)
	}
	summary := &Summary{
		UserID:           interaction.UserID,
		Content:          buildSummary(history, m.config.SummaryWindow),
		InteractionCount: len(history),
		UpdatedAt:        time.Now(),
	}
	if err = m.storage.SaveSummary(ctx, summary); err != nil {
		return fmt.Errorf("保存记忆摘要失败: %w", err)
	}
	slog.Debugf("记忆摘要已更新: user=%s, count=%d", interaction.UserID, len(history))
	return nil
}

// MemorySummary 获取记忆摘要文本，没有摘要时返回空串
func (m *LongTermMemory) MemorySummary(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrEmptyUserID
	}
	summary, err := m.storage.GetSummary(ctx, userID)
	if err != nil {
		return "", err
	}
	if summary == nil {
		return "", nil
	}
	return summary.Content, nil
}

// RecentInteractions 最近limit条交互记录
func (m *LongTermMemory) RecentInteractions(ctx context.Context, userID string, limit int) ([]*Interaction, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if limit <= 0 {
		limit = 10
	}
	return m.storage.GetInteractions(ctx, userID, limit)
}

// SearchInteractions 在消息和回复中按子串搜索，忽略大小写，返回最近的匹配
func (m *LongTermMemory) SearchInteractions(ctx context.Context, userID string, query string) ([]*Interaction, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	history, err := m.storage.GetInteractions(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []*Interaction
	for _, h := range history {
		if strings.Contains(strings.ToLower(h.Message), q) || strings.Contains(strings.ToLower(h.Response), q) {
			results = append(results, h)
		}
	}
	if len(results) > m.config.SearchLimit {
		results = results[len(results)-m.config.SearchLimit:]
	}
	return results, nil
}

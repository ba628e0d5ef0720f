package storage

import (
	"context"
	"errors"
	"time"

	"github.com/CoolBanHub/minghe/memory"
	"github.com/CoolBanHub/minghe/pkg/shardmap"
)

var _ memory.Storage = (*MemoryStore)(nil)

// userRecord 一个用户的全部长期记忆
type userRecord struct {
	profile      *memory.UserProfile
	interactions []*memory.Interaction
	summary      *memory.Summary
}

// MemoryStore 内存存储实现
// 按用户分片加锁，进程重启后数据清空
type MemoryStore struct {
	users *shardmap.Map[*userRecord]
}

// NewMemoryStore 创建新的内存存储实例
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: shardmap.New[*userRecord](0),
	}
}

func getOrInit(r *userRecord, ok bool) *userRecord {
	if !ok || r == nil {
		return &userRecord{}
	}
	return r
}

// GetProfile 获取用户画像
func (m *MemoryStore) GetProfile(ctx context.Context, userID string) (*memory.UserProfile, error) {
	if userID == "" {
		return nil, memory.ErrEmptyUserID
	}

	var profile *memory.UserProfile
	m.users.View(userID, func(r *userRecord, ok bool) {
		if ok && r.profile != nil {
			profile = r.profile.Clone()
		}
	})
	return profile, nil
}

// SaveProfile 保存用户画像
func (m *MemoryStore) SaveProfile(ctx context.Context, profile *memory.UserProfile) error {
	if profile == nil {
		return errors.New("用户画像不能为空")
	}
	if profile.UserID == "" {
		return memory.ErrEmptyUserID
	}

	now := time.Now()
	stored := profile.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}

	m.users.Update(profile.UserID, func(r *userRecord, ok bool) *userRecord {
		r = getOrInit(r, ok)
		r.profile = stored
		return r
	})
	return nil
}

// AppendInteraction 追加交互记录
func (m *MemoryStore) AppendInteraction(ctx context.Context, interaction *memory.Interaction) (int, error) {
	if interaction == nil {
		return 0, errors.New("交互记录不能为空")
	}
	if interaction.UserID == "" {
		return 0, memory.ErrEmptyUserID
	}

	stored := *interaction
	count := 0
	m.users.Update(interaction.UserID, func(r *userRecord, ok bool) *userRecord {
		r = getOrInit(r, ok)
		r.interactions = append(r.interactions, &stored)
		count = len(r.interactions)
		return r
	})
	return count, nil
}

// GetInteractions 获取最近的交互记录
func (m *MemoryStore) GetInteractions(ctx context.Context, userID string, limit int) ([]*memory.Interaction, error) {
	if userID == "" {
		return nil, memory.ErrEmptyUserID
	}

	var out []*memory.Interaction
	m.users.View(userID, func(r *userRecord, ok bool) {
		if !ok {
			return
		}
		history := r.interactions
		if limit > 0 && len(history) > limit {
			history = history[len(history)-limit:]
		}
		out = make([]*memory.Interaction, 0, len(history))
		for _, h := range history {
			c := *h
			out = append(out, &c)
		}
	})
	if out == nil {
		out = []*memory.Interaction{}
	}
	return out, nil
}

// SaveSummary 保存记忆摘要
func (m *MemoryStore) SaveSummary(ctx context.Context, summary *memory.Summary) error {
	if summary == nil {
		return errors.New("记忆摘要不能为空")
	}
	if summary.UserID == "" {
		return memory.ErrEmptyUserID
	}

	stored := *summary
	m.users.Update(summary.UserID, func(r *userRecord, ok bool) *userRecord {
		r = getOrInit(r, ok)
		r.summary = &stored
		return r
	})
	return nil
}

// GetSummary 获取记忆摘要
func (m *MemoryStore) GetSummary(ctx context.Context, userID string) (*memory.Summary, error) {
	if userID == "" {
		return nil, memory.ErrEmptyUserID
	}

	var summary *memory.Summary
	m.users.View(userID, func(r *userRecord, ok bool) {
		if ok && r.summary != nil {
			c := *r.summary
			summary = &c
		}
	})
	return summary, nil
}

// UserCount 已有记忆的用户数
func (m *MemoryStore) UserCount() int {
	return m.users.Len()
}

func (m *MemoryStore) Close() error {
	return nil
}

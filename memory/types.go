package memory

import (
	"errors"
	"time"
)

var (
	ErrEmptyUserID    = errors.New("用户ID不能为空")
	ErrEmptySessionID = errors.New("会话ID不能为空")
	ErrInvalidAge     = errors.New("年龄段无效")
)

// Role 消息角色
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message 会话缓冲区中的一条消息，只属于创建它的会话
type Message struct {
	ID        string         `json:"id"`
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AgeGroup 年龄段
type AgeGroup string

const (
	// AgeAdolescent 13-18岁
	AgeAdolescent AgeGroup = "adolescent"
	// AgeYoungAdult 18-35岁
	AgeYoungAdult AgeGroup = "young_adult"
	// AgeMiddleAdult 35-60岁
	AgeMiddleAdult AgeGroup = "middle_adult"
	// AgeSenior 60岁以上
	AgeSenior AgeGroup = "senior"
)

func (a AgeGroup) Valid() bool {
	switch a {
	case AgeAdolescent, AgeYoungAdult, AgeMiddleAdult, AgeSenior:
		return true
	}
	return false
}

// UserProfile 用户画像，首次访问时创建，之后原地更新，不会删除
type UserProfile struct {
	UserID          string         `json:"userId"`
	AgeGroup        AgeGroup       `json:"ageGroup"`
	Name            string         `json:"name,omitempty"`
	Preferences     map[string]any `json:"preferences"`
	Characteristics []string       `json:"characteristics"`
	CommonStressors []string       `json:"commonStressors"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func NewUserProfile(userID string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		UserID:          userID,
		AgeGroup:        AgeYoungAdult,
		Preferences:     map[string]any{},
		Characteristics: []string{},
		CommonStressors: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Clone 深拷贝，存储层对外只暴露副本
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Preferences = make(map[string]any, len(p.Preferences))
	for k, v := range p.Preferences {
		c.Preferences[k] = v
	}
	c.Characteristics = append([]string{}, p.Characteristics...)
	c.CommonStressors = append([]string{}, p.CommonStressors...)
	return &c
}

// ProfileUpdate 画像的部分更新，nil字段保持不变
type ProfileUpdate struct {
	AgeGroup        *AgeGroup      `json:"ageGroup,omitempty"`
	Name            *string        `json:"name,omitempty"`
	Preferences     map[string]any `json:"preferences,omitempty"`
	Characteristics []string       `json:"characteristics,omitempty"`
	CommonStressors []string       `json:"commonStressors,omitempty"`
}

// Apply 把更新写入画像并刷新UpdatedAt
func (u *ProfileUpdate) Apply(p *UserProfile) error {
	if u != nil {
		if u.AgeGroup != nil {
			if !u.AgeGroup.Valid() {
				return ErrInvalidAge
			}
			p.AgeGroup = *u.AgeGroup
		}
		if u.Name != nil {
			p.Name = *u.Name
		}
		if u.Preferences != nil {
			p.Preferences = u.Preferences
		}
		if u.Characteristics != nil {
			p.Characteristics = u.Characteristics
		}
		if u.CommonStressors != nil {
			p.CommonStressors = u.CommonStressors
		}
	}
	p.UpdatedAt = time.Now()
	return nil
}

// Interaction 一轮交互记录，按时间追加到用户的长期历史
type Interaction struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	SessionID string         `json:"sessionId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Message   string         `json:"message"`
	Response  string         `json:"response"`
	Intent    string         `json:"intent,omitempty"`
	Emotion   string         `json:"emotion,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Summary 用户记忆摘要，每次重算覆盖旧值
type Summary struct {
	UserID           string    `json:"userId"`
	Content          string    `json:"content"`
	InteractionCount int       `json:"interactionCount"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Config 记忆配置
type Config struct {
	// 每个会话保留的非系统消息数
	MaxMessages int `json:"maxMessages"`
	// 对话上下文渲染的最近消息数
	ContextMessages int `json:"contextMessages"`
	// 每保存多少条交互重算一次摘要
	SummaryInterval int `json:"summaryInterval"`
	// 摘要取最近多少个意图/情绪
	SummaryWindow int `json:"summaryWindow"`
	// 记忆搜索返回的最大条数
	SearchLimit int `json:"searchLimit"`
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.MaxMessages <= 0 {
		out.MaxMessages = 50
	}
	if out.ContextMessages <= 0 {
		out.ContextMessages = 10
	}
	if out.SummaryInterval <= 0 {
		out.SummaryInterval = 10
	}
	if out.SummaryWindow <= 0 {
		out.SummaryWindow = 5
	}
	if out.SearchLimit <= 0 {
		out.SearchLimit = 10
	}
	return out
}

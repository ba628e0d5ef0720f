package memory

import (
	"strings"
	"time"

	"github.com/CoolBanHub/minghe/pkg/shardmap"
	"github.com/CoolBanHub/minghe/utils"
)

type sessionBuffer struct {
	messages []*Message
}

// ShortTermMemory 短期记忆，按会话保存最近的对话消息
type ShortTermMemory struct {
	maxMessages int
	sessions    *shardmap.Map[*sessionBuffer]
}

func NewShortTermMemory(maxMessages int) *ShortTermMemory {
	if maxMessages <= 0 {
		maxMessages = 50
	}
	return &ShortTermMemory{
		maxMessages: maxMessages,
		sessions:    shardmap.New[*sessionBuffer](0),
	}
}

// AddMessage 添加消息到会话，超过上限时裁剪
func (m *ShortTermMemory) AddMessage(sessionID string, role Role, content string, metadata map[string]any) (*Message, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	msg := &Message{
		ID:        utils.GetULID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}

	m.sessions.Update(sessionID, func(buf *sessionBuffer, ok bool) *sessionBuffer {
		if !ok {
			buf = &sessionBuffer{}
		}
		buf.messages = append(buf.messages, msg)
		buf.messages = trimMessages(buf.messages, m.maxMessages)
		return buf
	})
	return msg, nil
}

// trimMessages 保留全部系统消息和最近max条非系统消息，相对顺序不变
// 系统消息本身超过max时总数会超过max，这是预期行为
func trimMessages(messages []*Message, max int) []*Message {
	if len(messages) <= max {
		return messages
	}

	others := 0
	for _, msg := range messages {
		if msg.Role != RoleSystem {
			others++
		}
	}
	drop := others - max
	if drop <= 0 {
		return messages
	}

	out := make([]*Message, 0, len(messages)-drop)
	for _, msg := range messages {
		if msg.Role != RoleSystem && drop > 0 {
			drop--
			continue
		}
		out = append(out, msg)
	}
	return out
}

// Messages 获取会话消息副本
func (m *ShortTermMemory) Messages(sessionID string, includeSystem bool) []*Message {
	var out []*Message
	m.sessions.View(sessionID, func(buf *sessionBuffer, ok bool) {
		if !ok {
			return
		}
		out = make([]*Message, 0, len(buf.messages))
		for _, msg := range buf.messages {
			if !includeSystem && msg.Role == RoleSystem {
				continue
			}
			out = append(out, msg)
		}
	})
	return out
}

// LastUserMessage 会话中最近一条用户消息的内容
func (m *ShortTermMemory) LastUserMessage(sessionID string) string {
	content := ""
	m.sessions.View(sessionID, func(buf *sessionBuffer, ok bool) {
		if !ok {
			return
		}
		for i := len(buf.messages) - 1; i >= 0; i-- {
			if buf.messages[i].Role == RoleUser {
				content = buf.messages[i].Content
				return
			}
		}
	})
	return content
}

// ConversationContext 最近lastN条消息渲染为 "角色: 内容" 行
func (m *ShortTermMemory) ConversationContext(sessionID string, lastN int) string {
	messages := m.Messages(sessionID, true)
	if len(messages) == 0 {
		return ""
	}
	if lastN > 0 && len(messages) > lastN {
		messages = messages[len(messages)-lastN:]
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, roleLabel(msg.Role)+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

func roleLabel(role Role) string {
	if role == RoleUser {
		return "用户"
	}
	return "助手"
}

// ClearSession 清除会话
func (m *ShortTermMemory) ClearSession(sessionID string) bool {
	return m.sessions.Delete(sessionID)
}

// SessionCount 活跃会话数
func (m *ShortTermMemory) SessionCount() int {
	return m.sessions.Len()
}

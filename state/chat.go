package state

import (
	"context"
)

// ChatState 一轮对话的标识信息，随 context 传给生成模型回调
type ChatState struct {
	UserID    string
	SessionID string
	Intent    string
}

type chatStateKey struct{}

func WithChatState(ctx context.Context, state *ChatState) context.Context {
	return context.WithValue(ctx, chatStateKey{}, state)
}

func GetChatState(ctx context.Context) *ChatState {
	state, _ := ctx.Value(chatStateKey{}).(*ChatState)
	return state
}

// GetSessionID 从 context 中获取 sessionID 的便捷方法
func GetSessionID(ctx context.Context) string {
	if state := GetChatState(ctx); state != nil {
		return state.SessionID
	}
	return ""
}

// GetUserID 从 context 中获取 userID 的便捷方法
func GetUserID(ctx context.Context) string {
	if state := GetChatState(ctx); state != nil {
		return state.UserID
	}
	return ""
}

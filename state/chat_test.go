package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatState(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetChatState(ctx))
	assert.Equal(t, "", GetSessionID(ctx))

	ctx = WithChatState(ctx, &ChatState{UserID: "u1", SessionID: "s1", Intent: "general_chat"})
	assert.Equal(t, "u1", GetUserID(ctx))
	assert.Equal(t, "s1", GetSessionID(ctx))
	assert.Equal(t, "general_chat", GetChatState(ctx).Intent)

	// 字符串键不会冲突
	ctx = context.WithValue(ctx, "chat_context", "x")
	assert.Equal(t, "s1", GetSessionID(ctx))
}

package utils

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GetULID 按时间有序的消息、交互记录ID
func GetULID() string {
	return ulid.Make().String()
}

// NewSessionID 调用方未提供会话ID时生成
func NewSessionID() string {
	return uuid.NewString()
}

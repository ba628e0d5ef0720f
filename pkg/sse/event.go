package sse

import (
	"strconv"
	"strings"
	"time"
)

// Event 一条 server-sent event，空字段不输出
type Event struct {
	ID    string
	Type  string
	Data  string
	Retry time.Duration
}

// String 按 text/event-stream 格式编码，多行数据拆成多个 data 字段
func (e *Event) String() string {
	var b strings.Builder
	if e.ID != "" {
		b.WriteString("id: " + e.ID + "\n")
	}
	if e.Type != "" {
		b.WriteString("event: " + e.Type + "\n")
	}
	for _, line := range splitLines(e.Data) {
		b.WriteString("data: " + line + "\n")
	}
	if e.Retry > 0 {
		b.WriteString("retry: " + strconv.FormatInt(e.Retry.Milliseconds(), 10) + "\n")
	}
	b.WriteByte('\n')
	return b.String()
}

func splitLines(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.ReplaceAll(data, "\r", "\n")
	return strings.Split(data, "\n")
}

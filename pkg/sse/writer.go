package sse

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

const (
	MIMEType = "text/event-stream"

	EventMeta    = "meta"
	EventMessage = "message"
	EventError   = "error"
)

var ErrClosed = errors.New("sse writer已关闭")

type Writer struct {
	id      string
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

// NewWriter ResponseWriter 不支持 Flush 时返回 nil
func NewWriter(id string, w http.ResponseWriter) *Writer {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil
	}

	w.Header().Set("Content-Type", MIMEType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	return &Writer{id: id, w: w, flusher: flusher}
}

func (w *Writer) Close() {
	w.closed = true
}

func (w *Writer) IsClosed() bool {
	return w.closed
}

func (w *Writer) WriteEvent(event *Event) error {
	if event == nil {
		return nil
	}
	if w.closed {
		return ErrClosed
	}
	if _, err := w.w.Write([]byte(event.String())); err != nil {
		w.closed = true
		return err
	}
	w.flusher.Flush()
	return nil
}

// WriteJSON data 用 sonic 编码后写入，事件ID使用会话ID
func (w *Writer) WriteJSON(eventType string, data any) error {
	b, err := sonic.Marshal(data)
	if err != nil {
		return fmt.Errorf("编码事件失败: %w", err)
	}
	return w.WriteEvent(&Event{ID: w.id, Type: eventType, Data: string(b)})
}

func (w *Writer) WriteComment(comment string) error {
	if w.closed {
		return ErrClosed
	}
	if _, err := fmt.Fprintf(w.w, ": %s\n\n", comment); err != nil {
		w.closed = true
		return err
	}
	w.flusher.Flush()
	return nil
}

// WriteDone 写入结束标记并关闭
func (w *Writer) WriteDone() error {
	err := w.WriteEvent(&Event{Data: "[DONE]"})
	w.closed = true
	return err
}

package sse

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_String(t *testing.T) {
	e := &Event{ID: "1", Type: "message", Data: "第一行\n第二行", Retry: 3 * time.Second}
	assert.Equal(t, "id: 1\nevent: message\ndata: 第一行\ndata: 第二行\nretry: 3000\n\n", e.String())
	assert.Equal(t, "data: \n\n", (&Event{}).String())
}

func TestWriter_Sequence(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter("s1", rec)
	require.NotNil(t, w)

	require.NoError(t, w.WriteJSON(EventMeta, map[string]string{"intent": "general_chat"}))
	require.NoError(t, w.WriteJSON(EventMessage, map[string]string{"content": "你好"}))
	require.NoError(t, w.WriteDone())
	assert.True(t, w.IsClosed())
	assert.ErrorIs(t, w.WriteComment("x"), ErrClosed)

	assert.Equal(t, MIMEType, rec.Header().Get("Content-Type"))
	assert.Equal(t,
		"id: s1\nevent: meta\ndata: {\"intent\":\"general_chat\"}\n\n"+
			"id: s1\nevent: message\ndata: {\"content\":\"你好\"}\n\n"+
			"data: [DONE]\n\n",
		rec.Body.String())
}

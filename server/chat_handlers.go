package server

import (
	"net/http"

	"github.com/CoolBanHub/minghe/agent"
	"github.com/CoolBanHub/minghe/pkg/sse"
	"github.com/CoolBanHub/minghe/utils"
)

const chatErrorMessage = "处理消息时发生错误"

type ChatRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required"`
	// 为空时由服务端生成
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Response  string         `json:"response"`
	Intent    string         `json:"intent"`
	RiskLevel string         `json:"risk_level"`
	SessionID string         `json:"session_id"`
	ToolsUsed []string       `json:"tools_used"`
	Metadata  map[string]any `json:"metadata"`
}

func newChatResponse(sessionID string, resp *agent.Response) ChatResponse {
	tools := resp.ToolsUsed
	if tools == nil {
		tools = []string{}
	}
	return ChatResponse{
		Response:  resp.Content,
		Intent:    resp.Intent.String(),
		RiskLevel: string(resp.RiskLevel),
		SessionID: sessionID,
		ToolsUsed: tools,
		Metadata:  resp.Metadata,
	}
}

// chat 解析请求并执行一轮对话，失败时已写入错误响应
func chat(appState *AppState, w http.ResponseWriter, r *http.Request) (string, *agent.Response, bool) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(w, err, http.StatusBadRequest, "")
		return "", nil, false
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = utils.NewSessionID()
	}

	resp, err := appState.Agent.Chat(r.Context(), req.UserID, sessionID, req.Message)
	if err != nil {
		renderError(w, err, http.StatusInternalServerError, chatErrorMessage)
		return "", nil, false
	}
	return sessionID, resp, true
}

func ChatHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, resp, ok := chat(appState, w, r)
		if !ok {
			return
		}
		_ = encodeJSON(w, http.StatusOK, newChatResponse(sessionID, resp))
	}
}

type streamMeta struct {
	Intent    string         `json:"intent"`
	RiskLevel string         `json:"risk_level"`
	SessionID string         `json:"session_id"`
	ToolsUsed []string       `json:"tools_used"`
	Metadata  map[string]any `json:"metadata"`
}

type streamMessage struct {
	Content string `json:"content"`
}

// ChatStreamHandler 以 SSE 返回：meta 事件、message 事件，最后是 [DONE]
func ChatStreamHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, resp, ok := chat(appState, w, r)
		if !ok {
			return
		}
		writer := sse.NewWriter(sessionID, w)
		if writer == nil {
			renderError(w, http.ErrNotSupported, http.StatusInternalServerError, chatErrorMessage)
			return
		}

		out := newChatResponse(sessionID, resp)
		if err := writer.WriteJSON(sse.EventMeta, streamMeta{
			Intent:    out.Intent,
			RiskLevel: out.RiskLevel,
			SessionID: sessionID,
			ToolsUsed: out.ToolsUsed,
			Metadata:  out.Metadata,
		}); err != nil {
			return
		}
		if err := writer.WriteJSON(sse.EventMessage, streamMessage{Content: out.Response}); err != nil {
			return
		}
		_ = writer.WriteDone()
	}
}

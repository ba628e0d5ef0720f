package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gookit/slog"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// APIError 错误响应
type APIError struct {
	Message string `json:"message"`
}

func encodeJSON(w http.ResponseWriter, status int, data any) error {
	b, err := sonic.Marshal(data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}

// decodeJSON 解码请求体并按 validate 标签校验
func decodeJSON(w http.ResponseWriter, r *http.Request, data any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("请求体不能为空")
	}
	if err := sonic.Unmarshal(body, data); err != nil {
		return err
	}
	return validate.Struct(data)
}

// renderError 写入 {message}，5xx 只记录日志不返回内部错误
func renderError(w http.ResponseWriter, err error, status int, message string) {
	if status >= http.StatusInternalServerError {
		slog.Errorf("%s: %s", message, err)
	} else if message == "" {
		message = err.Error()
	}
	if err := encodeJSON(w, status, APIError{Message: message}); err != nil {
		slog.Errorf("写入错误响应失败: %s", err)
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/CoolBanHub/minghe/assessment"
	"github.com/go-chi/chi/v5"
)

type AssessmentRequest struct {
	UserID         string         `json:"user_id" validate:"required"`
	AssessmentType string         `json:"assessment_type" validate:"required"`
	Answers        map[string]int `json:"answers"`
}

type AssessmentHistoryResponse struct {
	UserID      string               `json:"user_id"`
	Assessments []*assessment.Result `json:"assessments"`
}

// GetAssessmentTemplateHandler 未知类型返回 404
func GetAssessmentTemplateHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assessmentType := chi.URLParam(r, "type")
		template, ok := appState.Agent.AssessmentTemplate(assessmentType)
		if !ok {
			renderError(w, fmt.Errorf("未找到评估类型: %s", assessmentType), http.StatusNotFound, "")
			return
		}
		_ = encodeJSON(w, http.StatusOK, template)
	}
}

func PostAssessmentHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AssessmentRequest
		if err := decodeJSON(w, r, &req); err != nil {
			renderError(w, err, http.StatusBadRequest, "")
			return
		}

		result, err := appState.Agent.Assess(r.Context(), req.UserID, req.AssessmentType, req.Answers)
		if errors.Is(err, assessment.ErrInvalidAnswer) {
			renderError(w, err, http.StatusBadRequest, "")
			return
		}
		if err != nil {
			renderError(w, err, http.StatusInternalServerError, "评估计算错误")
			return
		}
		_ = encodeJSON(w, http.StatusOK, result)
	}
}

// GetAssessmentHistoryHandler ?type= 为空时返回全部类型
func GetAssessmentHistoryHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")
		history := appState.Agent.AssessmentHistory(userID, r.URL.Query().Get("type"))
		_ = encodeJSON(w, http.StatusOK, AssessmentHistoryResponse{UserID: userID, Assessments: history})
	}
}

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/CoolBanHub/minghe/memory"
	"github.com/go-chi/chi/v5"
)

type ProfileResponse struct {
	UserID          string         `json:"user_id"`
	AgeGroup        string         `json:"age_group"`
	Name            string         `json:"name"`
	Preferences     map[string]any `json:"preferences"`
	Characteristics []string       `json:"characteristics"`
	CommonStressors []string       `json:"common_stressors"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ProfileRequest 画像部分更新，未出现的字段保持不变
type ProfileRequest struct {
	AgeGroup        *string        `json:"age_group,omitempty" validate:"omitempty,oneof=adolescent young_adult middle_adult senior"`
	Name            *string        `json:"name,omitempty" validate:"omitempty,max=64"`
	Preferences     map[string]any `json:"preferences,omitempty"`
	Characteristics []string       `json:"characteristics,omitempty"`
	CommonStressors []string       `json:"common_stressors,omitempty"`
}

func (req *ProfileRequest) toUpdate() *memory.ProfileUpdate {
	update := &memory.ProfileUpdate{
		Name:            req.Name,
		Preferences:     req.Preferences,
		Characteristics: req.Characteristics,
		CommonStressors: req.CommonStressors,
	}
	if req.AgeGroup != nil {
		age := memory.AgeGroup(*req.AgeGroup)
		update.AgeGroup = &age
	}
	return update
}

func newProfileResponse(p *memory.UserProfile) ProfileResponse {
	return ProfileResponse{
		UserID:          p.UserID,
		AgeGroup:        string(p.AgeGroup),
		Name:            p.Name,
		Preferences:     p.Preferences,
		Characteristics: p.Characteristics,
		CommonStressors: p.CommonStressors,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// GetProfileHandler 用户不存在时创建默认画像
func GetProfileHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := appState.Agent.Profile(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			renderError(w, err, http.StatusInternalServerError, "获取用户画像失败")
			return
		}
		_ = encodeJSON(w, http.StatusOK, newProfileResponse(profile))
	}
}

func PatchProfileHandler(appState *AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProfileRequest
		if err := decodeJSON(w, r, &req); err != nil {
			renderError(w, err, http.StatusBadRequest, "")
			return
		}

		profile, err := appState.Agent.UpdateProfile(r.Context(), chi.URLParam(r, "userId"), req.toUpdate())
		if err != nil {
			if errors.Is(err, memory.ErrInvalidAge) {
				renderError(w, err, http.StatusBadRequest, "")
				return
			}
			renderError(w, err, http.StatusInternalServerError, "更新用户画像失败")
			return
		}
		_ = encodeJSON(w, http.StatusOK, newProfileResponse(profile))
	}
}

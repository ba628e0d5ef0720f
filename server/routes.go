package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/CoolBanHub/minghe/agent"
	"github.com/CoolBanHub/minghe/config"
	"github.com/CoolBanHub/minghe/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const ReadHeaderTimeout = 5 * time.Second

// AppState 处理器共享的依赖
type AppState struct {
	Agent   *agent.Agent
	Metrics *metrics.Metrics
	Config  *config.Config
}

// Create 创建 HTTP 服务
func Create(appState *AppState) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", appState.Config.Server.Port),
		Handler:           NewRouter(appState),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

func NewRouter(appState *AppState) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Heartbeat("/ping"))

	router.Get("/health", HealthHandler())
	router.Method(http.MethodGet, "/metrics", appState.Metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// 流式接口不设整体超时
		r.Post("/chat/stream", ChatStreamHandler(appState))

		r.Group(func(r chi.Router) {
			if timeout := appState.Config.Server.RequestTimeout; timeout > 0 {
				r.Use(middleware.Timeout(timeout))
			}
			r.Post("/chat", ChatHandler(appState))

			r.Route("/assessment", func(r chi.Router) {
				r.Post("/", PostAssessmentHandler(appState))
				r.Get("/template/{type}", GetAssessmentTemplateHandler(appState))
			})

			r.Route("/users/{userId}", func(r chi.Router) {
				r.Get("/assessments", GetAssessmentHistoryHandler(appState))
				r.Get("/profile", GetProfileHandler(appState))
				r.Patch("/profile", PatchProfileHandler(appState))
			})
		})
	})
	return router
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = encodeJSON(w, http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   config.Version,
		})
	}
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "minghe"

// Metrics 进程内指标，零值指针上的方法都是空操作
type Metrics struct {
	registry *prometheus.Registry

	crisisTotal       *prometheus.CounterVec
	intentTotal       *prometheus.CounterVec
	responseTotal     *prometheus.CounterVec
	generationTotal   *prometheus.CounterVec
	generationSeconds *prometheus.HistogramVec
	tokensTotal       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		crisisTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crisis_detections_total",
			Help:      "Crisis detections by risk level and category.",
		}, []string{"risk_level", "category"}),
		intentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Classified chat turns by intent.",
		}, []string{"intent"}),
		responseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Chat responses by intent and source (llm or template).",
		}, []string{"intent", "source"}),
		generationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Chat model calls by model type and status.",
		}, []string{"model", "status"}),
		generationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Chat model call latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"model"}),
		tokensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_total",
			Help:      "Tokens consumed by kind (prompt or completion).",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.crisisTotal,
		m.intentTotal,
		m.responseTotal,
		m.generationTotal,
		m.generationSeconds,
		m.tokensTotal,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveCrisis(riskLevel, category string) {
	if m == nil {
		return
	}
	m.crisisTotal.WithLabelValues(riskLevel, category).Inc()
}

func (m *Metrics) ObserveIntent(intent string) {
	if m == nil {
		return
	}
	m.intentTotal.WithLabelValues(intent).Inc()
}

func (m *Metrics) ObserveResponse(intent, source string) {
	if m == nil {
		return
	}
	m.responseTotal.WithLabelValues(intent, source).Inc()
}

func (m *Metrics) ObserveGeneration(model string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.generationTotal.WithLabelValues(model, status).Inc()
	m.generationSeconds.WithLabelValues(model).Observe(elapsed.Seconds())
}

func (m *Metrics) AddTokens(prompt, completion int) {
	if m == nil {
		return
	}
	if prompt > 0 {
		m.tokensTotal.WithLabelValues("prompt").Add(float64(prompt))
	}
	if completion > 0 {
		m.tokensTotal.WithLabelValues("completion").Add(float64(completion))
	}
}

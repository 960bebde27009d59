// Package metrics exposes Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	transitions     *prometheus.CounterVec
	progressWrites  *prometheus.CounterVec
	questionsLoaded prometheus.Gauge
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_transitions_total",
				Help: "Total number of navigation actions by outcome",
			},
			[]string{"action", "outcome"},
		),
		progressWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_progress_writes_total",
				Help: "Total number of progress persistence writes",
			},
			[]string{"op", "result"},
		),
		questionsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quiz_questions_loaded",
				Help: "Number of questions in the loaded bank",
			},
		),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.transitions,
		m.progressWrites,
		m.questionsLoaded,
		m.requestCounter,
		m.requestDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Transition(action, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) ProgressWrite(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.progressWrites.WithLabelValues(op, result).Inc()
}

func (m *Metrics) QuestionsLoaded(n int) {
	if m == nil {
		return
	}
	m.questionsLoaded.Set(float64(n))
}

func (m *Metrics) Request(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestCounter.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}

// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the generation service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pantry_chef"

// Generation kinds
const (
	KindRecipes = "recipes"
	KindImage   = "image"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "total",
			Help:      "Total number of provider generation calls",
		},
		[]string{"kind", "provider", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Provider generation duration in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"kind", "provider"},
	)
)

// GenerationTimer records one generation call
type GenerationTimer struct {
	kind     string
	provider string
	start    time.Time
}

// NewGenerationTimer starts timing a generation call
func NewGenerationTimer(kind, provider string) *GenerationTimer {
	return &GenerationTimer{kind: kind, provider: provider, start: time.Now()}
}

// Observe records the outcome and duration of the call
func (t *GenerationTimer) Observe(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	GenerationTotal.WithLabelValues(t.kind, t.provider, status).Inc()
	GenerationDuration.WithLabelValues(t.kind, t.provider).Observe(time.Since(t.start).Seconds())
}

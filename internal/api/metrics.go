package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsNamespace is the namespace for all service metrics.
const MetricsNamespace = "newsurl"

// Resolve outcome labels.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeNetworkError  = "network_error"
	OutcomeParseError    = "parse_error"
	OutcomeInternalError = "internal"
)

// Metrics holds the Prometheus metrics for the resolve service.
type Metrics struct {
	ResolvesTotal   *prometheus.CounterVec
	ResolveDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates and registers the service metrics on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		ResolvesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "resolves_total",
				Help:      "Total number of resolve attempts by outcome",
			},
			[]string{"outcome"},
		),
		ResolveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Name:      "resolve_duration_seconds",
				Help:      "Duration of resolve attempts in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
		),
		registry: registry,
	}
}

// RecordResolve records a resolve attempt with its outcome and duration.
func (m *Metrics) RecordResolve(outcome string, duration time.Duration) {
	m.ResolvesTotal.WithLabelValues(outcome).Inc()
	m.ResolveDuration.Observe(duration.Seconds())
}

// Handler returns the HTTP handler serving the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

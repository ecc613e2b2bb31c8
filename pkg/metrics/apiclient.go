package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIClientMetrics records every upstream call made to the shop backend.
type APIClientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewAPIClientMetrics registers the backend client metrics on the provided registerer.
func NewAPIClientMetrics(reg prometheus.Registerer) *APIClientMetrics {
	if reg == nil {
		return &APIClientMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Requests issued to the shop backend.",
	}, []string{"method", "route", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Latency of shop backend requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &APIClientMetrics{requests: requests, duration: duration}
}

// Observe records one finished request. outcome is a short class such as
// "ok", "unauthorized", "error" or "transport".
func (m *APIClientMetrics) Observe(method, route, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if m.requests != nil {
		m.requests.WithLabelValues(normalizeLabel(method), normalizeLabel(route), normalizeLabel(outcome)).Inc()
	}
	if m.duration != nil {
		m.duration.WithLabelValues(normalizeLabel(method), normalizeLabel(route)).Observe(elapsed.Seconds())
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

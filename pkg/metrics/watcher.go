package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WatcherMetrics tracks the delivery status poller.
type WatcherMetrics struct {
	transitions *prometheus.CounterVec
	polls       *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewWatcherMetrics registers the watcher metrics on the provided registerer.
func NewWatcherMetrics(reg prometheus.Registerer) *WatcherMetrics {
	if reg == nil {
		return &WatcherMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_phase_transitions_total",
		Help: "Delivery batch phase changes observed by polling.",
	}, []string{"from", "to"})
	polls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_watcher_polls_total",
		Help: "Delivery watcher poll attempts.",
	}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_watcher_poll_duration_seconds",
		Help:    "Duration of delivery watcher polls in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(transitions, polls, duration)
	return &WatcherMetrics{transitions: transitions, polls: polls, duration: duration}
}

func (w *WatcherMetrics) IncTransition(from, to string) {
	if w == nil || w.transitions == nil {
		return
	}
	w.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// ObservePoll records a poll result and its duration.
func (w *WatcherMetrics) ObservePoll(ok bool, elapsed time.Duration) {
	if w == nil {
		return
	}
	if w.polls != nil {
		result := "success"
		if !ok {
			result = "failure"
		}
		w.polls.WithLabelValues(result).Inc()
	}
	if w.duration != nil {
		w.duration.Observe(elapsed.Seconds())
	}
}

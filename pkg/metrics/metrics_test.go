package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAPIClientMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIClientMetrics(reg)
	m.Observe("GET", "/orders/", "ok", 120*time.Millisecond)
	m.Observe("GET", "/orders/", "ok", 80*time.Millisecond)
	m.Observe("GET", "/orders/", "unauthorized", 10*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "backend_requests_total", "outcome", "ok"); err != nil {
		t.Fatalf("fetch ok: %v", err)
	} else if got != 2 {
		t.Fatalf("expected ok=2, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "backend_request_duration_seconds", "route", "/orders/"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestWatcherMetricsCountsTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWatcherMetrics(reg)
	m.IncTransition("picked_up", "in_transit")
	m.ObservePoll(true, time.Millisecond)
	m.ObservePoll(false, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "delivery_phase_transitions_total", "to", "in_transit"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 transition, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "delivery_watcher_polls_total", "result", "failure"); err != nil {
		t.Fatalf("fetch polls: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 failed poll, got %f", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var api *APIClientMetrics
	api.Observe("GET", "/x", "ok", time.Second)
	NewAPIClientMetrics(nil).Observe("GET", "/x", "ok", time.Second)

	var w *WatcherMetrics
	w.IncTransition("a", "b")
	w.ObservePoll(true, time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

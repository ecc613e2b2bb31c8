package deliveries

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/metrics"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type stubLister struct {
	listFn func(ctx context.Context, filters url.Values) ([]models.DeliveryBatch, error)
}

func (s stubLister) List(ctx context.Context, filters url.Values) ([]models.DeliveryBatch, error) {
	return s.listFn(ctx, filters)
}

type fixedScope string

func (f fixedScope) ShopID() string { return string(f) }

func batch(id string, status enums.DeliveryStatus) models.DeliveryBatch {
	b := models.DeliveryBatch{Status: status}
	b.ID = id
	return b
}

func TestWatcherObservesBackendTransitions(t *testing.T) {
	rounds := [][]models.DeliveryBatch{
		{batch("b1", enums.DeliveryStatusPickedUp), batch("b2", enums.DeliveryStatusPlanned)},
		{batch("b1", enums.DeliveryStatusInTransit), batch("b2", enums.DeliveryStatusLegacyPending)},
	}
	call := 0
	lister := stubLister{listFn: func(ctx context.Context, filters url.Values) ([]models.DeliveryBatch, error) {
		if filters.Get("shop_id") != "s1" {
			t.Fatalf("expected shop filter, got %v", filters)
		}
		out := rounds[call]
		call++
		return out, nil
	}}

	reg := prometheus.NewRegistry()
	w, err := NewWatcher(WatcherParams{
		Logger:   logger.Nop(),
		Lister:   lister,
		Scope:    fixedScope("s1"),
		Metrics:  metrics.NewWatcherMetrics(reg),
		Interval: time.Minute,
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	seen, err := w.Poll(context.Background())
	if err != nil || len(seen) != 0 {
		t.Fatalf("first poll should only record a baseline, got %v %v", seen, err)
	}
	seen, err = w.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(seen) != 1 || seen[0].BatchID != "b1" || seen[0].From != PhasePickedUp || seen[0].To != PhaseInTransit {
		t.Fatalf("unexpected transitions %+v", seen)
	}
	if latest := w.Latest(); len(latest.Batches) != 2 || len(latest.Transitions) != 1 {
		t.Fatalf("unexpected latest %+v", latest)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := counterValue(families, "delivery_phase_transitions_total"); got != 1 {
		t.Fatalf("expected one transition counted, got %v", got)
	}
}

func TestWatcherSkipsWithoutShopAndKeepsStateOnError(t *testing.T) {
	scope := fixedScope("")
	w, err := NewWatcher(WatcherParams{
		Logger: logger.Nop(),
		Lister: stubLister{listFn: func(context.Context, url.Values) ([]models.DeliveryBatch, error) {
			t.Fatalf("no list expected without a shop")
			return nil, nil
		}},
		Scope: scope,
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if _, err := w.Poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}

	failing, _ := NewWatcher(WatcherParams{
		Logger: logger.Nop(),
		Lister: stubLister{listFn: func(context.Context, url.Values) ([]models.DeliveryBatch, error) {
			return nil, errors.New("boom")
		}},
		Scope: fixedScope("s1"),
	})
	if _, err := failing.Poll(context.Background()); err == nil {
		t.Fatalf("expected list error")
	}
}

func TestWatcherDisabledRunReturns(t *testing.T) {
	w, err := NewWatcher(WatcherParams{
		Logger: logger.Nop(),
		Lister: stubLister{},
		Scope:  fixedScope("s1"),
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if w.Enabled() {
		t.Fatalf("zero interval should disable the watcher")
	}
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func counterValue(families []*dto.MetricFamily, name string) float64 {
	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

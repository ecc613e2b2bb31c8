package deliveries

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/metrics"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// DefaultWatchInterval is used when the watcher is enabled without an
// explicit interval.
const DefaultWatchInterval = 30 * time.Second

// Lister is the slice of Service the watcher polls.
type Lister interface {
	List(ctx context.Context, filters url.Values) ([]models.DeliveryBatch, error)
}

// ShopScope supplies the shop whose batches are watched. An empty id skips
// the cycle.
type ShopScope interface {
	ShopID() string
}

// Transition is one phase change seen between two polls.
type Transition struct {
	BatchID string     `json:"batch_id"`
	From    BatchPhase `json:"from"`
	To      BatchPhase `json:"to"`
	At      time.Time  `json:"at"`
}

// Observation is the most recent poll result.
type Observation struct {
	At          time.Time              `json:"at"`
	Batches     []models.DeliveryBatch `json:"batches"`
	Transitions []Transition           `json:"transitions"`
}

type WatcherParams struct {
	Logger   *logger.Logger
	Lister   Lister
	Scope    ShopScope
	Metrics  *metrics.WatcherMetrics
	Interval time.Duration
	Now      func() time.Time
}

// Watcher polls batches so backend-driven changes such as PICKED_UP to
// IN_TRANSIT become visible without a user action.
type Watcher struct {
	logg     *logger.Logger
	lister   Lister
	scope    ShopScope
	metrics  *metrics.WatcherMetrics
	interval time.Duration
	now      func() time.Time

	mu     sync.RWMutex
	shopID string
	phases map[string]BatchPhase
	latest Observation
}

func NewWatcher(params WatcherParams) (*Watcher, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Lister == nil {
		return nil, fmt.Errorf("lister required")
	}
	if params.Scope == nil {
		return nil, fmt.Errorf("shop scope required")
	}
	interval := params.Interval
	if interval < 0 {
		interval = DefaultWatchInterval
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Watcher{
		logg:     params.Logger,
		lister:   params.Lister,
		scope:    params.Scope,
		metrics:  params.Metrics,
		interval: interval,
		now:      now,
		phases:   map[string]BatchPhase{},
	}, nil
}

// Enabled is false when the interval is zero.
func (w *Watcher) Enabled() bool {
	return w != nil && w.interval > 0
}

// Run polls until ctx is canceled. It returns nil immediately when disabled.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	w.poll(ctx)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logg.Info(ctx, "delivery watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// Latest returns a copy of the last observation.
func (w *Watcher) Latest() Observation {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := Observation{At: w.latest.At}
	out.Batches = append([]models.DeliveryBatch(nil), w.latest.Batches...)
	out.Transitions = append([]Transition(nil), w.latest.Transitions...)
	return out
}

// Poll runs one cycle and returns the transitions it observed.
func (w *Watcher) Poll(ctx context.Context) ([]Transition, error) {
	shopID := w.scope.ShopID()
	if shopID == "" {
		w.reset("")
		return nil, nil
	}

	started := w.now()
	batches, err := w.lister.List(ctx, url.Values{"shop_id": {shopID}})
	w.metrics.ObservePoll(err == nil, w.now().Sub(started))
	if err != nil {
		return nil, err
	}

	at := w.now()
	w.mu.Lock()
	if w.shopID != shopID {
		w.shopID = shopID
		w.phases = map[string]BatchPhase{}
	}
	var seen []Transition
	next := make(map[string]BatchPhase, len(batches))
	for _, batch := range batches {
		phase := Phase(batch.Status)
		next[batch.ID] = phase
		prev, known := w.phases[batch.ID]
		if known && prev != phase {
			seen = append(seen, Transition{BatchID: batch.ID, From: prev, To: phase, At: at})
		}
	}
	w.phases = next
	w.latest = Observation{At: at, Batches: batches, Transitions: seen}
	w.mu.Unlock()

	for _, tr := range seen {
		w.metrics.IncTransition(string(tr.From), string(tr.To))
		logCtx := w.logg.WithFields(ctx, map[string]any{
			"event":    "delivery.phase_change",
			"batch_id": tr.BatchID,
			"from":     string(tr.From),
			"to":       string(tr.To),
		})
		w.logg.Info(logCtx, "delivery batch phase changed")
	}
	return seen, nil
}

func (w *Watcher) poll(ctx context.Context) {
	if _, err := w.Poll(ctx); err != nil {
		w.logg.Error(w.logg.WithField(ctx, "event", "delivery.watch"), "delivery poll failed", err)
	}
}

func (w *Watcher) reset(shopID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shopID = shopID
	w.phases = map[string]BatchPhase{}
	w.latest = Observation{}
}

package pages

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopdash/internal/ai"
	"github.com/angelmondragon/shopdash/internal/deliveries"
	"github.com/angelmondragon/shopdash/internal/orders"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// DefaultCrateCapacity is used when a route request leaves capacity unset.
const DefaultCrateCapacity = 10

// Observer exposes the watcher's last poll.
type Observer interface {
	Latest() deliveries.Observation
}

type DeliveryParams struct {
	Deliveries deliveries.Service
	Orders     orders.Service
	AI         ai.Service
	Observer   Observer
	Now        func() time.Time
}

type Delivery struct {
	params DeliveryParams
	now    func() time.Time
}

func NewDelivery(params DeliveryParams) *Delivery {
	return &Delivery{params: params, now: nowFunc(params.Now)}
}

type StopView struct {
	models.RouteStop
	Display deliveries.StopDisplay `json:"display"`
}

type BatchView struct {
	models.DeliveryBatch
	Display     deliveries.Display `json:"display"`
	Stops       []StopView         `json:"stops"`
	CanComplete bool               `json:"can_complete"`
}

func NewBatchView(batch models.DeliveryBatch) BatchView {
	view := BatchView{
		DeliveryBatch: batch,
		Display:       deliveries.StatusDisplay(batch.Status),
		Stops:         make([]StopView, 0, len(batch.RouteStops)),
		CanComplete:   deliveries.CanComplete(batch),
	}
	for _, stop := range batch.RouteStops {
		view.Stops = append(view.Stops, StopView{RouteStop: stop, Display: deliveries.DisplayStop(stop)})
	}
	return view
}

type DeliveryStats struct {
	ActiveBatches   int `json:"active_batches"`
	OrdersInTransit int `json:"orders_in_transit"`
	DeliveredToday  int `json:"delivered_today"`
}

type DeliveryView struct {
	Batches     []BatchView             `json:"batches"`
	Stats       DeliveryStats           `json:"stats"`
	Transitions []deliveries.Transition `json:"transitions,omitempty"`
}

func (d *Delivery) List(ctx context.Context, shopID string) (*DeliveryView, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	batches, err := d.params.Deliveries.List(ctx, shopFilters(shopID))
	if err != nil {
		return nil, err
	}
	view := &DeliveryView{
		Batches: make([]BatchView, 0, len(batches)),
		Stats:   deliveryStats(batches, d.now()),
	}
	for _, batch := range batches {
		view.Batches = append(view.Batches, NewBatchView(batch))
	}
	if d.params.Observer != nil {
		view.Transitions = d.params.Observer.Latest().Transitions
	}
	return view, nil
}

// deliveryStats counts orders in transit once the partner has collected
// them. A delivered batch without a completion time is not counted for today.
func deliveryStats(batches []models.DeliveryBatch, now time.Time) DeliveryStats {
	var stats DeliveryStats
	for _, batch := range batches {
		phase := deliveries.Phase(batch.Status)
		if phase.Active() {
			stats.ActiveBatches++
		}
		switch phase {
		case deliveries.PhasePickedUp, deliveries.PhaseInTransit:
			stats.OrdersInTransit += len(batch.OrderIDs)
		case deliveries.PhaseDelivered:
			if !batch.CompletedAt.IsZero() && sameDay(batch.CompletedAt.Time, now) {
				stats.DeliveredToday++
			}
		}
	}
	return stats
}

func (d *Delivery) AvailableOrders(ctx context.Context, shopID string) ([]models.Order, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	list, batches, err := d.load(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return deliveries.AvailableOrders(list, batches), nil
}

func (d *Delivery) load(ctx context.Context, shopID string) ([]models.Order, []models.DeliveryBatch, error) {
	var (
		list    []models.Order
		batches []models.DeliveryBatch
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		list, err = d.params.Orders.List(gctx, shopFilters(shopID))
		return err
	})
	group.Go(func() error {
		var err error
		batches, err = d.params.Deliveries.List(gctx, shopFilters(shopID))
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return list, batches, nil
}

// CreateRoute accepts only orders that are still available. Anything else
// was batched or changed status since the picker loaded.
func (d *Delivery) CreateRoute(ctx context.Context, shopID string, input models.RouteInput) (*BatchView, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	if len(input.OrderIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Select at least one order").
			WithDetails(map[string]any{"field": "order_ids"})
	}
	input.ShopID = shopID
	if input.CrateCapacity == 0 {
		input.CrateCapacity = DefaultCrateCapacity
	}

	available, err := d.AvailableOrders(ctx, shopID)
	if err != nil {
		return nil, err
	}
	open := make(map[string]struct{}, len(available))
	for _, o := range available {
		open[o.ID] = struct{}{}
	}
	for _, id := range input.OrderIDs {
		if _, ok := open[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order is not available for delivery").
				WithDetails(map[string]any{"field": "order_ids", "order_id": id})
		}
	}

	batch, err := d.params.Deliveries.CreateRoute(ctx, input)
	if err != nil {
		return nil, err
	}
	view := NewBatchView(*batch)
	return &view, nil
}

// MarkReady hands a planned batch to the partner.
func (d *Delivery) MarkReady(ctx context.Context, id string) (*BatchView, error) {
	batch, err := d.params.Deliveries.UpdateStatus(ctx, id, enums.DeliveryStatusReadyForPickup, enums.ActorShopOwner)
	if err != nil {
		return nil, err
	}
	view := NewBatchView(*batch)
	return &view, nil
}

func (d *Delivery) Delete(ctx context.Context, id string) error {
	return d.params.Deliveries.Delete(ctx, id)
}

type OptimizeRequest struct {
	OrderIDs      []string `json:"order_ids" validate:"required,min=1,dive,required"`
	CrateCapacity int      `json:"crate_capacity" validate:"omitempty,min=5,max=20"`
}

// RoutePreview is the AI ordering with the crates it would pack into.
type RoutePreview struct {
	Route  *models.OptimizedRoute `json:"route"`
	Crates []models.Crate         `json:"crates"`
}

// Optimize asks for a stop order and packs crates along it. Ids the AI drops
// are appended in request order so no selected order goes missing.
func (d *Delivery) Optimize(ctx context.Context, shopID string, input OptimizeRequest) (*RoutePreview, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	if d.params.AI == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ai unavailable")
	}
	route, err := d.params.AI.OptimizeRoute(ctx, shopID, input.OrderIDs)
	if err != nil {
		return nil, err
	}
	capacity := input.CrateCapacity
	if capacity == 0 {
		capacity = DefaultCrateCapacity
	}
	return &RoutePreview{Route: route, Crates: deliveries.AssignCrates(routeOrder(route.Sequence, input.OrderIDs), capacity)}, nil
}

func routeOrder(sequence, selected []string) []string {
	wanted := make(map[string]bool, len(selected))
	for _, id := range selected {
		wanted[id] = true
	}
	out := make([]string, 0, len(selected))
	for _, id := range sequence {
		if wanted[id] {
			out = append(out, id)
			wanted[id] = false
		}
	}
	for _, id := range selected {
		if wanted[id] {
			out = append(out, id)
			wanted[id] = false
		}
	}
	return out
}

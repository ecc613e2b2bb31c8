package pages

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopdash/internal/ai"
	"github.com/angelmondragon/shopdash/internal/deliveries"
	"github.com/angelmondragon/shopdash/internal/inventory"
	"github.com/angelmondragon/shopdash/internal/orders"
	"github.com/angelmondragon/shopdash/internal/products"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/models"
)

const recentOrderCount = 5

type DashboardParams struct {
	Orders     orders.Service
	Products   products.Service
	Inventory  inventory.Service
	Deliveries deliveries.Service
	AI         ai.Service
	Logger     *logger.Logger
	Now        func() time.Time
}

type Dashboard struct {
	params DashboardParams
	now    func() time.Time
}

func NewDashboard(params DashboardParams) *Dashboard {
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	return &Dashboard{params: params, now: nowFunc(params.Now)}
}

type DashboardStats struct {
	TodayOrders      int     `json:"today_orders"`
	TodayRevenue     float64 `json:"today_revenue"`
	PendingOrders    int     `json:"pending_orders"`
	LowStockAlerts   int     `json:"low_stock_alerts"`
	ActiveDeliveries int     `json:"active_deliveries"`
	ProductCount     int     `json:"product_count"`
}

type DashboardView struct {
	Stats        DashboardStats            `json:"stats"`
	RecentOrders []models.Order            `json:"recent_orders"`
	Insights     *models.InventoryInsights `json:"insights,omitempty"`
}

// Build loads the four collections concurrently; the first failure aborts
// the page. AI insights are fetched alongside but never fail it.
func (d *Dashboard) Build(ctx context.Context, shopID string) (*DashboardView, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	filters := shopFilters(shopID)

	var (
		orderList   []models.Order
		productList []models.Product
		stock       []models.InventoryRecord
		batches     []models.DeliveryBatch
		insights    *models.InventoryInsights
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		orderList, err = d.params.Orders.List(gctx, filters)
		return err
	})
	group.Go(func() error {
		var err error
		productList, err = d.params.Products.List(gctx, filters)
		return err
	})
	group.Go(func() error {
		var err error
		stock, err = d.params.Inventory.List(gctx, filters)
		return err
	})
	group.Go(func() error {
		var err error
		batches, err = d.params.Deliveries.List(gctx, filters)
		return err
	})
	insightsDone := make(chan struct{})
	go func() {
		defer close(insightsDone)
		insights = d.insights(ctx, shopID)
	}()
	if err := group.Wait(); err != nil {
		return nil, err
	}
	<-insightsDone

	view := &DashboardView{
		Stats:        d.stats(orderList, stock, batches),
		RecentOrders: recentOrders(orderList, recentOrderCount),
		Insights:     insights,
	}
	view.Stats.ProductCount = len(productList)
	return view, nil
}

func (d *Dashboard) insights(ctx context.Context, shopID string) *models.InventoryInsights {
	if d.params.AI == nil {
		return nil
	}
	out, err := d.params.AI.InventoryInsights(ctx, shopID)
	if err != nil {
		d.params.Logger.Warn(d.params.Logger.WithField(ctx, "error", err.Error()), "dashboard.insights_unavailable")
		return nil
	}
	return out
}

func (d *Dashboard) stats(orderList []models.Order, stock []models.InventoryRecord, batches []models.DeliveryBatch) DashboardStats {
	now := d.now()
	var stats DashboardStats
	for _, o := range orderList {
		if o.Status == enums.OrderStatusPending {
			stats.PendingOrders++
		}
		if o.CreatedAt.IsZero() || !sameDay(o.CreatedAt.Time, now) {
			continue
		}
		stats.TodayOrders++
		if o.Status != enums.OrderStatusCancelled {
			stats.TodayRevenue += o.TotalAmount
		}
	}
	for _, r := range stock {
		if r.Status().Alerting() {
			stats.LowStockAlerts++
		}
	}
	for _, b := range batches {
		if deliveries.Phase(b.Status).Active() {
			stats.ActiveDeliveries++
		}
	}
	return stats
}

// recentOrders returns the newest n orders. Orders without a timestamp sort
// last.
func recentOrders(in []models.Order, n int) []models.Order {
	out := append([]models.Order(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	if len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []models.Order{}
	}
	return out
}

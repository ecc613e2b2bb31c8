package pages

import (
	"context"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopdash/internal/ai"
	"github.com/angelmondragon/shopdash/internal/cart"
	"github.com/angelmondragon/shopdash/internal/orders"
	"github.com/angelmondragon/shopdash/internal/products"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// allTab is the count key covering every status.
const allTab = "all"

type Orders struct {
	orders   orders.Service
	products products.Service
	ai       ai.Service
}

func NewOrders(orderSvc orders.Service, productSvc products.Service, aiSvc ai.Service) *Orders {
	return &Orders{orders: orderSvc, products: productSvc, ai: aiSvc}
}

type OrdersView struct {
	Orders []models.Order `json:"orders"`
	Counts map[string]int `json:"counts"`
	Status string         `json:"status,omitempty"`
	Query  string         `json:"query,omitempty"`
}

// List returns the orders for one status tab. Tab counts always cover the
// whole collection. status is forwarded to the backend as given.
func (o *Orders) List(ctx context.Context, shopID, status, query string) (*OrdersView, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	status = strings.TrimSpace(status)
	if status == allTab {
		status = ""
	}

	var all, tab []models.Order
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		all, err = o.orders.List(gctx, shopFilters(shopID))
		return err
	})
	if status != "" {
		group.Go(func() error {
			filters := shopFilters(shopID)
			filters.Set("status", status)
			var err error
			tab, err = o.orders.List(gctx, filters)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if status == "" {
		tab = all
	}

	return &OrdersView{
		Orders: filterOrders(tab, query),
		Counts: statusCounts(all),
		Status: status,
		Query:  strings.TrimSpace(query),
	}, nil
}

func statusCounts(list []models.Order) map[string]int {
	counts := map[string]int{allTab: len(list)}
	for _, s := range enums.OrderStatuses() {
		counts[string(s)] = 0
	}
	for _, order := range list {
		counts[string(order.Status)]++
	}
	return counts
}

func filterOrders(list []models.Order, query string) []models.Order {
	q := normalizeQuery(query)
	out := make([]models.Order, 0, len(list))
	for _, order := range list {
		if q != "" && !containsFold(order.OrderNumber, q) && !containsFold(order.DeliveryAddress, q) {
			continue
		}
		out = append(out, order)
	}
	return out
}

// CreateOrder is the manual order form. Items maps product ids to quantities.
type CreateOrder struct {
	CustomerID      string            `json:"customer_id"`
	DeliveryAddress string            `json:"delivery_address"`
	Notes           string            `json:"notes"`
	Source          enums.OrderSource `json:"source" validate:"omitempty,oneof=storefront whatsapp voice telegram"`
	Items           map[string]int    `json:"items" validate:"required,min=1"`
}

// Create prices the requested quantities against the live catalog. A manual
// order without a source is recorded as whatsapp.
func (o *Orders) Create(ctx context.Context, shopID string, input CreateOrder) (*models.Order, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	if input.Source == "" {
		input.Source = enums.OrderSourceWhatsApp
	}
	catalog, err := o.products.List(ctx, shopFilters(shopID))
	if err != nil {
		return nil, err
	}
	c, err := fillCart(shopID, catalog, input.Items)
	if err != nil {
		return nil, err
	}
	payload, err := c.OrderInput(input.CustomerID, input.DeliveryAddress, input.Source, input.Notes)
	if err != nil {
		return nil, err
	}
	return o.orders.Create(ctx, payload)
}

// fillCart adds each requested quantity to a new cart. Unknown product ids are
// rejected; zero quantities are skipped.
func fillCart(shopID string, catalog []models.Product, items map[string]int) (*cart.Cart, error) {
	byID := make(map[string]models.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	c := cart.New(shopID)
	for _, id := range ids {
		qty := items[id]
		if qty <= 0 {
			continue
		}
		product, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product").
				WithDetails(map[string]any{"field": "items", "product_id": id})
		}
		c.Add(product, qty)
	}
	return c, nil
}

func (o *Orders) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	parsed, err := enums.ParseOrderStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status").
			WithDetails(map[string]any{"field": "status", "value": status})
	}
	return o.orders.UpdateStatus(ctx, id, parsed)
}

// ParsePreview is an AI-extracted order matched against the catalog. Nothing
// is created until the user confirms through Create.
type ParsePreview struct {
	Parsed    *models.ParsedOrder `json:"parsed"`
	Lines     []cart.Line         `json:"lines"`
	Totals    cart.Totals         `json:"totals"`
	Unmatched []string            `json:"unmatched"`
}

func (o *Orders) Parse(ctx context.Context, shopID, text string) (*ParsePreview, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	if o.ai == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ai unavailable")
	}
	var (
		parsed  *models.ParsedOrder
		catalog []models.Product
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		parsed, err = o.ai.ParseOrder(gctx, text, shopID)
		return err
	})
	group.Go(func() error {
		var err error
		catalog, err = o.products.List(gctx, shopFilters(shopID))
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	c := cart.New(shopID)
	unmatched := []string{}
	for _, item := range parsed.Items {
		product, ok := matchProduct(catalog, item.ProductName)
		if !ok {
			unmatched = append(unmatched, item.ProductName)
			continue
		}
		c.Add(product, max(int(math.Ceil(item.Quantity)), 1))
	}
	return &ParsePreview{Parsed: parsed, Lines: c.Lines(), Totals: c.Totals(), Unmatched: unmatched}, nil
}

// matchProduct prefers an exact case-insensitive name and falls back to the
// first active product whose name contains the parsed one or the reverse.
func matchProduct(catalog []models.Product, name string) (models.Product, bool) {
	needle := normalizeQuery(name)
	if needle == "" {
		return models.Product{}, false
	}
	for _, p := range catalog {
		if strings.EqualFold(strings.TrimSpace(p.Name), needle) {
			return p, true
		}
	}
	for _, p := range catalog {
		if !p.IsActive {
			continue
		}
		hay := normalizeQuery(p.Name)
		if hay == "" {
			continue
		}
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			return p, true
		}
	}
	return models.Product{}, false
}

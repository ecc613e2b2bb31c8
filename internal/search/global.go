package search

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopdash/pkg/models"
)

type HitType string

const (
	HitOrder    HitType = "order"
	HitCustomer HitType = "customer"
	HitProduct  HitType = "product"
)

// Hit is one typed search match.
type Hit struct {
	Type     HitType `json:"type"`
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
}

const perTypeLimit = 5

type OrderLister interface {
	List(ctx context.Context, filters url.Values) ([]models.Order, error)
}

type CustomerLister interface {
	List(ctx context.Context, filters url.Values) ([]models.Customer, error)
}

type ProductLister interface {
	List(ctx context.Context, filters url.Values) ([]models.Product, error)
}

// GlobalParams wires the collections the search box spans. ShopID scopes each
// fetch to the signed-in shop.
type GlobalParams struct {
	Orders    OrderLister
	Customers CustomerLister
	Products  ProductLister
	ShopID    func() string
}

// Global searches orders, customers and products in parallel.
type Global struct {
	params GlobalParams
}

func NewGlobal(params GlobalParams) *Global {
	return &Global{params: params}
}

// Search fetches the three collections concurrently and filters them locally.
// The first failing fetch cancels the others and is returned.
func (g *Global) Search(ctx context.Context, query string) ([]Hit, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []Hit{}, nil
	}
	filters := url.Values{}
	if g.params.ShopID != nil {
		if shopID := g.params.ShopID(); shopID != "" {
			filters.Set("shop_id", shopID)
		}
	}

	var (
		orders    []models.Order
		customers []models.Customer
		products  []models.Product
	)
	group, gctx := errgroup.WithContext(ctx)
	if g.params.Orders != nil {
		group.Go(func() error {
			var err error
			orders, err = g.params.Orders.List(gctx, filters)
			return err
		})
	}
	if g.params.Customers != nil {
		group.Go(func() error {
			var err error
			customers, err = g.params.Customers.List(gctx, filters)
			return err
		})
	}
	if g.params.Products != nil {
		group.Go(func() error {
			var err error
			products, err = g.params.Products.List(gctx, filters)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0)
	hits = appendMatches(hits, orders, func(o models.Order) (Hit, bool) {
		return Hit{Type: HitOrder, ID: o.ID, Title: o.OrderNumber, Subtitle: string(o.Status)},
			contains(needle, o.OrderNumber, o.DeliveryAddress)
	})
	hits = appendMatches(hits, customers, func(c models.Customer) (Hit, bool) {
		return Hit{Type: HitCustomer, ID: c.ID, Title: c.Name, Subtitle: c.Phone},
			contains(needle, c.Name, c.Phone)
	})
	hits = appendMatches(hits, products, func(p models.Product) (Hit, bool) {
		return Hit{Type: HitProduct, ID: p.ID, Title: p.Name, Subtitle: p.Category},
			contains(needle, p.Name)
	})
	return hits, nil
}

func appendMatches[T any](hits []Hit, items []T, match func(T) (Hit, bool)) []Hit {
	n := 0
	for _, item := range items {
		if n == perTypeLimit {
			break
		}
		if hit, ok := match(item); ok {
			hits = append(hits, hit)
			n++
		}
	}
	return hits
}

func contains(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

package pages

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopdash/internal/cart"
	"github.com/angelmondragon/shopdash/internal/orders"
	"github.com/angelmondragon/shopdash/internal/products"
	"github.com/angelmondragon/shopdash/internal/shops"
	"github.com/angelmondragon/shopdash/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// AllCategories is the storefront tab that disables the category filter.
const AllCategories = "All"

// Storefront is the public shop page. The shop id comes from the URL, not
// the session.
type Storefront struct {
	shops    shops.Service
	products products.Service
	orders   orders.Service
}

func NewStorefront(shopSvc shops.Service, productSvc products.Service, orderSvc orders.Service) *Storefront {
	return &Storefront{shops: shopSvc, products: productSvc, orders: orderSvc}
}

type StorefrontView struct {
	Shop       models.Shop      `json:"shop"`
	Categories []string         `json:"categories"`
	Category   string           `json:"category"`
	Products   []models.Product `json:"products"`
}

func (s *Storefront) View(ctx context.Context, shopID, category, query string) (*StorefrontView, error) {
	if strings.TrimSpace(shopID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	var (
		shop    *models.Shop
		catalog []models.Product
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		shop, err = s.shops.Get(gctx, shopID)
		return err
	})
	group.Go(func() error {
		var err error
		catalog, err = s.listed(gctx, shopID)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = AllCategories
	}
	q := normalizeQuery(query)
	view := &StorefrontView{
		Shop:       *shop,
		Categories: categories(catalog),
		Category:   category,
		Products:   make([]models.Product, 0, len(catalog)),
	}
	for _, p := range catalog {
		if category != AllCategories && !strings.EqualFold(p.Category, category) {
			continue
		}
		if q != "" && !containsFold(p.Name, q) {
			continue
		}
		view.Products = append(view.Products, p)
	}
	return view, nil
}

// listed is the active catalog. Inactive products are never sold publicly.
func (s *Storefront) listed(ctx context.Context, shopID string) ([]models.Product, error) {
	catalog, err := s.products.List(ctx, shopFilters(shopID))
	if err != nil {
		return nil, err
	}
	out := catalog[:0]
	for _, p := range catalog {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// categories returns AllCategories followed by the distinct product
// categories in alphabetical order.
func categories(catalog []models.Product) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, p := range catalog {
		name := strings.TrimSpace(p.Category)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{AllCategories}, names...)
}

type Quote struct {
	Lines  []cart.Line `json:"lines"`
	Totals cart.Totals `json:"totals"`
	Count  int         `json:"count"`
}

func (s *Storefront) Quote(ctx context.Context, shopID string, items map[string]int) (*Quote, error) {
	c, err := s.cart(ctx, shopID, items)
	if err != nil {
		return nil, err
	}
	return &Quote{Lines: c.Lines(), Totals: c.Totals(), Count: c.Count()}, nil
}

type Checkout struct {
	CustomerID      string         `json:"customer_id"`
	DeliveryAddress string         `json:"delivery_address" validate:"required"`
	Notes           string         `json:"notes"`
	Items           map[string]int `json:"items" validate:"required,min=1"`
}

// Checkout places a storefront order priced against the active catalog.
func (s *Storefront) Checkout(ctx context.Context, shopID string, input Checkout) (*models.Order, error) {
	c, err := s.cart(ctx, shopID, input.Items)
	if err != nil {
		return nil, err
	}
	payload, err := c.OrderInput(input.CustomerID, input.DeliveryAddress, enums.OrderSourceStorefront, input.Notes)
	if err != nil {
		return nil, err
	}
	return s.orders.Create(ctx, payload)
}

func (s *Storefront) cart(ctx context.Context, shopID string, items map[string]int) (*cart.Cart, error) {
	if strings.TrimSpace(shopID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	catalog, err := s.listed(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return fillCart(shopID, catalog, items)
}

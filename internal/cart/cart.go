// Package cart assembles priced order lines from product quantities.
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// Line is one priced cart row. Totals are recomputed on every read.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	GSTRate   float64 `json:"gst_rate"`
	LineTotal float64 `json:"line_total"`
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	GST      float64 `json:"gst"`
	Total    float64 `json:"total"`
}

// Cart is not safe for concurrent use; each request builds its own.
type Cart struct {
	shopID   string
	qty      map[string]int
	products map[string]models.Product
	order    []string
}

func New(shopID string) *Cart {
	return &Cart{
		shopID:   shopID,
		qty:      map[string]int{},
		products: map[string]models.Product{},
	}
}

// Add changes the quantity of product by delta. The result never drops
// below zero and a zero quantity removes the line.
func (c *Cart) Add(product models.Product, delta int) int {
	if product.ID == "" {
		return 0
	}
	c.products[product.ID] = product
	return c.set(product.ID, c.qty[product.ID]+delta)
}

// Set replaces the quantity of a product already priced into the cart.
func (c *Cart) Set(productID string, qty int) error {
	if _, ok := c.products[productID]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart").
			WithDetails(map[string]any{"product_id": productID})
	}
	c.set(productID, qty)
	return nil
}

func (c *Cart) set(productID string, qty int) int {
	qty = max(qty, 0)
	_, present := c.qty[productID]
	switch {
	case qty == 0:
		if present {
			delete(c.qty, productID)
			c.dropFromOrder(productID)
		}
	case !present:
		c.qty[productID] = qty
		c.order = append(c.order, productID)
	default:
		c.qty[productID] = qty
	}
	return qty
}

func (c *Cart) dropFromOrder(productID string) {
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *Cart) Quantity(productID string) int {
	return c.qty[productID]
}

func (c *Cart) Empty() bool {
	return len(c.qty) == 0
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, q := range c.qty {
		n += q
	}
	return n
}

// Lines returns the rows in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		p := c.products[id]
		qty := c.qty[id]
		out = append(out, Line{
			ProductID: id,
			Name:      p.Name,
			Unit:      p.Unit,
			Quantity:  qty,
			UnitPrice: p.Price,
			GSTRate:   float64(p.Rate()),
			LineTotal: round(lineTotal(p, qty)),
		})
	}
	return out
}

func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	gst := decimal.Zero
	for _, id := range c.order {
		p := c.products[id]
		line := lineTotal(p, c.qty[id])
		subtotal = subtotal.Add(line)
		gst = gst.Add(line.Mul(decimal.NewFromInt(int64(p.Rate()))).Div(hundred))
	}
	return Totals{
		Subtotal: round(subtotal),
		GST:      round(gst),
		Total:    round(subtotal.Add(gst)),
	}
}

// OrderInput snapshots the cart into an order create payload. An empty cart
// is rejected before any backend call.
func (c *Cart) OrderInput(customerID, address string, source enums.OrderSource, notes string) (models.OrderInput, error) {
	if c.Empty() {
		return models.OrderInput{}, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item").
			WithDetails(map[string]any{"field": "items"})
	}
	if !source.IsValid() {
		return models.OrderInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order source").
			WithDetails(map[string]any{"field": "source", "value": string(source)})
	}
	lines := c.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  float64(l.Quantity),
			Unit:      l.Unit,
			Price:     l.UnitPrice,
			Total:     l.LineTotal,
		})
	}
	totals := c.Totals()
	return models.OrderInput{
		ShopID:          c.shopID,
		CustomerID:      strings.TrimSpace(customerID),
		Items:           items,
		TotalAmount:     totals.Total,
		GSTAmount:       totals.GST,
		Status:          enums.OrderStatusPending,
		Source:          source,
		DeliveryAddress: strings.TrimSpace(address),
		Notes:           strings.TrimSpace(notes),
	}, nil
}

func lineTotal(p models.Product, qty int) decimal.Decimal {
	return decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(qty)))
}

func round(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

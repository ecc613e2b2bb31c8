package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopdash/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

func newStorefront(orderSvc *stubOrders) *Storefront {
	shop := models.Shop{Ident: models.Ident{ID: "shop-1"}, Name: "Kumar General Store"}
	return NewStorefront(&stubShops{shop: shop}, &stubProducts{list: catalog}, orderSvc)
}

func TestStorefrontViewCategories(t *testing.T) {
	page := newStorefront(&stubOrders{})

	view, err := page.View(context.Background(), "shop-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{AllCategories, "Grains", "Oils"}, view.Categories)
	assert.Len(t, view.Products, 2, "inactive products are hidden")
	assert.Equal(t, "Kumar General Store", view.Shop.Name)

	view, err = page.View(context.Background(), "shop-1", "oils", "")
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "oil", view.Products[0].ID)
}

func TestStorefrontQuoteAndCheckout(t *testing.T) {
	orderSvc := &stubOrders{}
	page := newStorefront(orderSvc)

	quote, err := page.Quote(context.Background(), "shop-1", map[string]int{"rice": 3})
	require.NoError(t, err)
	assert.Equal(t, 3, quote.Count)
	assert.Equal(t, 267.75, quote.Totals.Total)

	_, err = page.Checkout(context.Background(), "shop-1", Checkout{Items: map[string]int{"milk": 1}, DeliveryAddress: "MG Road"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "inactive products cannot be bought")

	order, err := page.Checkout(context.Background(), "shop-1", Checkout{Items: map[string]int{"rice": 1}, DeliveryAddress: "MG Road"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderSourceStorefront, order.Source)
	require.Len(t, orderSvc.created, 1)
	assert.Equal(t, "shop-1", orderSvc.created[0].ShopID)
}

package models

import (
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/types"
)

type Product struct {
	Ident
	ShopID   string  `json:"shop_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
	GSTRate  float64 `json:"gst_rate"`
	IsActive bool    `json:"is_active"`
	ImageURL string  `json:"image_url,omitempty"`
}

// Rate returns the slab for the product, falling back to 0 for values the
// backend should never have stored.
func (p Product) Rate() enums.GSTRate {
	rate := enums.GSTRate(int(p.GSTRate))
	if float64(rate) != p.GSTRate || !rate.IsValid() {
		return enums.GSTRate0
	}
	return rate
}

type ProductInput struct {
	ShopID   string  `json:"shop_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"required"`
	GSTRate  float64 `json:"gst_rate" validate:"gst_rate"`
	IsActive bool    `json:"is_active"`
	ImageURL string  `json:"image_url,omitempty" validate:"omitempty,url"`
}

type InventoryRecord struct {
	Ident
	ShopID        string          `json:"shop_id"`
	ProductID     string          `json:"product_id"`
	StockQuantity float64         `json:"stock_quantity"`
	MinStockLevel float64         `json:"min_stock_level"`
	LastRestocked types.Timestamp `json:"last_restocked,omitzero"`
}

// Status derives the stock state. It is never persisted.
func (r InventoryRecord) Status() enums.InventoryStatus {
	switch {
	case r.StockQuantity <= 0:
		return enums.InventoryStatusOutOfStock
	case r.StockQuantity <= r.MinStockLevel:
		return enums.InventoryStatusLowStock
	default:
		return enums.InventoryStatusInStock
	}
}

type InventoryInput struct {
	ShopID        string   `json:"shop_id,omitempty"`
	ProductID     string   `json:"product_id,omitempty"`
	StockQuantity *float64 `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	MinStockLevel *float64 `json:"min_stock_level,omitempty" validate:"omitempty,gte=0"`
}

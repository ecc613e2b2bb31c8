package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shopdash/api/responses"
	"github.com/angelmondragon/shopdash/api/validators"
	"github.com/angelmondragon/shopdash/internal/pages"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// InventoryPage is served by pages.Inventory.
type InventoryPage interface {
	List(ctx context.Context, shopID, query string) (*pages.InventoryView, error)
	CreateProduct(ctx context.Context, shopID string, input pages.NewProduct) (*pages.StockRow, error)
	UpdateStock(ctx context.Context, id string, input models.InventoryInput) (*models.InventoryRecord, error)
	Delete(ctx context.Context, id string) error
	Insights(ctx context.Context, shopID string) (*models.InventoryInsights, error)
}

type stockUpdateRequest struct {
	StockQuantity *float64 `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	MinStockLevel *float64 `json:"min_stock_level,omitempty" validate:"omitempty,gte=0"`
}

func InventoryList(page InventoryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.List(r.Context(), shopID(r), validators.QueryString(r, "q", maxQueryLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// InventoryCreateProduct stamps the session shop before validating so the
// body never carries a shop id of its own.
func InventoryCreateProduct(page InventoryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input pages.NewProduct
		if err := validators.DecodeJSON(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.ShopID = shopID(r)
		if err := validators.Struct(&input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := page.CreateProduct(r.Context(), input.ShopID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

func InventoryUpdate(page InventoryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input stockUpdateRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := page.UpdateStock(r.Context(), chi.URLParam(r, "inventoryId"), models.InventoryInput{
			StockQuantity: input.StockQuantity,
			MinStockLevel: input.MinStockLevel,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

func InventoryDelete(page InventoryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := page.Delete(r.Context(), chi.URLParam(r, "inventoryId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func InventoryInsights(page InventoryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		insights, err := page.Insights(r.Context(), shopID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, insights)
	}
}

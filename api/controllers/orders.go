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

const maxQueryLen = 120

// OrdersPage is served by pages.Orders.
type OrdersPage interface {
	List(ctx context.Context, shopID, status, query string) (*pages.OrdersView, error)
	Create(ctx context.Context, shopID string, input pages.CreateOrder) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
	Parse(ctx context.Context, shopID, text string) (*pages.ParsePreview, error)
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderParseRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func OrderList(page OrdersPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.List(r.Context(), shopID(r),
			validators.QueryString(r, "status", 32),
			validators.QueryString(r, "q", maxQueryLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func OrderCreate(page OrdersPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input pages.CreateOrder
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := page.Create(r.Context(), shopID(r), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func OrderUpdateStatus(page OrdersPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input orderStatusRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := page.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), input.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrderParse(page OrdersPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input orderParseRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		preview, err := page.Parse(r.Context(), shopID(r), input.Text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preview)
	}
}

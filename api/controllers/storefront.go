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

// StorefrontPage is served by pages.Storefront. The shop comes from the
// path, not the session.
type StorefrontPage interface {
	View(ctx context.Context, shopID, category, query string) (*pages.StorefrontView, error)
	Quote(ctx context.Context, shopID string, items map[string]int) (*pages.Quote, error)
	Checkout(ctx context.Context, shopID string, input pages.Checkout) (*models.Order, error)
}

type quoteRequest struct {
	Items map[string]int `json:"items" validate:"required,min=1"`
}

func StorefrontView(page StorefrontPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.View(r.Context(), chi.URLParam(r, "shopId"),
			validators.QueryString(r, "category", 64),
			validators.QueryString(r, "q", maxQueryLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func StorefrontQuote(page StorefrontPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input quoteRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := page.Quote(r.Context(), chi.URLParam(r, "shopId"), input.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

func StorefrontCheckout(page StorefrontPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input pages.Checkout
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := page.Checkout(r.Context(), chi.URLParam(r, "shopId"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

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
	"github.com/angelmondragon/shopdash/pkg/pagination"
)

// CustomersPage is served by pages.Customers.
type CustomersPage interface {
	List(ctx context.Context, shopID string, page pagination.Page, query string) (*pages.CustomersView, error)
	Create(ctx context.Context, shopID string, input models.CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id string, input models.CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

func CustomerList(page CustomersPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := page.List(r.Context(), shopID(r),
			pagination.Page{Number: number, Limit: pagination.DefaultLimit},
			validators.QueryString(r, "q", maxQueryLen))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CustomerCreate(page CustomersPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.CustomerInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := page.Create(r.Context(), shopID(r), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

func CustomerUpdate(page CustomersPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.CustomerInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.ShopID = shopID(r)
		customer, err := page.Update(r.Context(), chi.URLParam(r, "customerId"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

func CustomerDelete(page CustomersPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := page.Delete(r.Context(), chi.URLParam(r, "customerId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

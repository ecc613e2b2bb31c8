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

// DeliveryPage is served by pages.Delivery.
type DeliveryPage interface {
	List(ctx context.Context, shopID string) (*pages.DeliveryView, error)
	AvailableOrders(ctx context.Context, shopID string) ([]models.Order, error)
	CreateRoute(ctx context.Context, shopID string, input models.RouteInput) (*pages.BatchView, error)
	MarkReady(ctx context.Context, id string) (*pages.BatchView, error)
	Delete(ctx context.Context, id string) error
	Optimize(ctx context.Context, shopID string, input pages.OptimizeRequest) (*pages.RoutePreview, error)
}

type createRouteRequest struct {
	OrderIDs        []string                `json:"order_ids" validate:"required,min=1,dive,required"`
	CrateCapacity   int                     `json:"crate_capacity" validate:"omitempty,min=5,max=20"`
	DeliveryPartner *models.DeliveryPartner `json:"delivery_partner,omitempty"`
}

func (r createRouteRequest) toInput(shopID string) models.RouteInput {
	return models.RouteInput{
		ShopID:          shopID,
		OrderIDs:        r.OrderIDs,
		CrateCapacity:   r.CrateCapacity,
		DeliveryPartner: r.DeliveryPartner,
	}
}

func DeliveryList(page DeliveryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.List(r.Context(), shopID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DeliveryAvailableOrders(page DeliveryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := page.AvailableOrders(r.Context(), shopID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func DeliveryCreateRoute(page DeliveryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRouteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		batch, err := page.CreateRoute(r.Context(), shopID(r), req.toInput(shopID(r)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, batch)
	}
}

func DeliveryMarkReady(page DeliveryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batch, err := page.MarkReady(r.Context(), chi.URLParam(r, "batchId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, batch)
	}
}

func DeliveryDelete(page DeliveryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := page.Delete(r.Context(), chi.URLParam(r, "batchId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func DeliveryOptimize(page DeliveryPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input pages.OptimizeRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		preview, err := page.Optimize(r.Context(), shopID(r), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preview)
	}
}

package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shopdash/api/middleware"
	"github.com/angelmondragon/shopdash/api/responses"
	"github.com/angelmondragon/shopdash/api/validators"
	"github.com/angelmondragon/shopdash/internal/pages"
	"github.com/angelmondragon/shopdash/pkg/auth"
	"github.com/angelmondragon/shopdash/pkg/logger"
)

// PartnerPage is served by pages.Partner.
type PartnerPage interface {
	Login(ctx context.Context, input pages.PartnerLogin) (*pages.PartnerSession, error)
	Routes(ctx context.Context, claims *auth.PartnerClaims) (*pages.PartnerView, error)
	Pickup(ctx context.Context, claims *auth.PartnerClaims, id string) (*pages.BatchView, error)
	MarkStop(ctx context.Context, claims *auth.PartnerClaims, id string, seq int) (*pages.BatchView, error)
	Deliver(ctx context.Context, claims *auth.PartnerClaims, id string) (*pages.BatchView, error)
}

func PartnerLogin(page PartnerPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input pages.PartnerLogin
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess, err := page.Login(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess)
	}
}

func PartnerRoutes(page PartnerPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.Routes(r.Context(), middleware.PartnerFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func PartnerPickup(page PartnerPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batch, err := page.Pickup(r.Context(), middleware.PartnerFromContext(r.Context()), chi.URLParam(r, "batchId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, batch)
	}
}

func PartnerMarkStop(page PartnerPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seq, err := validators.ParsePathInt(chi.URLParam(r, "seq"), "seq", 0, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		batch, err := page.MarkStop(r.Context(), middleware.PartnerFromContext(r.Context()), chi.URLParam(r, "batchId"), seq)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, batch)
	}
}

func PartnerDeliver(page PartnerPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batch, err := page.Deliver(r.Context(), middleware.PartnerFromContext(r.Context()), chi.URLParam(r, "batchId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, batch)
	}
}

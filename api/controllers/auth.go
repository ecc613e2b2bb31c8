package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/shopdash/api/responses"
	"github.com/angelmondragon/shopdash/api/validators"
	"github.com/angelmondragon/shopdash/internal/session"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// AuthPage is served by pages.Auth.
type AuthPage interface {
	Login(ctx context.Context, input models.LoginInput) (session.Snapshot, error)
	Register(ctx context.Context, input models.RegisterInput) (session.Snapshot, error)
	Logout(ctx context.Context) error
	Current() session.Snapshot
}

func AuthLogin(page AuthPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if page == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth unavailable"))
			return
		}
		var input models.LoginInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snap, err := page.Login(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

func AuthRegister(page AuthPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if page == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth unavailable"))
			return
		}
		var input models.RegisterInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snap, err := page.Register(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, snap)
	}
}

func AuthLogout(page AuthPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := page.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear session"))
			return
		}
		responses.WriteNoContent(w)
	}
}

// AuthSession reports the current session, including the loading phase.
func AuthSession(page AuthPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, page.Current())
	}
}

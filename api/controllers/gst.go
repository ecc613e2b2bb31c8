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

// GSTPage is served by pages.GST.
type GSTPage interface {
	Overview(ctx context.Context, shopID, period string) (*pages.GSTView, error)
	Generate(ctx context.Context, shopID, period string) (*models.GSTReport, error)
	File(ctx context.Context, id string) (*models.GSTReport, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string) ([]byte, string, error)
	Categorize(ctx context.Context, input pages.CategorizeRequest) (*models.GSTInfo, error)
}

type periodQuery struct {
	Period string `json:"period" validate:"omitempty,datetime=2006-01"`
}

func GSTOverview(page GSTPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := periodQuery{Period: validators.QueryString(r, "period", 7)}
		if err := validators.Struct(&q); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := page.Overview(r.Context(), shopID(r), q.Period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func GSTGenerate(page GSTPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input periodQuery
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		report, err := page.Generate(r.Context(), shopID(r), input.Period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, report)
	}
}

func GSTFile(page GSTPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := page.File(r.Context(), chi.URLParam(r, "reportId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func GSTDelete(page GSTPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := page.Delete(r.Context(), chi.URLParam(r, "reportId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func GSTExport(page GSTPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, filename, err := page.Export(r.Context(), chi.URLParam(r, "reportId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAttachment(w, "text/csv; charset=utf-8", filename, body)
	}
}

func GSTCategorize(page GSTPage, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input pages.CategorizeRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		info, err := page.Categorize(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, info)
	}
}

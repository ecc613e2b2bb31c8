package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopdash/api/responses"
	"github.com/angelmondragon/shopdash/api/validators"
	"github.com/angelmondragon/shopdash/internal/search"
	"github.com/angelmondragon/shopdash/pkg/logger"
)

// SearchBox is the debounced searcher behind the header search field.
type SearchBox interface {
	Submit(query string)
	Latest() search.Result
}

type searchRequest struct {
	Query string `json:"query" validate:"max=120"`
}

// SearchSubmit records a keystroke and answers with the results known so far.
func SearchSubmit(box SearchBox, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input searchRequest
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		box.Submit(input.Query)
		responses.WriteSuccessStatus(w, http.StatusAccepted, box.Latest())
	}
}

func SearchLatest(box SearchBox, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latest := box.Latest()
		if latest.Err != nil {
			responses.WriteError(r.Context(), logg, w, latest.Err)
			return
		}
		responses.WriteSuccess(w, latest)
	}
}

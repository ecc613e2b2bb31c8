package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the customers page size.
	DefaultLimit = 20
	// MaxLimit mirrors the backend's cap on list queries.
	MaxLimit = 100
)

// Page is a 1-based offset page.
type Page struct {
	Number int `json:"page"`
	Limit  int `json:"limit"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	number := p.Number
	if number < 1 {
		number = 1
	}
	return (number - 1) * NormalizeLimit(p.Limit)
}

// Apply writes limit and offset onto filters for the backend list call.
func (p Page) Apply(filters url.Values) url.Values {
	if filters == nil {
		filters = url.Values{}
	}
	filters.Set("limit", strconv.Itoa(NormalizeLimit(p.Limit)))
	filters.Set("offset", strconv.Itoa(p.Offset()))
	return filters
}

// HasNext reports whether a full page came back, which is the only signal the
// backend gives that more rows may exist.
func (p Page) HasNext(returned int) bool {
	return returned >= NormalizeLimit(p.Limit)
}

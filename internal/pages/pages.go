// Package pages builds the JSON view models served by the dashboard API.
// Each page owns the service calls and derivations behind one screen.
package pages

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/shopdash/internal/session"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// Session is the slice of session.State the pages mutate.
type Session interface {
	Login(ctx context.Context, user models.User, shop models.Shop, sessionID string) error
	Logout(ctx context.Context) error
	SetShop(ctx context.Context, shop models.Shop) error
	Snapshot() session.Snapshot
}

// listAllLimit matches the backend cap, used where a page needs the whole
// collection rather than one screen of it.
const listAllLimit = "100"

func shopFilters(shopID string) url.Values {
	filters := url.Values{"limit": {listAllLimit}}
	if shopID != "" {
		filters.Set("shop_id", shopID)
	}
	return filters
}

func requireShop(shopID string) error {
	if strings.TrimSpace(shopID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing").
			WithDetails(map[string]any{"redirect": "/login"})
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// sameDay compares calendar days in UTC, which is how the backend writes its
// naive timestamps.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func nowFunc(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/shopdash/api/middleware"
	"github.com/angelmondragon/shopdash/internal/pages"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// DashboardPage is served by pages.Dashboard.
type DashboardPage interface {
	Build(ctx context.Context, shopID string) (*pages.DashboardView, error)
}

// SettingsPage is served by pages.Settings.
type SettingsPage interface {
	Get(ctx context.Context, shopID string) (*models.Shop, error)
	Update(ctx context.Context, shopID string, input models.ShopUpdate) (*models.Shop, error)
}

func shopID(r *http.Request) string {
	return middleware.ShopIDFromContext(r.Context())
}

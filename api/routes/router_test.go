package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/shopdash/api/controllers"
	"github.com/angelmondragon/shopdash/internal/pages"
	"github.com/angelmondragon/shopdash/internal/search"
	"github.com/angelmondragon/shopdash/internal/session"
	"github.com/angelmondragon/shopdash/pkg/config"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSession struct {
	authed bool
}

func (s stubSession) Loading() bool         { return false }
func (s stubSession) IsAuthenticated() bool { return s.authed }
func (s stubSession) ShopID() string {
	if s.authed {
		return "shop-1"
	}
	return ""
}

type stubAuth struct{ controllers.AuthPage }

func (stubAuth) Current() session.Snapshot { return session.Snapshot{} }

type stubDashboard struct{ shopID string }

func (s *stubDashboard) Build(_ context.Context, shopID string) (*pages.DashboardView, error) {
	s.shopID = shopID
	return &pages.DashboardView{}, nil
}

type stubStorefront struct {
	controllers.StorefrontPage
	shopID string
}

func (s *stubStorefront) View(_ context.Context, shopID, _, _ string) (*pages.StorefrontView, error) {
	s.shopID = shopID
	return &pages.StorefrontView{Shop: models.Shop{Ident: models.Ident{ID: shopID}}}, nil
}

type stubSearch struct{}

func (stubSearch) Submit(string)         {}
func (stubSearch) Latest() search.Result { return search.Result{} }

func testConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Env: "test"},
		PartnerJWT: config.PartnerJWTConfig{Secret: "test-secret", Issuer: "shopdash", ExpirationMinutes: 60},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func newTestRouter(authed bool, dash *stubDashboard, front *stubStorefront) http.Handler {
	return NewRouter(testConfig(), logger.Nop(), Pages{
		Session:    stubSession{authed: authed},
		Auth:       stubAuth{},
		Dashboard:  dash,
		Storefront: front,
		Search:     stubSearch{},
		Ready:      map[string]controllers.Pinger{"session_store": stubPinger{}},
		Gatherer:   prometheus.NewRegistry(),
	})
}

func TestRouterHealthAndMetrics(t *testing.T) {
	router := newTestRouter(false, &stubDashboard{}, &stubStorefront{})

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, rec.Code)
		}
	}
}

func TestRouterSessionGate(t *testing.T) {
	dash := &stubDashboard{}

	rec := httptest.NewRecorder()
	newTestRouter(false, dash, &stubStorefront{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	newTestRouter(true, dash, &stubStorefront{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	if rec.Code != http.StatusOK || dash.shopID != "shop-1" {
		t.Fatalf("expected dashboard for shop-1, got %d %q", rec.Code, dash.shopID)
	}
}

func TestRouterPublicRoutes(t *testing.T) {
	front := &stubStorefront{}
	router := newTestRouter(false, &stubDashboard{}, front)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/storefront/shop-9", nil))
	if rec.Code != http.StatusOK || front.shopID != "shop-9" {
		t.Fatalf("expected storefront for shop-9, got %d %q", rec.Code, front.shopID)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected session snapshot, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/partner/routes", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected partner routes to need a token, got %d", rec.Code)
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(true, &stubDashboard{}, &stubStorefront{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected foreign origin rejected, got %q", got)
	}
}

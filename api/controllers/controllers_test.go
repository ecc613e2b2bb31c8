package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shopdash/api/middleware"
	"github.com/angelmondragon/shopdash/internal/pages"
	"github.com/angelmondragon/shopdash/internal/search"
	"github.com/angelmondragon/shopdash/pkg/auth"
	"github.com/angelmondragon/shopdash/pkg/config"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
	"github.com/angelmondragon/shopdash/pkg/types"
)

func withRouteParams(req *http.Request, kv ...string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		routeCtx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func withShop(req *http.Request, shopID string) *http.Request {
	return req.WithContext(middleware.WithShopID(req.Context(), shopID))
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(raw)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return body.Error.Code
}

type stubOrdersPage struct {
	OrdersPage
	statusID string
	status   string
	shopID   string
	query    string
}

func (s *stubOrdersPage) List(_ context.Context, shopID, status, query string) (*pages.OrdersView, error) {
	s.shopID, s.status, s.query = shopID, status, query
	return &pages.OrdersView{Status: status, Query: query}, nil
}

func (s *stubOrdersPage) UpdateStatus(_ context.Context, id, status string) (*models.Order, error) {
	s.statusID, s.status = id, status
	return &models.Order{Ident: models.Ident{ID: id}}, nil
}

func TestOrderListPassesShopAndFilters(t *testing.T) {
	page := &stubOrdersPage{}
	req := withShop(httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=pending&q=%20MG%20Road%20", nil), "shop-1")
	rec := httptest.NewRecorder()
	OrderList(page, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if page.shopID != "shop-1" || page.status != "pending" || page.query != "MG Road" {
		t.Fatalf("unexpected call %+v", page)
	}
}

func TestOrderUpdateStatusReadsPathParam(t *testing.T) {
	page := &stubOrdersPage{}
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/o-7/status", jsonBody(t, map[string]string{"status": "confirmed"}))
	req = withRouteParams(req, "orderId", "o-7")
	rec := httptest.NewRecorder()
	OrderUpdateStatus(page, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || page.statusID != "o-7" || page.status != "confirmed" {
		t.Fatalf("unexpected result %d %+v", rec.Code, page)
	}
}

func TestOrderUpdateStatusRequiresStatus(t *testing.T) {
	page := &stubOrdersPage{}
	req := withRouteParams(httptest.NewRequest(http.MethodPatch, "/", jsonBody(t, map[string]string{})), "orderId", "o-7")
	rec := httptest.NewRecorder()
	OrderUpdateStatus(page, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if page.statusID != "" {
		t.Fatalf("expected page untouched")
	}
}

type stubInventoryPage struct {
	InventoryPage
	created pages.NewProduct
	shopID  string
}

func (s *stubInventoryPage) CreateProduct(_ context.Context, shopID string, input pages.NewProduct) (*pages.StockRow, error) {
	s.shopID, s.created = shopID, input
	return &pages.StockRow{Product: models.Product{Name: input.Name}}, nil
}

func TestInventoryCreateProductStampsSessionShop(t *testing.T) {
	page := &stubInventoryPage{}
	body := map[string]any{
		"name": "Basmati Rice", "category": "Grains", "price": 85, "unit": "kg",
		"gst_rate": 5, "stock_quantity": 40, "min_stock_level": 10,
	}
	req := withShop(httptest.NewRequest(http.MethodPost, "/api/v1/inventory/products", jsonBody(t, body)), "shop-1")
	rec := httptest.NewRecorder()
	InventoryCreateProduct(page, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if page.shopID != "shop-1" || page.created.ShopID != "shop-1" || page.created.StockQuantity != 40 {
		t.Fatalf("unexpected create %+v", page.created)
	}
}

func TestInventoryCreateProductRejectsBadRate(t *testing.T) {
	page := &stubInventoryPage{}
	body := map[string]any{"name": "Rice", "category": "Grains", "price": 85, "unit": "kg", "gst_rate": 7}
	req := withShop(httptest.NewRequest(http.MethodPost, "/", jsonBody(t, body)), "shop-1")
	rec := httptest.NewRecorder()
	InventoryCreateProduct(page, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

type stubGSTPage struct {
	GSTPage
	exportErr error
}

func (s *stubGSTPage) Export(_ context.Context, id string) ([]byte, string, error) {
	if s.exportErr != nil {
		return nil, "", s.exportErr
	}
	return []byte("Period,Total\n2026-02,100.00\n"), "gst-report-2026-02.csv", nil
}

func (s *stubGSTPage) Overview(_ context.Context, _, period string) (*pages.GSTView, error) {
	return &pages.GSTView{}, nil
}

func TestGSTExportWritesCSV(t *testing.T) {
	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/api/v1/gst/reports/r1/export", nil), "reportId", "r1")
	rec := httptest.NewRecorder()
	GSTExport(&stubGSTPage{}, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="gst-report-2026-02.csv"` {
		t.Fatalf("unexpected disposition %q", cd)
	}
}

func TestGSTExportNotFound(t *testing.T) {
	page := &stubGSTPage{exportErr: pkgerrors.New(pkgerrors.CodeNotFound, "report not found")}
	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/", nil), "reportId", "missing")
	rec := httptest.NewRecorder()
	GSTExport(page, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestGSTOverviewValidatesPeriod(t *testing.T) {
	req := withShop(httptest.NewRequest(http.MethodGet, "/api/v1/gst?period=2026-13", nil), "shop-1")
	rec := httptest.NewRecorder()
	GSTOverview(&stubGSTPage{}, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	req = withShop(httptest.NewRequest(http.MethodGet, "/api/v1/gst?period=2026-02", nil), "shop-1")
	rec = httptest.NewRecorder()
	GSTOverview(&stubGSTPage{}, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

type stubPartnerPage struct {
	PartnerPage
	claims *auth.PartnerClaims
	id     string
	seq    int
}

func (s *stubPartnerPage) MarkStop(_ context.Context, claims *auth.PartnerClaims, id string, seq int) (*pages.BatchView, error) {
	s.claims, s.id, s.seq = claims, id, seq
	return &pages.BatchView{}, nil
}

func TestPartnerMarkStopParsesSequence(t *testing.T) {
	page := &stubPartnerPage{}
	claims := &auth.PartnerClaims{Phone: "+919000011111"}
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/partner/routes/b1/stops/3", nil)
	req = withRouteParams(req, "batchId", "b1", "seq", "3")
	req = req.WithContext(middleware.WithPartner(req.Context(), claims))
	rec := httptest.NewRecorder()
	PartnerMarkStop(page, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || page.id != "b1" || page.seq != 3 || page.claims != claims {
		t.Fatalf("unexpected call %d %+v", rec.Code, page)
	}

	req = withRouteParams(httptest.NewRequest(http.MethodPatch, "/", nil), "batchId", "b1", "seq", "first")
	rec = httptest.NewRecorder()
	PartnerMarkStop(page, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric seq, got %d", rec.Code)
	}
}

type stubSearchBox struct {
	submitted []string
	latest    search.Result
}

func (s *stubSearchBox) Submit(q string)       { s.submitted = append(s.submitted, q) }
func (s *stubSearchBox) Latest() search.Result { return s.latest }

func TestSearchSubmitAndLatest(t *testing.T) {
	box := &stubSearchBox{latest: search.Result{Seq: 2, Query: "ric", Hits: []search.Hit{{Type: search.HitProduct, ID: "rice", Title: "Rice"}}}}

	rec := httptest.NewRecorder()
	SearchSubmit(box, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/search", jsonBody(t, map[string]string{"query": "rice"})))
	if rec.Code != http.StatusAccepted || len(box.submitted) != 1 || box.submitted[0] != "rice" {
		t.Fatalf("unexpected submit %d %v", rec.Code, box.submitted)
	}

	rec = httptest.NewRecorder()
	SearchLatest(box, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))
	var body struct {
		Data search.Result `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Seq != 2 || len(body.Data.Hits) != 1 {
		t.Fatalf("unexpected latest %+v", body.Data)
	}

	box.latest = search.Result{Seq: 3, Err: pkgerrors.New(pkgerrors.CodeDependency, "backend down")}
	rec = httptest.NewRecorder()
	SearchLatest(box, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))
	if rec.Code != http.StatusBadGateway || errorCode(t, rec) != string(pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %d", rec.Code)
	}
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"session_store": stubPinger{}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"session_store": stubPinger{err: errors.New("down")}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}

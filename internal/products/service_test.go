package products

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/angelmondragon/shopdash/pkg/apiclient"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

func newTestService(t *testing.T, handler http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewService(client)
}

func TestListUnwrapsEnvelopeAndResolvesLegacyIDs(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "dairy" {
			t.Fatalf("expected category filter, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]any{
				{"$id": "p1", "name": "Milk", "price": 50, "gst_rate": 5},
				{"id": "p2", "name": "Bread", "price": 40},
			},
		})
	})

	items, err := svc.List(context.Background(), url.Values{"category": {"dairy"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != "p1" || items[1].ID != "p2" {
		t.Fatalf("unexpected items %+v", items)
	}
	if items[0].LegacyID != "" {
		t.Fatalf("expected legacy id to be folded")
	}
}

func TestListMissingKeyIsEmpty(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0}`))
	})
	items, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestCreatePostsToCollection(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/products/" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var in models.ProductInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "p9", "name": in.Name, "gst_rate": in.GSTRate})
	})

	product, err := svc.Create(context.Background(), models.ProductInput{ShopID: "s1", Name: "Rice", GSTRate: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.ID != "p9" || product.Name != "Rice" {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/missing" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Product not found"}`))
	})
	_, err := svc.Get(context.Background(), "missing")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected")
	})
	if err := svc.Delete(context.Background(), " "); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

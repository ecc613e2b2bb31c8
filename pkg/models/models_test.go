package models

import (
	"encoding/json"
	"testing"

	"github.com/angelmondragon/shopdash/pkg/enums"
)

func TestInventoryStatusBoundaries(t *testing.T) {
	cases := []struct {
		qty, min float64
		want     enums.InventoryStatus
	}{
		{0, 5, enums.InventoryStatusOutOfStock},
		{1, 5, enums.InventoryStatusLowStock},
		{5, 5, enums.InventoryStatusLowStock},
		{6, 5, enums.InventoryStatusInStock},
		{0, 0, enums.InventoryStatusOutOfStock},
	}
	for _, tc := range cases {
		got := InventoryRecord{StockQuantity: tc.qty, MinStockLevel: tc.min}.Status()
		if got != tc.want {
			t.Fatalf("qty=%v min=%v: expected %s got %s", tc.qty, tc.min, tc.want, got)
		}
	}
}

func TestOrderItemsDecodeFromStringOrArray(t *testing.T) {
	raw := `[
		{"$id":"o1","items":"[{\"product_id\":\"p1\",\"name\":\"Rice\",\"quantity\":2,\"unit\":\"kg\",\"price\":50,\"total\":100}]","status":"confirmed"},
		{"id":"o2","items":[{"product_id":"p2","name":"Milk","quantity":1,"unit":"L","price":30,"total":30}],"$createdAt":"2026-01-02T08:00:00.000+00:00"},
		{"id":"o3","items":"not json"}
	]`
	var orders []Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ResolveAll(orders)

	if orders[0].ID != "o1" || len(orders[0].Items) != 1 || orders[0].Items[0].Total != 100 {
		t.Fatalf("unexpected first order %+v", orders[0])
	}
	if orders[0].Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed got %s", orders[0].Status)
	}
	if len(orders[1].Items) != 1 || orders[1].CreatedAt.IsZero() {
		t.Fatalf("unexpected second order %+v", orders[1])
	}
	if len(orders[2].Items) != 0 {
		t.Fatalf("expected malformed items to decode empty")
	}
}

func TestResolveIDPrefersCanonical(t *testing.T) {
	ident := Ident{ID: "canon", LegacyID: "legacy"}
	ident.ResolveID()
	if ident.ID != "canon" || ident.LegacyID != "" {
		t.Fatalf("unexpected ident %+v", ident)
	}
}

func TestGSTReportBreakdownFromString(t *testing.T) {
	var report GSTReport
	if err := json.Unmarshal([]byte(`{"id":"r1","period":"2026-01","breakdown":"{\"5\":1000,\"18\":500}"}`), &report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Breakdown["5"] != 1000 || report.Breakdown["18"] != 500 {
		t.Fatalf("unexpected breakdown %v", report.Breakdown)
	}
}

func TestProductRateFallsBackToZero(t *testing.T) {
	if (Product{GSTRate: 18}).Rate() != enums.GSTRate18 {
		t.Fatalf("expected 18 slab")
	}
	if (Product{GSTRate: 7.5}).Rate() != enums.GSTRate0 {
		t.Fatalf("expected 0 slab for invalid rate")
	}
}

package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/angelmondragon/shopdash/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
	"github.com/angelmondragon/shopdash/pkg/types"
)

func TestGSTOverviewDefaultsToCurrentMonth(t *testing.T) {
	reports := &stubReports{list: []models.GSTReport{
		{Ident: models.Ident{ID: "r1"}, Period: "2026-01", Status: enums.ReportStatusFiled},
		{Ident: models.Ident{ID: "r2"}, Period: "2026-03", TotalSales: 1000, TotalGST: 50, Breakdown: map[string]float64{"5": 1000}, Status: enums.ReportStatusPending},
	}}
	page := NewGST(GSTParams{Reports: reports, Now: fixedNow})

	view, err := page.Overview(context.Background(), "shop-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Summary.Period != "2026-03" || view.Summary.Report == nil || view.Summary.Report.ID != "r2" {
		t.Fatalf("unexpected summary %+v", view.Summary)
	}
	if len(view.Summary.Slabs) != 1 || view.Summary.Slabs[0].Percentage != 100 {
		t.Fatalf("unexpected slabs %+v", view.Summary.Slabs)
	}
	if view.Recent[0].ID != "r2" || view.Pending != 1 {
		t.Fatalf("unexpected recent %+v pending %d", view.Recent, view.Pending)
	}
}

func TestGSTGenerateRejectsExistingPeriod(t *testing.T) {
	reports := &stubReports{list: []models.GSTReport{{Ident: models.Ident{ID: "r2"}, Period: "2026-03"}}}
	page := NewGST(GSTParams{Reports: reports, Orders: &stubOrders{}, Products: &stubProducts{}, Now: fixedNow})
	if _, err := page.Generate(context.Background(), "shop-1", ""); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(reports.created) != 0 {
		t.Fatalf("expected no report created")
	}
}

func TestGSTGenerateFromOrders(t *testing.T) {
	reports := &stubReports{}
	orderSvc := &stubOrders{list: []models.Order{{
		Ident:     models.Ident{ID: "o1"},
		Status:    enums.OrderStatusDelivered,
		GSTAmount: 40.9,
		Items: []models.OrderItem{
			{ProductID: "rice", Quantity: 2, Price: 85, Total: 170},
			{ProductID: "oil", Quantity: 1, Price: 180, Total: 180},
		},
		CreatedAt: types.NewTimestamp(testNow),
	}}}
	page := NewGST(GSTParams{Reports: reports, Orders: orderSvc, Products: &stubProducts{list: catalog}, Now: fixedNow})

	report, err := page.Generate(context.Background(), "shop-1", "2026-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ID != "new-report" {
		t.Fatalf("unexpected report %+v", report)
	}
	input := reports.created[0]
	if input.TotalSales != 350 || input.Breakdown["5"] != 170 || input.Breakdown["18"] != 180 || input.Breakdown["28"] != 0 {
		t.Fatalf("unexpected input %+v", input)
	}
}

func TestGSTFileTwiceIsConflict(t *testing.T) {
	reports := &stubReports{list: []models.GSTReport{{Ident: models.Ident{ID: "r1"}, Status: enums.ReportStatusFiled}}}
	page := NewGST(GSTParams{Reports: reports})
	if _, err := page.File(context.Background(), "r1"); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(reports.filed) != 0 {
		t.Fatalf("expected no file call")
	}
}

func TestGSTExportCSV(t *testing.T) {
	reports := &stubReports{list: []models.GSTReport{{
		Ident:      models.Ident{ID: "r1"},
		Period:     "2026-02",
		TotalSales: 200,
		TotalGST:   10,
		Breakdown:  map[string]float64{"5": 200},
	}}}
	page := NewGST(GSTParams{Reports: reports})
	body, name, err := page.Export(context.Background(), "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "gst-report-2026-02.csv" {
		t.Fatalf("unexpected filename %q", name)
	}
	if !strings.HasPrefix(string(body), "period,rate,taxable_amount,tax,share_pct\n") {
		t.Fatalf("unexpected csv %q", body)
	}
}

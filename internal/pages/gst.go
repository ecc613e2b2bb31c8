package pages

import (
	"bytes"
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopdash/internal/ai"
	"github.com/angelmondragon/shopdash/internal/gst"
	"github.com/angelmondragon/shopdash/internal/orders"
	"github.com/angelmondragon/shopdash/internal/products"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

const recentReportCount = 6

type GSTParams struct {
	Reports  gst.Service
	Orders   orders.Service
	Products products.Service
	AI       ai.Service
	Now      func() time.Time
}

type GST struct {
	params GSTParams
	now    func() time.Time
}

func NewGST(params GSTParams) *GST {
	return &GST{params: params, now: nowFunc(params.Now)}
}

type GSTView struct {
	Summary gst.Summary        `json:"summary"`
	Recent  []models.GSTReport `json:"recent"`
	Pending int                `json:"pending"`
}

func (g *GST) Overview(ctx context.Context, shopID, period string) (*GSTView, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	reports, err := g.params.Reports.List(ctx, shopFilters(shopID))
	if err != nil {
		return nil, err
	}
	view := &GSTView{
		Summary: gst.Summarize(reports, period, g.now()),
		Recent:  gst.Recent(reports, recentReportCount),
	}
	for _, r := range reports {
		if r.Status != enums.ReportStatusFiled {
			view.Pending++
		}
	}
	return view, nil
}

// Generate builds the report for period from the shop's orders and stores it.
// A period that already has a report is a conflict.
func (g *GST) Generate(ctx context.Context, shopID, period string) (*models.GSTReport, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	period = strings.TrimSpace(period)
	if period == "" {
		period = gst.CurrentPeriod(g.now())
	}

	var (
		reports []models.GSTReport
		list    []models.Order
		catalog []models.Product
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		reports, err = g.params.Reports.List(gctx, shopFilters(shopID))
		return err
	})
	group.Go(func() error {
		var err error
		list, err = g.params.Orders.List(gctx, shopFilters(shopID))
		return err
	})
	group.Go(func() error {
		var err error
		catalog, err = g.params.Products.List(gctx, shopFilters(shopID))
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	for _, r := range reports {
		if r.Period == period {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "report already exists for period").
				WithDetails(map[string]any{"field": "period", "report_id": r.ID})
		}
	}

	input, err := gst.GenerateInput(shopID, period, list, catalog, g.now())
	if err != nil {
		return nil, err
	}
	return g.params.Reports.Create(ctx, input)
}

// File marks a report filed. Filing twice is rejected before the backend is
// called.
func (g *GST) File(ctx context.Context, id string) (*models.GSTReport, error) {
	report, err := g.params.Reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status == enums.ReportStatusFiled {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "report already filed").
			WithDetails(map[string]any{"report_id": id})
	}
	return g.params.Reports.File(ctx, id)
}

func (g *GST) Delete(ctx context.Context, id string) error {
	return g.params.Reports.Delete(ctx, id)
}

// Export renders the report as CSV and returns the suggested filename.
func (g *GST) Export(ctx context.Context, id string) ([]byte, string, error) {
	report, err := g.params.Reports.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := gst.WriteCSV(&buf, *report); err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render report")
	}
	return buf.Bytes(), gst.ExportFilename(*report), nil
}

type CategorizeRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	Category    string `json:"category"`
}

func (g *GST) Categorize(ctx context.Context, input CategorizeRequest) (*models.GSTInfo, error) {
	if g.params.AI == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ai unavailable")
	}
	return g.params.AI.CategorizeGST(ctx, strings.TrimSpace(input.ProductName), strings.TrimSpace(input.Category))
}

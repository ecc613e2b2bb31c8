package gst

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
	"github.com/angelmondragon/shopdash/pkg/types"
)

// InPeriod reports whether ts falls inside the YYYY-MM period.
func InPeriod(ts types.Timestamp, period string) bool {
	return !ts.IsZero() && ts.UTC().Format(PeriodLayout) == period
}

// GenerateInput builds a report for period from the shop's orders. Line
// totals are bucketed by the product's GST rate; products missing from the
// catalog fall into the 0 slab. Cancelled orders are ignored.
func GenerateInput(shopID, period string, orders []models.Order, products []models.Product, now time.Time) (models.GSTReportInput, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		period = CurrentPeriod(now)
	}
	if _, err := time.Parse(PeriodLayout, period); err != nil {
		return models.GSTReportInput{}, pkgerrors.New(pkgerrors.CodeValidation, "period must be YYYY-MM").
			WithDetails(map[string]any{"field": "period", "value": period})
	}

	rates := make(map[string]enums.GSTRate, len(products))
	for _, p := range products {
		rates[p.ID] = p.Rate()
	}

	sales := make(map[enums.GSTRate]decimal.Decimal, len(enums.GSTRates()))
	for _, rate := range enums.GSTRates() {
		sales[rate] = decimal.Zero
	}
	totalSales := decimal.Zero
	totalGST := decimal.Zero
	for _, order := range orders {
		if order.Status == enums.OrderStatusCancelled || !InPeriod(order.CreatedAt, period) {
			continue
		}
		totalGST = totalGST.Add(decimal.NewFromFloat(order.GSTAmount))
		for _, item := range order.Items {
			line := decimal.NewFromFloat(item.Total)
			if line.IsZero() {
				line = decimal.NewFromFloat(item.Price).Mul(decimal.NewFromFloat(item.Quantity))
			}
			rate := rates[item.ProductID]
			sales[rate] = sales[rate].Add(line)
			totalSales = totalSales.Add(line)
		}
	}

	breakdown := make(map[string]float64, len(sales))
	for rate, amount := range sales {
		breakdown[rate.String()] = round(amount)
	}
	return models.GSTReportInput{
		ShopID:      shopID,
		Period:      period,
		TotalSales:  round(totalSales),
		TotalGST:    round(totalGST),
		Breakdown:   breakdown,
		Status:      enums.ReportStatusPending,
		GeneratedAt: types.NewTimestamp(now),
	}, nil
}

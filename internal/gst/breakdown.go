// Package gst derives tax slabs and report inputs from shop data. Nothing
// computed here is written back except through GenerateInput.
package gst

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopdash/pkg/models"
)

// PeriodLayout is the report period format, YYYY-MM.
const PeriodLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

// Slab is one rate row of a report breakdown.
type Slab struct {
	Rate       string  `json:"rate"`
	RateValue  float64 `json:"rate_value"`
	Amount     float64 `json:"amount"`
	Tax        float64 `json:"tax"`
	Percentage float64 `json:"percentage"`
}

type slab struct {
	rate   decimal.Decimal
	amount decimal.Decimal
}

// Breakdown expands the report's rate->sales map into slabs sorted by rate.
// Keys that are not numbers, with or without a trailing %, are skipped.
func Breakdown(report models.GSTReport) []Slab {
	raw := make([]slab, 0, len(report.Breakdown))
	for key, amount := range report.Breakdown {
		rate, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(key), "%"))
		if err != nil {
			continue
		}
		raw = append(raw, slab{rate: rate, amount: decimal.NewFromFloat(amount)})
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].rate.LessThan(raw[j].rate) })

	total := decimal.NewFromFloat(report.TotalSales)
	out := make([]Slab, 0, len(raw))
	for _, s := range raw {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = s.amount.Div(total).Mul(hundred)
		}
		out = append(out, Slab{
			Rate:       s.rate.String() + "%",
			RateValue:  s.rate.InexactFloat64(),
			Amount:     round(s.amount),
			Tax:        round(s.amount.Mul(s.rate).Div(hundred)),
			Percentage: round(pct),
		})
	}
	return out
}

// Summary is the headline view for one period.
type Summary struct {
	Period     string            `json:"period"`
	Report     *models.GSTReport `json:"report,omitempty"`
	TotalSales float64           `json:"total_sales"`
	TotalGST   float64           `json:"total_gst"`
	Slabs      []Slab            `json:"slabs"`
}

// CurrentPeriod is the month-to-date period for now.
func CurrentPeriod(now time.Time) string {
	return now.Format(PeriodLayout)
}

// Summarize picks the report for period, defaulting to the month of now. A
// period without a report yields an empty summary rather than an error.
func Summarize(reports []models.GSTReport, period string, now time.Time) Summary {
	period = strings.TrimSpace(period)
	if period == "" {
		period = CurrentPeriod(now)
	}
	summary := Summary{Period: period, Slabs: []Slab{}}
	for i := range reports {
		if reports[i].Period != period {
			continue
		}
		report := reports[i]
		summary.Report = &report
		summary.TotalSales = report.TotalSales
		summary.TotalGST = report.TotalGST
		summary.Slabs = Breakdown(report)
		break
	}
	return summary
}

// Recent returns up to limit reports, newest period first.
func Recent(reports []models.GSTReport, limit int) []models.GSTReport {
	out := append([]models.GSTReport(nil), reports...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

package gst

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/angelmondragon/shopdash/pkg/models"
)

var csvHeader = []string{"period", "rate", "taxable_amount", "tax", "share_pct"}

// WriteCSV writes one row per slab followed by a totals row.
func WriteCSV(w io.Writer, report models.GSTReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range Breakdown(report) {
		row := []string{report.Period, s.Rate, money(s.Amount), money(s.Tax), money(s.Percentage)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{report.Period, "total", money(report.TotalSales), money(report.TotalGST), ""}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename is the attachment name for a report export.
func ExportFilename(report models.GSTReport) string {
	return "gst-report-" + report.Period + ".csv"
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

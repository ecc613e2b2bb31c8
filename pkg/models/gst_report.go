package models

import (
	"encoding/json"

	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/types"
)

type GSTReport struct {
	Ident
	ShopID      string             `json:"shop_id"`
	Period      string             `json:"period"`
	TotalSales  float64            `json:"total_sales"`
	TotalGST    float64            `json:"total_gst"`
	Breakdown   map[string]float64 `json:"breakdown"`
	Status      enums.ReportStatus `json:"status"`
	GeneratedAt types.Timestamp    `json:"generated_at,omitzero"`
	FiledAt     types.Timestamp    `json:"filed_at,omitzero"`
}

// UnmarshalJSON accepts the breakdown as an object or as a JSON string, which
// is how the document store keeps it.
func (r *GSTReport) UnmarshalJSON(data []byte) error {
	type alias GSTReport
	aux := struct {
		*alias
		Breakdown json.RawMessage `json:"breakdown"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	breakdown := map[string]float64{}
	if !types.DecodeFlexible(aux.Breakdown, &breakdown) {
		breakdown = map[string]float64{}
	}
	r.Breakdown = breakdown
	return nil
}

type GSTReportInput struct {
	ShopID      string             `json:"shop_id" validate:"required"`
	Period      string             `json:"period" validate:"required,datetime=2006-01"`
	TotalSales  float64            `json:"total_sales"`
	TotalGST    float64            `json:"total_gst"`
	Breakdown   map[string]float64 `json:"breakdown"`
	Status      enums.ReportStatus `json:"status"`
	GeneratedAt types.Timestamp    `json:"generated_at,omitzero"`
}

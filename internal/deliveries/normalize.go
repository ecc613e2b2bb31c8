package deliveries

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
	"github.com/angelmondragon/shopdash/pkg/types"
)

// Variant names the schema a raw batch record was written in.
type Variant string

const (
	// VariantLegacy records carry driver_name/driver_phone and a route_info
	// blob, usually JSON-encoded as a string.
	VariantLegacy Variant = "legacy"
	// VariantStructured records carry route_stops, route_geometry and a
	// nested delivery_partner.
	VariantStructured Variant = "structured"
)

// routeInfo is the legacy route blob.
type routeInfo struct {
	Stops    []routeInfoStop `json:"stops"`
	Geometry [][]float64     `json:"geometry"`
	TotalKM  *float64        `json:"total_km"`
	EstMins  *float64        `json:"est_mins"`
}

type routeInfoStop struct {
	Seq     int     `json:"seq"`
	OrderID string  `json:"order_id"`
	Name    string  `json:"name"`
	Addr    string  `json:"addr"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Status  string  `json:"status"`
}

type rawGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type fields map[string]json.RawMessage

// Classify reports which schema raw was written in. Records carrying none of
// the distinguishing fields count as structured.
func Classify(raw json.RawMessage) Variant {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return VariantStructured
	}
	return f.variant()
}

func (f fields) variant() Variant {
	for _, key := range []string{"route_stops", "route_geometry", "delivery_partner"} {
		if types.IsPresent(f[key]) {
			return VariantStructured
		}
	}
	for _, key := range []string{"route_info", "driver_name", "driver_phone"} {
		if types.IsPresent(f[key]) {
			return VariantLegacy
		}
	}
	return VariantStructured
}

// Normalize turns a raw backend batch of either schema into the canonical
// shape. It never fails: malformed or mistyped fields fall back to their
// zero value. Applying it to its own marshalled output is a no-op.
func Normalize(raw json.RawMessage) models.DeliveryBatch {
	batch := models.DeliveryBatch{
		OrderIDs:   []string{},
		RouteStops: []models.RouteStop{},
		Crates:     []models.Crate{},
	}

	var f fields
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return batch
	}

	batch.ID = f.str("id")
	if batch.ID == "" {
		batch.ID = f.str("$id")
	}
	batch.ShopID = f.str("shop_id")
	batch.BatchNumber = f.str("batch_number")
	batch.Area = f.str("area")
	batch.Status = enums.DeliveryStatus(f.str("status"))

	var orderIDs []string
	if types.DecodeFlexible(f["order_ids"], &orderIDs) && orderIDs != nil {
		batch.OrderIDs = orderIDs
	}
	var crates []models.Crate
	if types.DecodeFlexible(f["crates"], &crates) && crates != nil {
		for i := range crates {
			if crates[i].AssignedOrderIDs == nil {
				crates[i].AssignedOrderIDs = []string{}
			}
		}
		batch.Crates = crates
	}

	if v, ok := f.num("capacity_used"); ok {
		batch.CapacityUsed = int(math.Round(v))
	}
	distance, hasDistance := f.num("total_distance")
	minutes, hasMinutes := f.num("estimated_time")

	_ = batch.StartedAt.UnmarshalJSON(f["started_at"])
	_ = batch.CompletedAt.UnmarshalJSON(f["completed_at"])

	var stops []models.RouteStop
	if types.DecodeFlexible(f["route_stops"], &stops) && stops != nil {
		batch.RouteStops = stops
	}
	var geometry rawGeometry
	if types.DecodeFlexible(f["route_geometry"], &geometry) {
		batch.RouteGeometry = lineString(geometry.Type, geometry.Coordinates)
	}
	var partner models.DeliveryPartner
	if types.DecodeFlexible(f["delivery_partner"], &partner) {
		batch.DeliveryPartner = partnerOrNil(partner)
	}

	var info routeInfo
	if types.DecodeFlexible(f["route_info"], &info) {
		if !types.IsPresent(f["route_stops"]) {
			batch.RouteStops = stopsFromInfo(info.Stops)
		}
		if batch.RouteGeometry == nil {
			batch.RouteGeometry = lineString("", info.Geometry)
		}
		if !hasDistance && info.TotalKM != nil {
			distance, hasDistance = *info.TotalKM, true
		}
		if !hasMinutes && info.EstMins != nil {
			minutes, hasMinutes = *info.EstMins, true
		}
	}
	if batch.DeliveryPartner == nil {
		batch.DeliveryPartner = partnerOrNil(models.DeliveryPartner{
			Name:  f.str("driver_name"),
			Phone: f.str("driver_phone"),
		})
	}

	if hasDistance {
		batch.TotalDistance = distance
	}
	if hasMinutes {
		batch.EstimatedTime = int(math.Round(minutes))
	}

	for i := range batch.RouteStops {
		if !batch.RouteStops[i].Status.IsValid() {
			batch.RouteStops[i].Status = enums.StopStatusPending
		}
	}
	sort.SliceStable(batch.RouteStops, func(i, j int) bool {
		return batch.RouteStops[i].Sequence < batch.RouteStops[j].Sequence
	})
	return batch
}

// NormalizeAll normalizes every raw record, preserving order.
func NormalizeAll(raws []json.RawMessage) []models.DeliveryBatch {
	out := make([]models.DeliveryBatch, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

func stopsFromInfo(in []routeInfoStop) []models.RouteStop {
	out := make([]models.RouteStop, 0, len(in))
	for _, s := range in {
		orderID := s.OrderID
		if orderID == "" {
			orderID = "order-" + strconv.Itoa(s.Seq)
		}
		out = append(out, models.RouteStop{
			OrderID:      orderID,
			CustomerName: s.Name,
			Address:      s.Addr,
			Latitude:     s.Lat,
			Longitude:    s.Lon,
			Status:       enums.StopStatus(s.Status),
			Sequence:     s.Seq,
		})
	}
	return out
}

func lineString(kind string, coords [][]float64) *types.LineString {
	if kind != "" && kind != "LineString" {
		return nil
	}
	line := types.NewLineString(coords)
	if !line.Valid() {
		return nil
	}
	return line
}

func partnerOrNil(p models.DeliveryPartner) *models.DeliveryPartner {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Vehicle = strings.TrimSpace(p.Vehicle)
	if p.Name == "" && p.Phone == "" {
		return nil
	}
	return &p
}

func (f fields) str(key string) string {
	raw, ok := f[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// num reads a number that may also arrive as a numeric string.
func (f fields) num(key string) (float64, bool) {
	raw, ok := f[key]
	if !ok || !types.IsPresent(raw) {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

package models

import (
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/types"
)

type RouteStop struct {
	OrderID      string           `json:"order_id"`
	CustomerName string           `json:"customer_name"`
	Address      string           `json:"address"`
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	Status       enums.StopStatus `json:"status"`
	Sequence     int              `json:"sequence"`
}

type DeliveryPartner struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle,omitempty"`
}

type Crate struct {
	ID               string   `json:"id"`
	Capacity         int      `json:"capacity"`
	AssignedOrderIDs []string `json:"assigned_order_ids"`
}

// DeliveryBatch is the canonical batch shape. Raw backend records of either
// schema are turned into this by deliveries.Normalize.
type DeliveryBatch struct {
	Ident
	ShopID          string               `json:"shop_id"`
	BatchNumber     string               `json:"batch_number"`
	Area            string               `json:"area,omitempty"`
	OrderIDs        []string             `json:"order_ids"`
	Status          enums.DeliveryStatus `json:"status"`
	RouteStops      []RouteStop          `json:"route_stops"`
	RouteGeometry   *types.LineString    `json:"route_geometry,omitempty"`
	DeliveryPartner *DeliveryPartner     `json:"delivery_partner,omitempty"`
	Crates          []Crate              `json:"crates"`
	CapacityUsed    int                  `json:"capacity_used"`
	TotalDistance   float64              `json:"total_distance"`
	EstimatedTime   int                  `json:"estimated_time"`
	StartedAt       types.Timestamp      `json:"started_at,omitzero"`
	CompletedAt     types.Timestamp      `json:"completed_at,omitzero"`
}

// RouteInput is the create-route request body.
type RouteInput struct {
	ShopID          string           `json:"shop_id" validate:"required"`
	OrderIDs        []string         `json:"order_ids" validate:"min=1,dive,required"`
	CrateCapacity   int              `json:"crate_capacity" validate:"min=5,max=20"`
	DeliveryPartner *DeliveryPartner `json:"delivery_partner,omitempty" validate:"omitempty"`
}

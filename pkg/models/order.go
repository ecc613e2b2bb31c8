package models

import (
	"encoding/json"

	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/types"
)

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

type Order struct {
	Ident
	ShopID          string            `json:"shop_id"`
	OrderNumber     string            `json:"order_number"`
	CustomerID      string            `json:"customer_id"`
	Items           []OrderItem       `json:"items"`
	TotalAmount     float64           `json:"total_amount"`
	GSTAmount       float64           `json:"gst_amount"`
	Status          enums.OrderStatus `json:"status"`
	Source          enums.OrderSource `json:"source"`
	DeliveryAddress string            `json:"delivery_address,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	AssignedBatchID string            `json:"assigned_batch_id,omitempty"`
	CreatedAt       types.Timestamp   `json:"created_at,omitzero"`
}

// UnmarshalJSON accepts items as an array or as a JSON-encoded string. A
// malformed items value decodes to an empty list.
func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	aux := struct {
		*alias
		Items       json.RawMessage `json:"items"`
		CreatedAt   json.RawMessage `json:"created_at"`
		DocCreateAt json.RawMessage `json:"$createdAt"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var items []OrderItem
	if !types.DecodeFlexible(aux.Items, &items) {
		items = nil
	}
	o.Items = items

	created := aux.CreatedAt
	if !types.IsPresent(created) {
		created = aux.DocCreateAt
	}
	o.CreatedAt = types.Timestamp{}
	if types.IsPresent(created) {
		_ = o.CreatedAt.UnmarshalJSON(created)
	}
	return nil
}

type OrderInput struct {
	ShopID          string            `json:"shop_id" validate:"required"`
	CustomerID      string            `json:"customer_id,omitempty"`
	Items           []OrderItem       `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64           `json:"total_amount"`
	GSTAmount       float64           `json:"gst_amount"`
	Status          enums.OrderStatus `json:"status"`
	Source          enums.OrderSource `json:"source" validate:"required"`
	DeliveryAddress string            `json:"delivery_address,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

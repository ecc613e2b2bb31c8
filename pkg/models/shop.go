package models

import "github.com/angelmondragon/shopdash/pkg/enums"

type Shop struct {
	Ident
	Name      string             `json:"name"`
	Category  enums.ShopCategory `json:"category"`
	Phone     string             `json:"phone"`
	Address   string             `json:"address"`
	OwnerID   string             `json:"owner_id"`
	GSTNumber string             `json:"gst_number,omitempty"`
	Latitude  *float64           `json:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty"`
	IsActive  *bool              `json:"is_active,omitempty"`
}

// ShopUpdate is the PATCH body for a shop. Nil fields are left untouched.
type ShopUpdate struct {
	Name      *string             `json:"name,omitempty" validate:"omitempty,min=1"`
	Category  *enums.ShopCategory `json:"category,omitempty" validate:"omitempty,oneof=grocery pharmacy food electronics"`
	Phone     *string             `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   *string             `json:"address,omitempty" validate:"omitempty,min=1"`
	GSTNumber *string             `json:"gst_number,omitempty" validate:"omitempty,max=15"`
}

type User struct {
	Ident
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the backend session handle returned on login.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Expire string `json:"expire,omitempty"`
}

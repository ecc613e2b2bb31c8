package models

type Customer struct {
	Ident
	ShopID            string   `json:"shop_id"`
	Name              string   `json:"name"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	PreferredLanguage string   `json:"preferred_language,omitempty"`
	TotalOrders       int      `json:"total_orders"`
	TotalSpent        float64  `json:"total_spent"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

type CustomerInput struct {
	ShopID            string   `json:"shop_id"`
	Name              string   `json:"name" validate:"required"`
	Phone             string   `json:"phone" validate:"required,phone"`
	Address           string   `json:"address"`
	PreferredLanguage string   `json:"preferred_language" validate:"omitempty,bcp47"`
	Latitude          *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude         *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

package models

// AuthResult is the login and register response body.
type AuthResult struct {
	Message string  `json:"message,omitempty"`
	Session Session `json:"session"`
	User    User    `json:"user"`
	Shop    Shop    `json:"shop"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	ShopName string `json:"shop_name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	Address  string `json:"address" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=grocery pharmacy food electronics"`
}

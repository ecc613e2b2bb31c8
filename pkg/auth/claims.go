package auth

import (
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// PartnerTokenPayload captures the data available when minting a partner JWT.
type PartnerTokenPayload struct {
	Phone  string
	Name   string
	ShopID string
	JTI    string
}

// PartnerClaims is the typed JWT handed to a delivery partner after phone
// lookup. Subject carries the normalized phone.
type PartnerClaims struct {
	Phone  string      `json:"phone"`
	Name   string      `json:"name,omitempty"`
	ShopID string      `json:"shop_id,omitempty"`
	Role   enums.Actor `json:"role"`
	jwt.RegisteredClaims
}

package middleware

import (
	"context"

	"github.com/angelmondragon/shopdash/pkg/auth"
)

type contextKey string

const (
	ctxShopID  contextKey = "shop_id"
	ctxRole    contextKey = "actor_role"
	ctxPartner contextKey = "partner_claims"
)

func ShopIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxShopID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// PartnerFromContext returns the claims set by PartnerAuth, or nil.
func PartnerFromContext(ctx context.Context) *auth.PartnerClaims {
	if ctx == nil {
		return nil
	}
	claims, _ := ctx.Value(ctxPartner).(*auth.PartnerClaims)
	return claims
}

// WithShopID injects the shop identifier into the context for downstream handlers.
func WithShopID(ctx context.Context, shopID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxShopID, shopID)
}

func WithPartner(ctx context.Context, claims *auth.PartnerClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxPartner, claims)
	if claims != nil {
		ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
	}
	return ctx
}

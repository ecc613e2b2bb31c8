package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/shopdash/api/responses"
	"github.com/angelmondragon/shopdash/pkg/auth"
	"github.com/angelmondragon/shopdash/pkg/config"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/logger"
)

// PartnerAuth validates the bearer token minted at partner login and seeds
// the request context with its claims.
func PartnerAuth(cfg config.PartnerJWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials").
					WithDetails(map[string]any{"redirect": "/delivery-partner/login"}))
				return
			}

			claims, err := auth.ParsePartnerToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token").
					WithDetails(map[string]any{"redirect": "/delivery-partner/login"}))
				return
			}

			ctx := WithPartner(r.Context(), claims)
			if logg != nil {
				ctx = logg.WithActorRole(ctx, string(claims.Role))
				if claims.ShopID != "" {
					ctx = logg.WithShopID(ctx, claims.ShopID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(raw string) string {
	token := strings.TrimSpace(raw)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

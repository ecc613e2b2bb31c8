package middleware

import (
	"net/http"

	"github.com/angelmondragon/shopdash/api/responses"
	"github.com/angelmondragon/shopdash/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/logger"
)

// SessionReader is the read side of the operator session.
type SessionReader interface {
	Loading() bool
	IsAuthenticated() bool
	ShopID() string
}

// RequireSession gates shop-owner routes. While the persisted session is
// still loading the request is refused with 503 so the caller can retry
// instead of bouncing to the login screen.
func RequireSession(sess SessionReader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if sess == nil || sess.Loading() {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnavailable, "session loading"))
				return
			}
			shopID := sess.ShopID()
			if !sess.IsAuthenticated() || shopID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required").
					WithDetails(map[string]any{"redirect": "/login"}))
				return
			}

			ctx = WithShopID(ctx, shopID)
			if logg != nil {
				ctx = logg.WithShopID(ctx, shopID)
				ctx = logg.WithActorRole(ctx, string(enums.ActorShopOwner))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package pages

import (
	"context"

	"github.com/angelmondragon/shopdash/internal/auth"
	"github.com/angelmondragon/shopdash/internal/session"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// Auth drives the login and register screens. A successful backend answer is
// persisted into the session before the snapshot is returned.
type Auth struct {
	auth    auth.Service
	session Session
}

func NewAuth(authSvc auth.Service, sess Session) *Auth {
	return &Auth{auth: authSvc, session: sess}
}

func (a *Auth) Login(ctx context.Context, input models.LoginInput) (session.Snapshot, error) {
	if a.auth == nil || a.session == nil {
		return session.Snapshot{}, pkgerrors.New(pkgerrors.CodeDependency, "auth unavailable")
	}
	res, err := a.auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		return session.Snapshot{}, err
	}
	return a.establish(ctx, res)
}

func (a *Auth) Register(ctx context.Context, input models.RegisterInput) (session.Snapshot, error) {
	if a.auth == nil || a.session == nil {
		return session.Snapshot{}, pkgerrors.New(pkgerrors.CodeDependency, "auth unavailable")
	}
	res, err := a.auth.Register(ctx, input)
	if err != nil {
		return session.Snapshot{}, err
	}
	return a.establish(ctx, res)
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *Auth) Current() session.Snapshot {
	return a.session.Snapshot()
}

func (a *Auth) establish(ctx context.Context, res *models.AuthResult) (session.Snapshot, error) {
	if res.User.ID == "" || res.Shop.ID == "" {
		return session.Snapshot{}, pkgerrors.New(pkgerrors.CodeDependency, "backend returned an incomplete login")
	}
	if err := a.session.Login(ctx, res.User, res.Shop, res.Session.ID); err != nil {
		return session.Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist session")
	}
	return a.session.Snapshot(), nil
}

// Package auth proxies shop-owner authentication to the backend. Passwords
// never get checked or hashed locally.
package auth

import (
	"context"
	"strings"

	"github.com/angelmondragon/shopdash/pkg/apiclient"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
)

type Service interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, input models.RegisterInput) (*models.AuthResult, error)
}

type service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) Service {
	return &service{client: client}
}

func (s *service) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	if s.client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend client unavailable")
	}
	body := models.LoginInput{Email: strings.TrimSpace(email), Password: password}
	var out models.AuthResult
	if err := s.client.Post(ctx, loginPath, body, &out); err != nil {
		return nil, err
	}
	return resolve(&out), nil
}

func (s *service) Register(ctx context.Context, input models.RegisterInput) (*models.AuthResult, error) {
	if s.client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend client unavailable")
	}
	if strings.TrimSpace(input.Category) == "" {
		input.Category = string(enums.ShopCategoryGrocery)
	}
	input.Email = strings.TrimSpace(input.Email)
	var out models.AuthResult
	if err := s.client.Post(ctx, registerPath, input, &out); err != nil {
		return nil, err
	}
	return resolve(&out), nil
}

func resolve(res *models.AuthResult) *models.AuthResult {
	res.User.ResolveID()
	res.Shop.ResolveID()
	return res
}

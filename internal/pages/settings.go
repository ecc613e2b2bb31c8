package pages

import (
	"context"
	"strings"

	"github.com/angelmondragon/shopdash/internal/shops"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type Settings struct {
	shops   shops.Service
	session Session
}

func NewSettings(shopSvc shops.Service, sess Session) *Settings {
	return &Settings{shops: shopSvc, session: sess}
}

// Get reads the shop fresh from the backend rather than the cached copy.
func (s *Settings) Get(ctx context.Context, shopID string) (*models.Shop, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	return s.shops.Get(ctx, shopID)
}

// Update patches the shop and then replaces the cached shop, so later
// requests see the new values without another fetch.
func (s *Settings) Update(ctx context.Context, shopID string, input models.ShopUpdate) (*models.Shop, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	if err := trimUpdate(&input); err != nil {
		return nil, err
	}
	shop, err := s.shops.Update(ctx, shopID, input)
	if err != nil {
		return nil, err
	}
	if err := s.session.SetShop(ctx, *shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist shop")
	}
	return shop, nil
}

func trimUpdate(input *models.ShopUpdate) error {
	for field, value := range map[string]*string{
		"name":       input.Name,
		"phone":      input.Phone,
		"address":    input.Address,
		"gst_number": input.GSTNumber,
	} {
		if value == nil {
			continue
		}
		*value = strings.TrimSpace(*value)
		if *value == "" && field != "gst_number" {
			return pkgerrors.New(pkgerrors.CodeValidation, field+" cannot be empty").
				WithDetails(map[string]any{"field": field})
		}
	}
	if input.Category != nil && !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid shop category").
			WithDetails(map[string]any{"field": "category", "value": string(*input.Category)})
	}
	return nil
}

package shops

import (
	"context"
	"net/url"
	"strings"

	"github.com/angelmondragon/shopdash/internal/resource"
	"github.com/angelmondragon/shopdash/pkg/apiclient"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type Service interface {
	Get(ctx context.Context, id string) (*models.Shop, error)
	Update(ctx context.Context, id string, input models.ShopUpdate) (*models.Shop, error)
	// ListByOwner satisfies session.ShopSyncer.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Shop, error)
}

type service struct {
	shops resource.Collection[models.Shop, *models.Shop]
}

func NewService(client *apiclient.Client) Service {
	return &service{shops: resource.NewCollection[models.Shop, *models.Shop](client, "/shops", "shops")}
}

func (s *service) Get(ctx context.Context, id string) (*models.Shop, error) {
	return s.shops.Get(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, input models.ShopUpdate) (*models.Shop, error) {
	return s.shops.Update(ctx, id, input)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]models.Shop, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	return s.shops.List(ctx, url.Values{"owner_id": {ownerID}})
}

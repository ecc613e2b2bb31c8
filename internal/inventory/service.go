package inventory

import (
	"context"
	"net/url"

	"github.com/angelmondragon/shopdash/internal/resource"
	"github.com/angelmondragon/shopdash/pkg/apiclient"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// Service exposes stock rows. Status is derived client side, see
// models.InventoryRecord.Status.
type Service interface {
	List(ctx context.Context, filters url.Values) ([]models.InventoryRecord, error)
	Get(ctx context.Context, id string) (*models.InventoryRecord, error)
	Create(ctx context.Context, input models.InventoryInput) (*models.InventoryRecord, error)
	Update(ctx context.Context, id string, input models.InventoryInput) (*models.InventoryRecord, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	rows resource.Collection[models.InventoryRecord, *models.InventoryRecord]
}

func NewService(client *apiclient.Client) Service {
	return &service{rows: resource.NewCollection[models.InventoryRecord, *models.InventoryRecord](client, "/inventory", "inventory")}
}

func (s *service) List(ctx context.Context, filters url.Values) ([]models.InventoryRecord, error) {
	return s.rows.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (*models.InventoryRecord, error) {
	return s.rows.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.InventoryInput) (*models.InventoryRecord, error) {
	return s.rows.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id string, input models.InventoryInput) (*models.InventoryRecord, error) {
	return s.rows.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.rows.Delete(ctx, id)
}

package customers

import (
	"context"
	"net/url"

	"github.com/angelmondragon/shopdash/internal/resource"
	"github.com/angelmondragon/shopdash/pkg/apiclient"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type Service interface {
	List(ctx context.Context, filters url.Values) ([]models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, input models.CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id string, input models.CustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	customers resource.Collection[models.Customer, *models.Customer]
}

func NewService(client *apiclient.Client) Service {
	return &service{customers: resource.NewCollection[models.Customer, *models.Customer](client, "/customers", "customers")}
}

func (s *service) List(ctx context.Context, filters url.Values) ([]models.Customer, error) {
	return s.customers.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (*models.Customer, error) {
	return s.customers.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	return s.customers.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id string, input models.CustomerInput) (*models.Customer, error) {
	return s.customers.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

package products

import (
	"context"
	"net/url"

	"github.com/angelmondragon/shopdash/internal/resource"
	"github.com/angelmondragon/shopdash/pkg/apiclient"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// Service exposes the shop catalog.
type Service interface {
	List(ctx context.Context, filters url.Values) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	products resource.Collection[models.Product, *models.Product]
}

func NewService(client *apiclient.Client) Service {
	return &service{products: resource.NewCollection[models.Product, *models.Product](client, "/products", "products")}
}

func (s *service) List(ctx context.Context, filters url.Values) ([]models.Product, error) {
	return s.products.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	return s.products.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id string, input models.ProductInput) (*models.Product, error) {
	return s.products.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

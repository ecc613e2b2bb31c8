package orders

import (
	"context"
	"net/url"

	"github.com/angelmondragon/shopdash/internal/resource"
	"github.com/angelmondragon/shopdash/pkg/apiclient"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type Service interface {
	List(ctx context.Context, filters url.Values) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, input models.OrderInput) (*models.Order, error)
	Update(ctx context.Context, id string, input models.OrderInput) (*models.Order, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	orders resource.Collection[models.Order, *models.Order]
}

func NewService(client *apiclient.Client) Service {
	return &service{orders: resource.NewCollection[models.Order, *models.Order](client, "/orders", "orders")}
}

func (s *service) List(ctx context.Context, filters url.Values) ([]models.Order, error) {
	return s.orders.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.OrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	return s.orders.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id string, input models.OrderInput) (*models.Order, error) {
	return s.orders.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// UpdateStatus moves an order through the fulfilment lifecycle. The backend
// applies it unconditionally; only the vocabulary is checked here.
func (s *service) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": string(status)})
	}
	return s.orders.Patch(ctx, id, url.Values{"status": {string(status)}}, "status")
}

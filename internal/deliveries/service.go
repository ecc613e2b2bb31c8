package deliveries

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/shopdash/pkg/apiclient"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

const (
	basePath        = "/deliveries"
	envelopeKey     = "deliveries"
	createRoutePath = basePath + "/create-route"
)

// Service is the delivery batch API. Every batch it returns has been through
// Normalize.
type Service interface {
	List(ctx context.Context, filters url.Values) ([]models.DeliveryBatch, error)
	Get(ctx context.Context, id string) (*models.DeliveryBatch, error)
	CreateRoute(ctx context.Context, input models.RouteInput) (*models.DeliveryBatch, error)
	Start(ctx context.Context, id string) (*models.DeliveryBatch, error)
	Complete(ctx context.Context, id string) (*models.DeliveryBatch, error)
	// UpdateStatus loads the batch, checks the transition for actor and only
	// then issues the change.
	UpdateStatus(ctx context.Context, id string, to enums.DeliveryStatus, actor enums.Actor) (*models.DeliveryBatch, error)
	UpdateStopStatus(ctx context.Context, id string, seq int) (*models.DeliveryBatch, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) Service {
	return &service{client: client}
}

func (s *service) ready(id string, needID bool) error {
	if s.client == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "backend client unavailable")
	}
	if needID && strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "id is required")
	}
	return nil
}

func (s *service) List(ctx context.Context, filters url.Values) ([]models.DeliveryBatch, error) {
	if err := s.ready("", false); err != nil {
		return nil, err
	}
	raws, err := apiclient.Raw(ctx, s.client, basePath+"/", envelopeKey, filters)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(raws), nil
}

func (s *service) Get(ctx context.Context, id string) (*models.DeliveryBatch, error) {
	if err := s.ready(id, true); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodGet, itemPath(id), nil, nil)
}

func (s *service) CreateRoute(ctx context.Context, input models.RouteInput) (*models.DeliveryBatch, error) {
	if err := s.ready("", false); err != nil {
		return nil, err
	}
	if len(input.OrderIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Select at least one order").
			WithDetails(map[string]any{"field": "order_ids"})
	}
	return s.call(ctx, http.MethodPost, createRoutePath, nil, input)
}

func (s *service) Start(ctx context.Context, id string) (*models.DeliveryBatch, error) {
	if err := s.ready(id, true); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodPatch, itemPath(id, "start"), nil, nil)
}

func (s *service) Complete(ctx context.Context, id string) (*models.DeliveryBatch, error) {
	if err := s.ready(id, true); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodPatch, itemPath(id, "complete"), nil, nil)
}

func (s *service) UpdateStatus(ctx context.Context, id string, to enums.DeliveryStatus, actor enums.Actor) (*models.DeliveryBatch, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(current.Status, to, actor); err != nil {
		return nil, err
	}
	query := url.Values{"new_status": {string(to)}, "actor": {string(actor)}}
	return s.call(ctx, http.MethodPatch, itemPath(id, "status"), query, nil)
}

func (s *service) UpdateStopStatus(ctx context.Context, id string, seq int) (*models.DeliveryBatch, error) {
	if err := s.ready(id, true); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodPatch, itemPath(id, "stops", strconv.Itoa(seq)), nil, nil)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.ready(id, true); err != nil {
		return err
	}
	return s.client.Delete(ctx, itemPath(id))
}

// call keeps the response undecoded so it goes through Normalize.
func (s *service) call(ctx context.Context, method, path string, query url.Values, body any) (*models.DeliveryBatch, error) {
	var raw json.RawMessage
	if err := s.client.Do(ctx, method, path, query, body, &raw); err != nil {
		return nil, err
	}
	batch := Normalize(raw)
	return &batch, nil
}

func itemPath(id string, rest ...string) string {
	parts := append([]string{basePath, url.PathEscape(id)}, rest...)
	return strings.Join(parts, "/")
}

package gst

import (
	"context"
	"net/url"

	"github.com/angelmondragon/shopdash/internal/resource"
	"github.com/angelmondragon/shopdash/pkg/apiclient"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// Service is the GST report API. Reports are immutable apart from filing.
type Service interface {
	List(ctx context.Context, filters url.Values) ([]models.GSTReport, error)
	Get(ctx context.Context, id string) (*models.GSTReport, error)
	Create(ctx context.Context, input models.GSTReportInput) (*models.GSTReport, error)
	File(ctx context.Context, id string) (*models.GSTReport, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	reports resource.Collection[models.GSTReport, *models.GSTReport]
}

func NewService(client *apiclient.Client) Service {
	return &service{reports: resource.NewCollection[models.GSTReport, *models.GSTReport](client, "/gst-reports", "reports")}
}

func (s *service) List(ctx context.Context, filters url.Values) ([]models.GSTReport, error) {
	return s.reports.List(ctx, filters)
}

func (s *service) Get(ctx context.Context, id string) (*models.GSTReport, error) {
	return s.reports.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input models.GSTReportInput) (*models.GSTReport, error) {
	return s.reports.Create(ctx, input)
}

func (s *service) File(ctx context.Context, id string) (*models.GSTReport, error) {
	return s.reports.Patch(ctx, id, nil, "file")
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.reports.Delete(ctx, id)
}

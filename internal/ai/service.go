package ai

import (
	"context"
	"strings"

	"github.com/angelmondragon/shopdash/pkg/apiclient"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

const (
	parseOrderPath    = "/ai/parse/order"
	categorizeGSTPath = "/ai/categorize/gst"
	optimizeRoutePath = "/ai/optimize/route"
	insightsPath      = "/ai/insights/inventory"
)

// Service wraps the backend's AI helper endpoints. All of them are
// advisory; callers treat failures as non-fatal.
type Service interface {
	ParseOrder(ctx context.Context, text, shopID string) (*models.ParsedOrder, error)
	CategorizeGST(ctx context.Context, productName, category string) (*models.GSTInfo, error)
	OptimizeRoute(ctx context.Context, shopID string, orderIDs []string) (*models.OptimizedRoute, error)
	InventoryInsights(ctx context.Context, shopID string) (*models.InventoryInsights, error)
}

type service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) Service {
	return &service{client: client}
}

func (s *service) ParseOrder(ctx context.Context, text, shopID string) (*models.ParsedOrder, error) {
	if strings.TrimSpace(text) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order text is required")
	}
	var out struct {
		ParsedOrder models.ParsedOrder `json:"parsed_order"`
	}
	body := map[string]string{"text": text, "shop_id": shopID}
	if err := s.post(ctx, parseOrderPath, body, &out); err != nil {
		return nil, err
	}
	if out.ParsedOrder.Items == nil {
		out.ParsedOrder.Items = []models.ParsedOrderItem{}
	}
	return &out.ParsedOrder, nil
}

func (s *service) CategorizeGST(ctx context.Context, productName, category string) (*models.GSTInfo, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	var out struct {
		GSTInfo models.GSTInfo `json:"gst_info"`
	}
	body := map[string]string{"product_name": productName, "category": category}
	if err := s.post(ctx, categorizeGSTPath, body, &out); err != nil {
		return nil, err
	}
	return &out.GSTInfo, nil
}

func (s *service) OptimizeRoute(ctx context.Context, shopID string, orderIDs []string) (*models.OptimizedRoute, error) {
	if len(orderIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Select at least one order")
	}
	var out struct {
		OptimizedRoute models.OptimizedRoute `json:"optimized_route"`
	}
	body := map[string]any{"shop_id": shopID, "order_ids": orderIDs}
	if err := s.post(ctx, optimizeRoutePath, body, &out); err != nil {
		return nil, err
	}
	return &out.OptimizedRoute, nil
}

func (s *service) InventoryInsights(ctx context.Context, shopID string) (*models.InventoryInsights, error) {
	var out struct {
		Insights models.InventoryInsights `json:"insights"`
	}
	if err := s.post(ctx, insightsPath, map[string]string{"shop_id": shopID}, &out); err != nil {
		return nil, err
	}
	return &out.Insights, nil
}

func (s *service) post(ctx context.Context, path string, body, out any) error {
	if s.client == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "backend client unavailable")
	}
	return s.client.Post(ctx, path, body, out)
}

package pages

import (
	"context"
	"net/url"
	"sync"

	"github.com/angelmondragon/shopdash/internal/ai"
	"github.com/angelmondragon/shopdash/internal/customers"
	"github.com/angelmondragon/shopdash/internal/deliveries"
	"github.com/angelmondragon/shopdash/internal/gst"
	"github.com/angelmondragon/shopdash/internal/inventory"
	"github.com/angelmondragon/shopdash/internal/orders"
	"github.com/angelmondragon/shopdash/internal/products"
	"github.com/angelmondragon/shopdash/internal/session"
	"github.com/angelmondragon/shopdash/internal/shops"
	"github.com/angelmondragon/shopdash/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

var errNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "not found")

type stubOrders struct {
	orders.Service
	mu      sync.Mutex
	list    []models.Order
	err     error
	filters []url.Values
	created []models.OrderInput
	status  map[string]enums.OrderStatus
}

func (s *stubOrders) List(_ context.Context, filters url.Values) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, filters)
	if s.err != nil {
		return nil, s.err
	}
	status := filters.Get("status")
	var out []models.Order
	for _, o := range s.list {
		if status == "" || string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrders) Create(_ context.Context, input models.OrderInput) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, input)
	return &models.Order{Ident: models.Ident{ID: "new-order"}, ShopID: input.ShopID, TotalAmount: input.TotalAmount, Source: input.Source}, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id string, status enums.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == nil {
		s.status = map[string]enums.OrderStatus{}
	}
	s.status[id] = status
	return &models.Order{Ident: models.Ident{ID: id}, Status: status}, nil
}

type stubProducts struct {
	products.Service
	list    []models.Product
	err     error
	created []models.ProductInput
}

func (s *stubProducts) List(context.Context, url.Values) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Product(nil), s.list...), nil
}

func (s *stubProducts) Create(_ context.Context, input models.ProductInput) (*models.Product, error) {
	s.created = append(s.created, input)
	return &models.Product{Ident: models.Ident{ID: "new-product"}, ShopID: input.ShopID, Name: input.Name, Price: input.Price}, nil
}

type stubInventory struct {
	inventory.Service
	list      []models.InventoryRecord
	err       error
	createErr error
	created   []models.InventoryInput
	updated   map[string]models.InventoryInput
}

func (s *stubInventory) List(context.Context, url.Values) ([]models.InventoryRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubInventory) Create(_ context.Context, input models.InventoryInput) (*models.InventoryRecord, error) {
	s.created = append(s.created, input)
	if s.createErr != nil {
		return nil, s.createErr
	}
	rec := &models.InventoryRecord{Ident: models.Ident{ID: "new-row"}, ProductID: input.ProductID}
	if input.StockQuantity != nil {
		rec.StockQuantity = *input.StockQuantity
	}
	if input.MinStockLevel != nil {
		rec.MinStockLevel = *input.MinStockLevel
	}
	return rec, nil
}

func (s *stubInventory) Update(_ context.Context, id string, input models.InventoryInput) (*models.InventoryRecord, error) {
	if s.updated == nil {
		s.updated = map[string]models.InventoryInput{}
	}
	s.updated[id] = input
	return &models.InventoryRecord{Ident: models.Ident{ID: id}}, nil
}

type stubDeliveries struct {
	deliveries.Service
	mu         sync.Mutex
	batches    []models.DeliveryBatch
	err        error
	routes     []models.RouteInput
	statusCall []enums.DeliveryStatus
	stopCalls  []int
}

func (s *stubDeliveries) List(context.Context, url.Values) ([]models.DeliveryBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.DeliveryBatch(nil), s.batches...), nil
}

func (s *stubDeliveries) Get(_ context.Context, id string) (*models.DeliveryBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.batches {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, errNotFound
}

func (s *stubDeliveries) CreateRoute(_ context.Context, input models.RouteInput) (*models.DeliveryBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, input)
	return &models.DeliveryBatch{Ident: models.Ident{ID: "new-batch"}, OrderIDs: input.OrderIDs, Status: enums.DeliveryStatusPlanned}, nil
}

func (s *stubDeliveries) UpdateStatus(_ context.Context, id string, to enums.DeliveryStatus, _ enums.Actor) (*models.DeliveryBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusCall = append(s.statusCall, to)
	return &models.DeliveryBatch{Ident: models.Ident{ID: id}, Status: to}, nil
}

func (s *stubDeliveries) UpdateStopStatus(_ context.Context, id string, seq int) (*models.DeliveryBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCalls = append(s.stopCalls, seq)
	for _, b := range s.batches {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, errNotFound
}

type stubAI struct {
	ai.Service
	parsed   *models.ParsedOrder
	insights *models.InventoryInsights
	route    *models.OptimizedRoute
	err      error
}

func (s *stubAI) ParseOrder(context.Context, string, string) (*models.ParsedOrder, error) {
	return s.parsed, s.err
}

func (s *stubAI) InventoryInsights(context.Context, string) (*models.InventoryInsights, error) {
	return s.insights, s.err
}

func (s *stubAI) OptimizeRoute(context.Context, string, []string) (*models.OptimizedRoute, error) {
	return s.route, s.err
}

type stubReports struct {
	gst.Service
	list    []models.GSTReport
	created []models.GSTReportInput
	filed   []string
}

func (s *stubReports) List(context.Context, url.Values) ([]models.GSTReport, error) {
	return s.list, nil
}

func (s *stubReports) Get(_ context.Context, id string) (*models.GSTReport, error) {
	for _, r := range s.list {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, errNotFound
}

func (s *stubReports) Create(_ context.Context, input models.GSTReportInput) (*models.GSTReport, error) {
	s.created = append(s.created, input)
	return &models.GSTReport{Ident: models.Ident{ID: "new-report"}, Period: input.Period, TotalSales: input.TotalSales}, nil
}

func (s *stubReports) File(_ context.Context, id string) (*models.GSTReport, error) {
	s.filed = append(s.filed, id)
	return &models.GSTReport{Ident: models.Ident{ID: id}, Status: enums.ReportStatusFiled}, nil
}

type stubCustomers struct {
	customers.Service
	list    []models.Customer
	filters url.Values
	created []models.CustomerInput
}

func (s *stubCustomers) List(_ context.Context, filters url.Values) ([]models.Customer, error) {
	s.filters = filters
	return s.list, nil
}

func (s *stubCustomers) Create(_ context.Context, input models.CustomerInput) (*models.Customer, error) {
	s.created = append(s.created, input)
	return &models.Customer{Ident: models.Ident{ID: "new-customer"}, Name: input.Name, PreferredLanguage: input.PreferredLanguage}, nil
}

type stubShops struct {
	shops.Service
	shop    models.Shop
	updates []models.ShopUpdate
}

func (s *stubShops) Get(context.Context, string) (*models.Shop, error) {
	out := s.shop
	return &out, nil
}

func (s *stubShops) Update(_ context.Context, _ string, input models.ShopUpdate) (*models.Shop, error) {
	s.updates = append(s.updates, input)
	out := s.shop
	if input.Name != nil {
		out.Name = *input.Name
	}
	return &out, nil
}

type stubSession struct {
	snap      session.Snapshot
	sessionID string
	setShops  []models.Shop
}

func (s *stubSession) Login(_ context.Context, user models.User, shop models.Shop, sessionID string) error {
	s.snap = session.Snapshot{User: &user, Shop: &shop, HasSession: true, Authenticated: true}
	s.sessionID = sessionID
	return nil
}

func (s *stubSession) Logout(context.Context) error {
	s.snap = session.Snapshot{}
	return nil
}

func (s *stubSession) SetShop(_ context.Context, shop models.Shop) error {
	s.setShops = append(s.setShops, shop)
	return nil
}

func (s *stubSession) Snapshot() session.Snapshot {
	return s.snap
}

package pages

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/shopdash/internal/ai"
	"github.com/angelmondragon/shopdash/internal/inventory"
	"github.com/angelmondragon/shopdash/internal/products"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type Inventory struct {
	products  products.Service
	inventory inventory.Service
	ai        ai.Service
}

func NewInventory(productSvc products.Service, inventorySvc inventory.Service, aiSvc ai.Service) *Inventory {
	return &Inventory{products: productSvc, inventory: inventorySvc, ai: aiSvc}
}

// StockRow joins a product with its inventory row. A product without a row
// reads as out of stock.
type StockRow struct {
	Product     models.Product        `json:"product"`
	InventoryID string                `json:"inventory_id,omitempty"`
	Stock       float64               `json:"stock_quantity"`
	MinStock    float64               `json:"min_stock_level"`
	Status      enums.InventoryStatus `json:"status"`
}

type InventoryCounts struct {
	Total      int     `json:"total"`
	InStock    int     `json:"in_stock"`
	LowStock   int     `json:"low_stock"`
	OutOfStock int     `json:"out_of_stock"`
	StockValue float64 `json:"stock_value"`
}

type InventoryView struct {
	Rows   []StockRow      `json:"rows"`
	Counts InventoryCounts `json:"counts"`
}

// List counts across the whole catalog; q narrows only the rows.
func (i *Inventory) List(ctx context.Context, shopID, query string) (*InventoryView, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	var (
		catalog []models.Product
		stock   []models.InventoryRecord
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		catalog, err = i.products.List(gctx, shopFilters(shopID))
		return err
	})
	group.Go(func() error {
		var err error
		stock, err = i.inventory.List(gctx, shopFilters(shopID))
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	byProduct := make(map[string]models.InventoryRecord, len(stock))
	for _, rec := range stock {
		byProduct[rec.ProductID] = rec
	}

	q := normalizeQuery(query)
	view := &InventoryView{Rows: make([]StockRow, 0, len(catalog))}
	for _, product := range catalog {
		rec := byProduct[product.ID]
		row := StockRow{
			Product:     product,
			InventoryID: rec.ID,
			Stock:       rec.StockQuantity,
			MinStock:    rec.MinStockLevel,
			Status:      rec.Status(),
		}
		view.Counts.Total++
		switch row.Status {
		case enums.InventoryStatusInStock:
			view.Counts.InStock++
		case enums.InventoryStatusLowStock:
			view.Counts.LowStock++
		default:
			view.Counts.OutOfStock++
		}
		view.Counts.StockValue += product.Price * row.Stock
		if q != "" && !containsFold(product.Name, q) && !containsFold(product.Category, q) {
			continue
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

// NewProduct is the add-product form: the catalog entry with its opening
// stock.
type NewProduct struct {
	models.ProductInput
	StockQuantity float64 `json:"stock_quantity" validate:"gte=0"`
	MinStockLevel float64 `json:"min_stock_level" validate:"gte=0"`
}

// CreateProduct creates the product and then its inventory row. When the row
// fails the product is left in place and the error reports its id.
func (i *Inventory) CreateProduct(ctx context.Context, shopID string, input NewProduct) (*StockRow, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	input.ShopID = shopID
	input.Name = strings.TrimSpace(input.Name)
	product, err := i.products.Create(ctx, input.ProductInput)
	if err != nil {
		return nil, err
	}
	stock, minStock := input.StockQuantity, input.MinStockLevel
	rec, err := i.inventory.Create(ctx, models.InventoryInput{
		ShopID:        shopID,
		ProductID:     product.ID,
		StockQuantity: &stock,
		MinStockLevel: &minStock,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inventory row not created").
			WithDetails(map[string]any{"product_id": product.ID})
	}
	return &StockRow{
		Product:     *product,
		InventoryID: rec.ID,
		Stock:       rec.StockQuantity,
		MinStock:    rec.MinStockLevel,
		Status:      rec.Status(),
	}, nil
}

func (i *Inventory) UpdateStock(ctx context.Context, id string, input models.InventoryInput) (*models.InventoryRecord, error) {
	if input.StockQuantity == nil && input.MinStockLevel == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update").
			WithDetails(map[string]any{"field": "stock_quantity"})
	}
	return i.inventory.Update(ctx, id, models.InventoryInput{
		StockQuantity: input.StockQuantity,
		MinStockLevel: input.MinStockLevel,
	})
}

func (i *Inventory) Delete(ctx context.Context, id string) error {
	return i.inventory.Delete(ctx, id)
}

func (i *Inventory) Insights(ctx context.Context, shopID string) (*models.InventoryInsights, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	if i.ai == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ai unavailable")
	}
	return i.ai.InventoryInsights(ctx, shopID)
}

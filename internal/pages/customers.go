package pages

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/angelmondragon/shopdash/internal/customers"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
	"github.com/angelmondragon/shopdash/pkg/pagination"
)

// DefaultLanguage is stored when a customer has no preference.
const DefaultLanguage = "en"

type Customers struct {
	customers customers.Service
}

func NewCustomers(svc customers.Service) *Customers {
	return &Customers{customers: svc}
}

type CustomersView struct {
	Customers []models.Customer `json:"customers"`
	Page      pagination.Page   `json:"pagination"`
	HasNext   bool              `json:"has_next"`
}

// List fetches one backend page and filters it on name and phone. HasNext is
// judged on the unfiltered page.
func (c *Customers) List(ctx context.Context, shopID string, page pagination.Page, query string) (*CustomersView, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	page.Limit = pagination.NormalizeLimit(page.Limit)
	if page.Number < 1 {
		page.Number = 1
	}
	list, err := c.customers.List(ctx, page.Apply(url.Values{"shop_id": {shopID}}))
	if err != nil {
		return nil, err
	}
	q := normalizeQuery(query)
	out := make([]models.Customer, 0, len(list))
	for _, cust := range list {
		if q != "" && !containsFold(cust.Name, q) && !containsFold(cust.Phone, q) {
			continue
		}
		out = append(out, cust)
	}
	return &CustomersView{Customers: out, Page: page, HasNext: page.HasNext(len(list))}, nil
}

func (c *Customers) Create(ctx context.Context, shopID string, input models.CustomerInput) (*models.Customer, error) {
	if err := requireShop(shopID); err != nil {
		return nil, err
	}
	input.ShopID = shopID
	if err := normalizeCustomer(&input); err != nil {
		return nil, err
	}
	return c.customers.Create(ctx, input)
}

func (c *Customers) Update(ctx context.Context, id string, input models.CustomerInput) (*models.Customer, error) {
	if err := normalizeCustomer(&input); err != nil {
		return nil, err
	}
	return c.customers.Update(ctx, id, input)
}

func (c *Customers) Delete(ctx context.Context, id string) error {
	return c.customers.Delete(ctx, id)
}

func normalizeCustomer(input *models.CustomerInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	lang, err := CanonicalLanguage(input.PreferredLanguage)
	if err != nil {
		return err
	}
	input.PreferredLanguage = lang
	return nil
}

// CanonicalLanguage returns the canonical BCP-47 form of tag, or
// DefaultLanguage when tag is blank.
func CanonicalLanguage(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLanguage, nil
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid preferred language").
			WithDetails(map[string]any{"field": "preferred_language", "value": tag})
	}
	return parsed.String(), nil
}

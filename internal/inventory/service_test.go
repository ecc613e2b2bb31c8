package inventory

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopdash/pkg/apiclient"
	"github.com/angelmondragon/shopdash/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

func newTestService(t *testing.T, handler http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return NewService(client)
}

func TestListDerivesStatusClientSide(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory/", r.URL.Path)
		assert.Equal(t, "s1", r.URL.Query().Get("shop_id"))
		_, _ = w.Write([]byte(`{"inventory":[
			{"$id":"i1","product_id":"p1","stock_quantity":0,"min_stock_level":5},
			{"id":"i2","product_id":"p2","stock_quantity":5,"min_stock_level":5},
			{"id":"i3","product_id":"p3","stock_quantity":12,"min_stock_level":5}
		]}`))
	})

	rows, err := svc.List(context.Background(), url.Values{"shop_id": {"s1"}})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "i1", rows[0].ID)
	assert.Equal(t, enums.InventoryStatusOutOfStock, rows[0].Status())
	assert.Equal(t, enums.InventoryStatusLowStock, rows[1].Status())
	assert.Equal(t, enums.InventoryStatusInStock, rows[2].Status())
}

func TestUpdateSendsOnlyChangedFields(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/inventory/i1", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.False(t, strings.Contains(string(body), "min_stock_level"), "unset fields are omitted: %s", body)
		_, _ = w.Write([]byte(`{"id":"i1","product_id":"p1","stock_quantity":30,"min_stock_level":5}`))
	})

	qty := 30.0
	row, err := svc.Update(context.Background(), "i1", models.InventoryInput{StockQuantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 30.0, row.StockQuantity)
}

func TestGetRequiresID(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected")
	})
	_, err := svc.Get(context.Background(), "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

package orders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/shopdash/pkg/apiclient"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

func TestUpdateStatusUsesQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/orders/o1/status" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "confirmed" {
			t.Fatalf("expected status=confirmed, got %q", got)
		}
		_, _ = w.Write([]byte(`{"id":"o1","status":"confirmed","items":"[{\"name\":\"Milk\",\"quantity\":2}]"}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	order, err := NewService(client).UpdateStatus(context.Background(), "o1", enums.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if order.Status != enums.OrderStatusConfirmed || len(order.Items) != 1 {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	client, err := apiclient.New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = NewService(client).UpdateStatus(context.Background(), "o1", enums.OrderStatus("shipped"))
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateEmptyOrderNeverHitsNetwork(t *testing.T) {
	client, err := apiclient.New("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = NewService(client).Create(context.Background(), models.OrderInput{ShopID: "s1"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

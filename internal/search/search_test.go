package search

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopdash/pkg/models"
)

func TestSearcherDebouncesKeystrokes(t *testing.T) {
	var calls atomic.Int32
	s := NewSearcher(func(ctx context.Context, query string) ([]Hit, error) {
		calls.Add(1)
		return []Hit{{Type: HitProduct, Title: query}}, nil
	}, 20*time.Millisecond)
	defer s.Close()

	s.Submit("m")
	s.Submit("mi")
	s.Submit("milk")

	require.Eventually(t, func() bool { return s.Latest().Query == "milk" }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	latest := s.Latest()
	assert.Equal(t, uint64(1), latest.Seq)
	assert.False(t, latest.Pending)
	assert.Equal(t, "milk", latest.Hits[0].Title)
}

func TestSearcherDiscardsStaleResponses(t *testing.T) {
	release := make(chan struct{})
	slowDone := make(chan struct{})
	s := NewSearcher(func(ctx context.Context, query string) ([]Hit, error) {
		if query == "slow" {
			<-release
			defer close(slowDone)
		}
		return []Hit{{Title: query}}, nil
	}, 5*time.Millisecond)
	defer s.Close()

	s.Submit("slow")
	time.Sleep(30 * time.Millisecond)
	s.Submit("fast")
	require.Eventually(t, func() bool { return s.Latest().Query == "fast" }, time.Second, 5*time.Millisecond)

	close(release)
	<-slowDone
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, "fast", s.Latest().Query)
	assert.Equal(t, uint64(2), s.Latest().Seq)
}

type stubOrders struct{ items []models.Order }

func (s stubOrders) List(ctx context.Context, filters url.Values) ([]models.Order, error) {
	if filters.Get("shop_id") != "s1" {
		return nil, errors.New("missing shop scope")
	}
	return s.items, nil
}

type stubCustomers struct {
	items []models.Customer
	err   error
}

func (s stubCustomers) List(ctx context.Context, filters url.Values) ([]models.Customer, error) {
	return s.items, s.err
}

type stubProducts struct{ items []models.Product }

func (s stubProducts) List(ctx context.Context, filters url.Values) ([]models.Product, error) {
	return s.items, nil
}

func TestGlobalSearchFiltersAllCollections(t *testing.T) {
	g := NewGlobal(GlobalParams{
		Orders:    stubOrders{items: []models.Order{{OrderNumber: "ORD-RAV-1"}, {OrderNumber: "ORD-2"}}},
		Customers: stubCustomers{items: []models.Customer{{Name: "Ravi"}, {Name: "Asha", Phone: "98rav"}}},
		Products:  stubProducts{items: []models.Product{{Name: "Ravioli"}, {Name: "Milk"}}},
		ShopID:    func() string { return "s1" },
	})

	hits, err := g.Search(context.Background(), " RAV ")
	require.NoError(t, err)
	types := make([]HitType, len(hits))
	for i, h := range hits {
		types[i] = h.Type
	}
	assert.Equal(t, []HitType{HitOrder, HitCustomer, HitCustomer, HitProduct}, types)

	empty, err := g.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGlobalSearchFirstErrorWins(t *testing.T) {
	boom := errors.New("customers down")
	g := NewGlobal(GlobalParams{
		Orders:    stubOrders{},
		Customers: stubCustomers{err: boom},
		ShopID:    func() string { return "s1" },
	})
	_, err := g.Search(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

package deliveries

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

const (
	MinCrateCapacity = 5
	MaxCrateCapacity = 20
)

// AvailableOrders returns the confirmed orders not referenced by any batch,
// keeping their input order.
func AvailableOrders(orders []models.Order, batches []models.DeliveryBatch) []models.Order {
	batched := make(map[string]struct{})
	for _, batch := range batches {
		for _, id := range batch.OrderIDs {
			batched[id] = struct{}{}
		}
		for _, stop := range batch.RouteStops {
			if stop.OrderID != "" {
				batched[stop.OrderID] = struct{}{}
			}
		}
	}

	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status != enums.OrderStatusConfirmed {
			continue
		}
		if _, ok := batched[order.ID]; ok {
			continue
		}
		out = append(out, order)
	}
	return out
}

// AssignCrates packs orderIDs into crates of the given capacity in order.
// Capacity is clamped into the supported range.
func AssignCrates(orderIDs []string, capacity int) []models.Crate {
	capacity = min(max(capacity, MinCrateCapacity), MaxCrateCapacity)
	crates := make([]models.Crate, 0, (len(orderIDs)+capacity-1)/capacity)
	for start := 0; start < len(orderIDs); start += capacity {
		end := min(start+capacity, len(orderIDs))
		assigned := make([]string, end-start)
		copy(assigned, orderIDs[start:end])
		crates = append(crates, models.Crate{
			ID:               uuid.NewString(),
			Capacity:         capacity,
			AssignedOrderIDs: assigned,
		})
	}
	return crates
}

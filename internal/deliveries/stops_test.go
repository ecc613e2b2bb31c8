package deliveries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

func stopsWith(statuses ...enums.StopStatus) []models.RouteStop {
	out := make([]models.RouteStop, len(statuses))
	for i, status := range statuses {
		out[i] = models.RouteStop{Sequence: i + 1, CustomerName: "customer", Status: status}
	}
	return out
}

func statuses(stops []models.RouteStop) []enums.StopStatus {
	out := make([]enums.StopStatus, len(stops))
	for i, stop := range stops {
		out[i] = stop.Status
	}
	return out
}

func TestMarkStopDeliveredPromotesNext(t *testing.T) {
	in := stopsWith(enums.StopStatusCurrent, enums.StopStatusPending, enums.StopStatusPending)

	out, err := MarkStopDelivered(in, 1)
	require.NoError(t, err)
	assert.Equal(t, []enums.StopStatus{enums.StopStatusDelivered, enums.StopStatusCurrent, enums.StopStatusPending}, statuses(out))
	assert.Equal(t, enums.StopStatusCurrent, in[0].Status, "input must not change")
}

func TestMarkStopDeliveredPromotesOnlyTheFollowingStop(t *testing.T) {
	in := stopsWith(enums.StopStatusPending, enums.StopStatusCurrent, enums.StopStatusPending)

	out, err := MarkStopDelivered(in, 2)
	require.NoError(t, err)
	assert.Equal(t, []enums.StopStatus{enums.StopStatusPending, enums.StopStatusDelivered, enums.StopStatusCurrent}, statuses(out))

	out, err = MarkStopDelivered(out, 3)
	require.NoError(t, err)
	assert.Equal(t, []enums.StopStatus{enums.StopStatusPending, enums.StopStatusDelivered, enums.StopStatusDelivered}, statuses(out),
		"an earlier skipped stop is not promoted")
}

func TestMarkStopDeliveredRejections(t *testing.T) {
	in := stopsWith(enums.StopStatusDelivered, enums.StopStatusCurrent, enums.StopStatusPending)

	_, err := MarkStopDelivered(in, 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
	_, err = MarkStopDelivered(in, 3)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
	_, err = MarkStopDelivered(in, 9)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestMarkPickupDoesNotStealCurrent(t *testing.T) {
	in := []models.RouteStop{
		{Sequence: 0, CustomerName: "SHOP PICKUP", Status: enums.StopStatusPending},
		{Sequence: 1, CustomerName: "Ravi", Status: enums.StopStatusCurrent},
		{Sequence: 2, CustomerName: "Asha", Status: enums.StopStatusPending},
	}
	out, err := MarkStopDelivered(in, 0)
	require.NoError(t, err)
	assert.Equal(t, []enums.StopStatus{enums.StopStatusDelivered, enums.StopStatusCurrent, enums.StopStatusPending}, statuses(out))
}

func TestMarkFirstStopWhenNoneCurrent(t *testing.T) {
	in := stopsWith(enums.StopStatusPending, enums.StopStatusPending)
	out, err := MarkStopDelivered(in, 1)
	require.NoError(t, err)
	assert.Equal(t, []enums.StopStatus{enums.StopStatusDelivered, enums.StopStatusCurrent}, statuses(out))

	_, err = MarkStopDelivered(in, 2)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestAtMostOneCurrent(t *testing.T) {
	stops := stopsWith(enums.StopStatusCurrent, enums.StopStatusPending, enums.StopStatusPending, enums.StopStatusPending)
	for seq := 1; seq <= len(stops); seq++ {
		var err error
		stops, err = MarkStopDelivered(stops, seq)
		require.NoError(t, err)
		current := 0
		for _, stop := range stops {
			if stop.Status == enums.StopStatusCurrent {
				current++
			}
		}
		assert.LessOrEqual(t, current, 1)
	}
	assert.True(t, CanComplete(models.DeliveryBatch{RouteStops: stops}))
}

func TestIsPickupAndCanComplete(t *testing.T) {
	assert.True(t, IsPickup(models.RouteStop{Sequence: 0, CustomerName: "Ravi"}))
	assert.True(t, IsPickup(models.RouteStop{Sequence: 3, CustomerName: "shop counter"}))
	assert.False(t, IsPickup(models.RouteStop{Sequence: 3, CustomerName: "Ravi"}))

	onlyPickup := models.DeliveryBatch{RouteStops: []models.RouteStop{{Sequence: 0, Status: enums.StopStatusDelivered}}}
	assert.False(t, CanComplete(onlyPickup))

	pending := models.DeliveryBatch{RouteStops: []models.RouteStop{
		{Sequence: 0, Status: enums.StopStatusPending},
		{Sequence: 1, CustomerName: "Ravi", Status: enums.StopStatusDelivered},
	}}
	assert.True(t, CanComplete(pending), "pickup status does not gate completion")

	pending.RouteStops = append(pending.RouteStops, models.RouteStop{Sequence: 2, CustomerName: "Asha", Status: enums.StopStatusCurrent})
	assert.False(t, CanComplete(pending))
}

func TestDisplayStop(t *testing.T) {
	assert.Equal(t, "Picked Up", DisplayStop(models.RouteStop{Sequence: 0, Status: enums.StopStatusDelivered}).Label)
	assert.Equal(t, "purple", DisplayStop(models.RouteStop{Sequence: 0, Status: enums.StopStatusPending}).Color)
	assert.Equal(t, "blue", DisplayStop(models.RouteStop{Sequence: 1, CustomerName: "Ravi", Status: enums.StopStatusCurrent}).Color)
}

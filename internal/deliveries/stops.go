package deliveries

import (
	"strings"

	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/enums"
	"github.com/angelmondragon/shopdash/pkg/models"
)

// IsPickup reports whether the stop is the shop pickup rather than a
// customer drop.
func IsPickup(stop models.RouteStop) bool {
	if stop.Sequence == 0 {
		return true
	}
	name := strings.ToUpper(stop.CustomerName)
	return strings.Contains(name, "PICKUP") || strings.Contains(name, "SHOP")
}

// MarkStopDelivered returns a copy of stops with the stop at seq delivered and
// the stop after it promoted to current when that one is pending. stops is never modified.
//
// Only the current stop, or a pickup that is not yet delivered, may be
// marked. A route with no current stop treats its first undelivered stop as
// current.
func MarkStopDelivered(stops []models.RouteStop, seq int) ([]models.RouteStop, error) {
	out := make([]models.RouteStop, len(stops))
	copy(out, stops)

	target := -1
	hasCurrent := false
	for i, stop := range out {
		if stop.Sequence == seq && target < 0 {
			target = i
		}
		if stop.Status == enums.StopStatusCurrent {
			hasCurrent = true
		}
	}
	if target < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stop not found")
	}

	stop := out[target]
	details := map[string]any{"sequence": seq, "status": string(stop.Status)}
	switch {
	case stop.Status == enums.StopStatusDelivered:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "stop already delivered").WithDetails(details)
	case stop.Status == enums.StopStatusCurrent, IsPickup(stop):
	case !hasCurrent && firstUndelivered(out) == target:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "stop is not the current stop").WithDetails(details)
	}

	out[target].Status = enums.StopStatusDelivered
	promoteNext(out, target)
	return out, nil
}

func firstUndelivered(stops []models.RouteStop) int {
	best := -1
	for i, stop := range stops {
		if stop.Status == enums.StopStatusDelivered {
			continue
		}
		if best < 0 || stop.Sequence < stops[best].Sequence {
			best = i
		}
	}
	return best
}

// promoteNext makes the stop right after the one just delivered current,
// provided it is pending and no other stop is current.
func promoteNext(stops []models.RouteStop, delivered int) {
	next := delivered + 1
	if next >= len(stops) || stops[next].Status != enums.StopStatusPending {
		return
	}
	for _, stop := range stops {
		if stop.Status == enums.StopStatusCurrent {
			return
		}
	}
	stops[next].Status = enums.StopStatusCurrent
}

// CanComplete reports whether every customer stop is delivered. A batch with
// no customer stops cannot be completed.
func CanComplete(batch models.DeliveryBatch) bool {
	drops := 0
	for _, stop := range batch.RouteStops {
		if IsPickup(stop) {
			continue
		}
		drops++
		if stop.Status != enums.StopStatusDelivered {
			return false
		}
	}
	return drops > 0
}

// StopDisplay is the badge for one stop.
type StopDisplay struct {
	Sequence int    `json:"sequence"`
	Pickup   bool   `json:"pickup"`
	Label    string `json:"label"`
	Color    string `json:"color"`
}

func DisplayStop(stop models.RouteStop) StopDisplay {
	d := StopDisplay{Sequence: stop.Sequence, Pickup: IsPickup(stop)}
	switch stop.Status {
	case enums.StopStatusDelivered:
		d.Label, d.Color = "Done", "green"
		if d.Pickup {
			d.Label = "Picked Up"
		}
	case enums.StopStatusCurrent:
		d.Label, d.Color = "Current", "blue"
	default:
		d.Label, d.Color = "Pending", neutralColor
	}
	if d.Pickup && stop.Status != enums.StopStatusDelivered {
		d.Color = "purple"
	}
	return d
}

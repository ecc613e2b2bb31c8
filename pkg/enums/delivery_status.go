package enums

import "fmt"

// DeliveryStatus is a batch status as sent by the backend. Both the current
// vocabulary and the legacy one are listed; legacy values are never issued.
type DeliveryStatus string

const (
	DeliveryStatusPlanned        DeliveryStatus = "planned"
	DeliveryStatusReadyForPickup DeliveryStatus = "READY_FOR_PICKUP"
	DeliveryStatusPickedUp       DeliveryStatus = "PICKED_UP"
	DeliveryStatusInTransit      DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered      DeliveryStatus = "DELIVERED"

	DeliveryStatusLegacyPending    DeliveryStatus = "pending"
	DeliveryStatusLegacyInTransit  DeliveryStatus = "in_transit"
	DeliveryStatusLegacyInProgress DeliveryStatus = "in_progress"
	DeliveryStatusLegacyCompleted  DeliveryStatus = "completed"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPlanned,
	DeliveryStatusReadyForPickup,
	DeliveryStatusPickedUp,
	DeliveryStatusInTransit,
	DeliveryStatusDelivered,
	DeliveryStatusLegacyPending,
	DeliveryStatusLegacyInTransit,
	DeliveryStatusLegacyInProgress,
	DeliveryStatusLegacyCompleted,
}

// IsValid reports whether the value is a known status in either vocabulary.
func (s DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDeliveryStatus converts the raw string to DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}

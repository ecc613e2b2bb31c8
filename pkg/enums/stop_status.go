package enums

import "fmt"

// StopStatus tracks a single stop on a delivery route.
type StopStatus string

const (
	StopStatusPending   StopStatus = "pending"
	StopStatusCurrent   StopStatus = "current"
	StopStatusDelivered StopStatus = "delivered"
)

var validStopStatuses = []StopStatus{
	StopStatusPending,
	StopStatusCurrent,
	StopStatusDelivered,
}

func (s StopStatus) IsValid() bool {
	for _, candidate := range validStopStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseStopStatus(value string) (StopStatus, error) {
	for _, candidate := range validStopStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stop status %q", value)
}

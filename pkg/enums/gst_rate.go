package enums

import "strconv"

// GSTRate is an Indian GST slab expressed in whole percent.
type GSTRate int

const (
	GSTRate0  GSTRate = 0
	GSTRate5  GSTRate = 5
	GSTRate12 GSTRate = 12
	GSTRate18 GSTRate = 18
	GSTRate28 GSTRate = 28
)

var validGSTRates = []GSTRate{GSTRate0, GSTRate5, GSTRate12, GSTRate18, GSTRate28}

// GSTRates returns the slabs in ascending order.
func GSTRates() []GSTRate {
	out := make([]GSTRate, len(validGSTRates))
	copy(out, validGSTRates)
	return out
}

func (r GSTRate) IsValid() bool {
	for _, candidate := range validGSTRates {
		if candidate == r {
			return true
		}
	}
	return false
}

// String renders the rate the way report breakdown keys are written.
func (r GSTRate) String() string {
	return strconv.Itoa(int(r))
}

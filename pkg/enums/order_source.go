package enums

import "fmt"

// OrderSource records the channel an order arrived through.
type OrderSource string

const (
	OrderSourceStorefront OrderSource = "storefront"
	OrderSourceWhatsApp   OrderSource = "whatsapp"
	OrderSourceVoice      OrderSource = "voice"
	OrderSourceTelegram   OrderSource = "telegram"
)

var validOrderSources = []OrderSource{
	OrderSourceStorefront,
	OrderSourceWhatsApp,
	OrderSourceVoice,
	OrderSourceTelegram,
}

func (s OrderSource) IsValid() bool {
	for _, candidate := range validOrderSources {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseOrderSource(value string) (OrderSource, error) {
	for _, candidate := range validOrderSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order source %q", value)
}

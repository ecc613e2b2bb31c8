package enums

import "fmt"

// Actor identifies who issues a delivery status change.
type Actor string

const (
	ActorShopOwner       Actor = "shop_owner"
	ActorDeliveryPartner Actor = "delivery_partner"
	ActorSystem          Actor = "system"
)

var validActors = []Actor{
	ActorShopOwner,
	ActorDeliveryPartner,
	ActorSystem,
}

func (a Actor) IsValid() bool {
	for _, candidate := range validActors {
		if candidate == a {
			return true
		}
	}
	return false
}

func ParseActor(value string) (Actor, error) {
	for _, candidate := range validActors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor %q", value)
}

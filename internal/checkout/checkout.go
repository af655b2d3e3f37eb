package checkout

import (
	"github.com/Benhoward2000/howard-farm/internal/shipping"
)

// LocalPickupMethod is the shipping method recorded on orders collected at
// the farm stand.
const LocalPickupMethod = "Local Pickup"

// Payment methods the storefront offers. Card is the only option for
// shipped orders; pickup orders can also settle in person.
const (
	PaymentCard  = "card"
	PaymentCash  = "cash"
	PaymentVenmo = "venmo"
)

// Config is the resolved delivery and payment setup for a checkout attempt.
type Config struct {
	ShippingMethod  string
	ShippingCost    float64
	LocalPickup     bool
	AllowedPayments []string
}

func (c Config) Allows(method string) bool {
	for _, m := range c.AllowedPayments {
		if m == method {
			return true
		}
	}
	return false
}

// Resolve picks the delivery setup from the buyer's selection. A pickup-only
// cart forces local pickup regardless of the selection; otherwise the
// selected rate id must match one of the quoted rates.
func Resolve(selectedRateID string, rates []shipping.Rate, pickupOnly bool) (Config, bool) {
	if pickupOnly || selectedRateID == "" {
		return Config{
			ShippingMethod:  LocalPickupMethod,
			ShippingCost:    0,
			LocalPickup:     true,
			AllowedPayments: []string{PaymentCard, PaymentCash, PaymentVenmo},
		}, true
	}

	for _, r := range rates {
		if r.RateID == selectedRateID {
			return Config{
				ShippingMethod:  r.Carrier + " " + r.Service,
				ShippingCost:    r.Rate,
				AllowedPayments: []string{PaymentCard},
			}, true
		}
	}
	return Config{}, false
}

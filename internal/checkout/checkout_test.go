package checkout

import (
	"testing"

	"github.com/Benhoward2000/howard-farm/internal/shipping"
)

var quotedRates = []shipping.Rate{
	{RateID: "rate-ground", Carrier: "USPS", Service: "Ground Advantage", Rate: 7.50},
	{RateID: "rate-priority", Carrier: "USPS", Service: "Priority Mail", Rate: 12.90},
}

func TestResolve_PickupOnlyCartForcesLocalPickup(t *testing.T) {
	cfg, ok := Resolve("rate-ground", quotedRates, true)
	if !ok {
		t.Fatal("expected a config")
	}
	if !cfg.LocalPickup || cfg.ShippingMethod != LocalPickupMethod || cfg.ShippingCost != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	for _, m := range []string{PaymentCard, PaymentCash, PaymentVenmo} {
		if !cfg.Allows(m) {
			t.Errorf("pickup order should allow %s", m)
		}
	}
}

func TestResolve_NoSelectionMeansPickup(t *testing.T) {
	cfg, ok := Resolve("", quotedRates, false)
	if !ok || !cfg.LocalPickup {
		t.Fatalf("expected local pickup config, got %+v", cfg)
	}
}

func TestResolve_MatchesSelectedRate(t *testing.T) {
	cfg, ok := Resolve("rate-priority", quotedRates, false)
	if !ok {
		t.Fatal("expected a config")
	}
	if cfg.LocalPickup {
		t.Fatal("shipped order flagged as pickup")
	}
	if cfg.ShippingMethod != "USPS Priority Mail" || cfg.ShippingCost != 12.90 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.Allows(PaymentCard) || cfg.Allows(PaymentCash) || cfg.Allows(PaymentVenmo) {
		t.Fatalf("shipped orders are card only, got %v", cfg.AllowedPayments)
	}
}

func TestResolve_UnknownRateRejected(t *testing.T) {
	if _, ok := Resolve("rate-bogus", quotedRates, false); ok {
		t.Fatal("expected unknown rate to be rejected")
	}
}

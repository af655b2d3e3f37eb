package shipping

import (
	"context"
	"errors"
	"testing"
)

type spyProvider struct {
	calls int
	rates []Rate
	err   error
}

func (p *spyProvider) Rates(ctx context.Context, addr Address, items []Item) ([]Rate, error) {
	p.calls++
	return p.rates, p.err
}

var testItems = []Item{{ProductID: 1, Quantity: 2, Weight: 0.5}}

func TestQuote_RejectsIncompleteAddress(t *testing.T) {
	spy := &spyProvider{}
	svc := NewService(spy)

	_, err := svc.Quote(context.Background(), Address{Street: "1 Farm Rd", City: "Hillsboro"}, testItems)
	if !errors.Is(err, ErrIncompleteAddress) {
		t.Fatalf("expected ErrIncompleteAddress, got %v", err)
	}
	if spy.calls != 0 {
		t.Fatalf("provider should not be called for incomplete address, got %d calls", spy.calls)
	}
}

func TestQuote_EmptyCartSkipsProvider(t *testing.T) {
	spy := &spyProvider{}
	svc := NewService(spy)

	rates, err := svc.Quote(context.Background(), Address{Street: "1 Farm Rd", City: "Hillsboro", State: "OH", Zip: "45133"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rates) != 0 {
		t.Fatalf("expected no rates, got %+v", rates)
	}
	if spy.calls != 0 {
		t.Fatalf("provider should not be called for empty cart, got %d calls", spy.calls)
	}
}

func TestQuote_PassesThroughProviderRates(t *testing.T) {
	spy := &spyProvider{rates: []Rate{{RateID: "r1", Carrier: "USPS", Service: "Priority Mail", Rate: 12.90, DeliveryDays: 2}}}
	svc := NewService(spy)

	rates, err := svc.Quote(context.Background(), Address{Street: "1 Farm Rd", City: "Hillsboro", State: "OH", Zip: "45133"}, testItems)
	if err != nil {
		t.Fatal(err)
	}
	if len(rates) != 1 || rates[0].RateID != "r1" {
		t.Fatalf("unexpected rates: %+v", rates)
	}
}

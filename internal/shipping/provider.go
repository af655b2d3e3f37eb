package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Provider quotes shipping rates for a parcel going to an address.
type Provider interface {
	Rates(ctx context.Context, addr Address, items []Item) ([]Rate, error)
}

type rateRequest struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	CartItems []Item `json:"cartItems"`
}

// HTTPProvider talks to the external rate API.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) Rates(ctx context.Context, addr Address, items []Item) ([]Rate, error) {
	body, err := json.Marshal(rateRequest{
		Street:    addr.Street,
		City:      addr.City,
		State:     addr.State,
		Zip:       addr.Zip,
		CartItems: items,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/rates", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate api returned status %d", res.StatusCode)
	}

	var rates []Rate
	if err := json.NewDecoder(res.Body).Decode(&rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// StaticProvider returns a fixed rate table. Used when no rate API is
// configured, so checkout still works in development.
type StaticProvider struct {
	Table []Rate
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{Table: []Rate{
		{RateID: "static-ground", Carrier: "USPS", Service: "Ground Advantage", Rate: 7.50, DeliveryDays: 5},
		{RateID: "static-priority", Carrier: "USPS", Service: "Priority Mail", Rate: 12.90, DeliveryDays: 2},
	}}
}

func (p *StaticProvider) Rates(ctx context.Context, addr Address, items []Item) ([]Rate, error) {
	out := make([]Rate, len(p.Table))
	copy(out, p.Table)
	return out, nil
}

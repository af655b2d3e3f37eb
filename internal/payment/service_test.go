package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// fakeClient stands in for Stripe in tests.
type fakeClient struct {
	created []Intent
	intents map[string]Intent
	err     error
}

func newFakeClient() *fakeClient {
	return &fakeClient{intents: make(map[string]Intent)}
}

func (f *fakeClient) CreateIntent(amount int64) (Intent, error) {
	if f.err != nil {
		return Intent{}, f.err
	}
	in := Intent{
		ID:           fmt.Sprintf("pi_%d", len(f.created)+1),
		ClientSecret: fmt.Sprintf("pi_%d_secret", len(f.created)+1),
		Amount:       amount,
		Status:       "requires_payment_method",
	}
	f.created = append(f.created, in)
	f.intents[in.ID] = in
	return in, nil
}

func (f *fakeClient) GetIntent(id string) (Intent, error) {
	if f.err != nil {
		return Intent{}, f.err
	}
	in, ok := f.intents[id]
	if !ok {
		return Intent{}, errors.New("no such payment_intent")
	}
	return in, nil
}

func (f *fakeClient) succeed(id string) {
	in := f.intents[id]
	in.Status = StatusSucceeded
	f.intents[id] = in
}

func TestCreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(newFakeClient())

	for _, amount := range []int64{0, -500} {
		if _, err := svc.CreateIntent(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestVerifyIntent(t *testing.T) {
	fake := newFakeClient()
	svc := NewService(fake)

	in, err := svc.CreateIntent(1598)
	if err != nil {
		t.Fatal(err)
	}

	// not yet paid
	if err := svc.VerifyIntent(in.ID, 1598); !errors.Is(err, ErrNotSucceeded) {
		t.Fatalf("expected ErrNotSucceeded, got %v", err)
	}

	fake.succeed(in.ID)
	if err := svc.VerifyIntent(in.ID, 1598); err != nil {
		t.Fatalf("expected verified intent, got %v", err)
	}

	// the cart total changed after payment
	if err := svc.VerifyIntent(in.ID, 2000); !errors.Is(err, ErrAmountChanged) {
		t.Fatalf("expected ErrAmountChanged, got %v", err)
	}
}

func TestCreateIntentHandler(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(newFakeClient())).RegisterPublicRoutes(app)

	req := httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"amount":1598}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		ID           string `json:"id"`
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.ID == "" || body.ClientSecret == "" {
		t.Fatalf("expected id and clientSecret in response, got %+v", body)
	}

	// zero amount rejected
	req = httptest.NewRequest("POST", "/create-payment-intent", strings.NewReader(`{"amount":0}`))
	req.Header.Set("Content-Type", "application/json")
	res, err = app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for zero amount, got %d", res.StatusCode)
	}
}

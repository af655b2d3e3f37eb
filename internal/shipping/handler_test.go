package shipping

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/Benhoward2000/howard-farm/internal/cart"
	"github.com/Benhoward2000/howard-farm/internal/product"
)

func setupRatesApp(t *testing.T, provider Provider, seed []product.Product) *fiber.App {
	t.Helper()

	app := fiber.New()
	store := session.New()
	app.Use(func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
		c.Locals("session", sess)
		return c.Next()
	})

	carts := cart.NewService(cart.NewStore(), product.NewService(product.NewInMemoryRepository(seed)))
	cartHandler := cart.NewHandler(carts)
	cartHandler.RegisterPublicRoutes(app)

	h := NewHandler(NewService(provider), carts)
	h.RegisterPublicRoutes(app)
	return app
}

func postRates(t *testing.T, app *fiber.App, body, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/shipping/rates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func addToCart(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("add to cart: expected 200, got %d", res.StatusCode)
	}
	for _, c := range res.Cookies() {
		if c.Name == "session_id" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie issued")
	return ""
}

func decodeRates(t *testing.T, res *http.Response) []Rate {
	t.Helper()
	var rates []Rate
	if err := json.NewDecoder(res.Body).Decode(&rates); err != nil {
		t.Fatal(err)
	}
	return rates
}

const fullAddress = `{"street":"1 Farm Rd","city":"Hillsboro","state":"OH","zip":"45133"}`

func TestGetRates_QuotesShippableCart(t *testing.T) {
	spy := &spyProvider{rates: []Rate{{RateID: "r1", Carrier: "USPS", Service: "Ground Advantage", Rate: 7.50, DeliveryDays: 5}}}
	app := setupRatesApp(t, spy, []product.Product{{ID: 1, Name: "Carolina reapers", Price: 5.99, Stock: 10, Weight: 0.5}})

	cookie := addToCart(t, app, `{"productId":1,"quantity":2}`)
	res := postRates(t, app, fullAddress, cookie)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	rates := decodeRates(t, res)
	if len(rates) != 1 || rates[0].RateID != "r1" {
		t.Fatalf("unexpected rates: %+v", rates)
	}
	if spy.calls != 1 {
		t.Fatalf("expected one provider call, got %d", spy.calls)
	}
}

func TestGetRates_EmptyCartReturnsNoRates(t *testing.T) {
	spy := &spyProvider{}
	app := setupRatesApp(t, spy, nil)

	res := postRates(t, app, fullAddress, "")
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if rates := decodeRates(t, res); len(rates) != 0 {
		t.Fatalf("expected no rates, got %+v", rates)
	}
	if spy.calls != 0 {
		t.Fatalf("provider should not be called, got %d calls", spy.calls)
	}
}

func TestGetRates_PickupOnlyCartSkipsProvider(t *testing.T) {
	spy := &spyProvider{rates: []Rate{{RateID: "r1"}}}
	app := setupRatesApp(t, spy, []product.Product{{ID: 3, Name: "Pesto", Price: 7.99, Stock: 5, LocalPickupOnly: true}})

	cookie := addToCart(t, app, `{"productId":3}`)
	res := postRates(t, app, fullAddress, cookie)
	if rates := decodeRates(t, res); len(rates) != 0 {
		t.Fatalf("expected no rates for pickup-only cart, got %+v", rates)
	}
	if spy.calls != 0 {
		t.Fatalf("provider should not be called, got %d calls", spy.calls)
	}
}

func TestGetRates_IncompleteAddressIs400(t *testing.T) {
	app := setupRatesApp(t, &spyProvider{}, []product.Product{{ID: 1, Name: "Carolina reapers", Price: 5.99, Stock: 10}})

	cookie := addToCart(t, app, `{"productId":1}`)
	res := postRates(t, app, `{"street":"1 Farm Rd"}`, cookie)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestGetRates_ProviderOutageDegradesToEmptyList(t *testing.T) {
	spy := &spyProvider{err: errors.New("rate api down")}
	app := setupRatesApp(t, spy, []product.Product{{ID: 1, Name: "Carolina reapers", Price: 5.99, Stock: 10}})

	cookie := addToCart(t, app, `{"productId":1}`)
	res := postRates(t, app, fullAddress, cookie)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on provider outage, got %d", res.StatusCode)
	}
	if rates := decodeRates(t, res); len(rates) != 0 {
		t.Fatalf("expected empty rate list, got %+v", rates)
	}
}

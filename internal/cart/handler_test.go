package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/Benhoward2000/howard-farm/internal/product"
)

func setupCartApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Carolina reapers", Price: 5.99, Stock: 10},
		{ID: 2, Name: "Fatali Salsa", Price: 9.99, Stock: 0},
		{ID: 3, Name: "Pesto", Price: 7.99, Stock: 5, LocalPickupOnly: true},
		{ID: 4, Name: "Retired jam", Price: 4.99, Stock: 3, IsArchived: true},
	})

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

	h := NewHandler(NewService(NewStore(), product.NewService(repo)))
	h.RegisterPublicRoutes(app)
	return app
}

func doCart(t *testing.T, app *fiber.App, method, path, body, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func cartCookie(res *http.Response) string {
	for _, c := range res.Cookies() {
		if c.Name == "session_id" {
			return c.Name + "=" + c.Value
		}
	}
	return ""
}

func decodeCart(t *testing.T, res *http.Response) cartResponse {
	t.Helper()
	var body cartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body
}

func TestCart_AddAndGetRoundTrip(t *testing.T) {
	app := setupCartApp(t)

	res := doCart(t, app, "POST", "/api/cart/items", `{"productId":1,"quantity":2}`, "")
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("add: expected 200, got %d", res.StatusCode)
	}
	cookie := cartCookie(res)
	if cookie == "" {
		t.Fatal("expected a session cookie on first cart mutation")
	}

	body := decodeCart(t, res)
	if len(body.Items) != 1 || body.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart after add: %+v", body.Items)
	}
	if body.Subtotal != 11.98 {
		t.Fatalf("expected subtotal 11.98, got %v", body.Subtotal)
	}

	// the same cookie sees the same cart
	res = doCart(t, app, "GET", "/api/cart", "", cookie)
	body = decodeCart(t, res)
	if len(body.Items) != 1 || body.Items[0].ProductID != 1 {
		t.Fatalf("cart not persisted across requests: %+v", body.Items)
	}

	// a fresh client gets an empty cart
	res = doCart(t, app, "GET", "/api/cart", "", "")
	body = decodeCart(t, res)
	if len(body.Items) != 0 {
		t.Fatalf("expected empty cart for new session, got %+v", body.Items)
	}
}

func TestCart_DefaultQuantityIsOne(t *testing.T) {
	app := setupCartApp(t)

	res := doCart(t, app, "POST", "/api/cart/items", `{"productId":1}`, "")
	body := decodeCart(t, res)
	if body.Items[0].Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", body.Items[0].Quantity)
	}
}

func TestCart_RejectsBadAdds(t *testing.T) {
	app := setupCartApp(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"negative quantity", `{"productId":1,"quantity":-2}`, fiber.StatusBadRequest},
		{"missing product", `{"productId":99}`, fiber.StatusNotFound},
		{"archived product", `{"productId":4}`, fiber.StatusNotFound},
		{"out of stock", `{"productId":2}`, fiber.StatusConflict},
	}
	for _, tc := range cases {
		res := doCart(t, app, "POST", "/api/cart/items", tc.body, "")
		if res.StatusCode != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, res.StatusCode)
		}
	}
}

func TestCart_RemoveDecrementAndLine(t *testing.T) {
	app := setupCartApp(t)

	res := doCart(t, app, "POST", "/api/cart/items", `{"productId":1,"quantity":3}`, "")
	cookie := cartCookie(res)

	res = doCart(t, app, "DELETE", "/api/cart/items/1", "", cookie)
	body := decodeCart(t, res)
	if body.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 after decrement, got %d", body.Items[0].Quantity)
	}

	res = doCart(t, app, "DELETE", "/api/cart/items/1/all", "", cookie)
	body = decodeCart(t, res)
	if len(body.Items) != 0 {
		t.Fatalf("expected line removed, got %+v", body.Items)
	}
}

func TestCart_ClearAndPickupFlag(t *testing.T) {
	app := setupCartApp(t)

	res := doCart(t, app, "POST", "/api/cart/items", `{"productId":3}`, "")
	cookie := cartCookie(res)
	if body := decodeCart(t, res); !body.RequiresLocalPickup {
		t.Fatal("expected pickup-only item to flag the cart for local pickup")
	}

	res = doCart(t, app, "DELETE", "/api/cart", "", cookie)
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("clear: expected 204, got %d", res.StatusCode)
	}

	res = doCart(t, app, "GET", "/api/cart", "", cookie)
	if body := decodeCart(t, res); len(body.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", body.Items)
	}
}

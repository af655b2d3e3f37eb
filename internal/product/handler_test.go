package product

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func seedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Carolina reapers", Price: 5.99, Stock: 10, DisplayOrder: 2},
		{ID: 2, Name: "Fatali Salsa", Price: 9.99, Stock: 4, DisplayOrder: 1},
		{ID: 3, Name: "Pesto", Price: 7.99, Stock: 3, DisplayOrder: 3, LocalPickupOnly: true, IsArchived: true},
	}
}

func setupApp(seed []Product) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app)
	return app
}

func TestGetProducts_HidesArchived(t *testing.T) {
	app := setupApp(seedProducts())

	res, err := app.Test(httptest.NewRequest("GET", "/products", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 visible products, got %d", len(products))
	}
	// ordered by displayOrder
	if products[0].ID != 2 || products[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", products)
	}
}

func TestGetAllProducts_IncludesArchived(t *testing.T) {
	app := setupApp(seedProducts())

	res, _ := app.Test(httptest.NewRequest("GET", "/products/all", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var products []Product
	json.NewDecoder(res.Body).Decode(&products)
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
}

func TestCreateProduct_RejectsNegativePriceAndStock(t *testing.T) {
	app := setupApp(nil)

	body, _ := json.Marshal(Product{Name: "Honey", Price: -1, Stock: -2})
	req := httptest.NewRequest("POST", "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "price") || !strings.Contains(string(b), "stock") {
		t.Fatalf("expected price and stock validation errors, got %s", string(b))
	}
}

func TestArchiveToggle(t *testing.T) {
	app := setupApp(seedProducts())

	req := httptest.NewRequest("PUT", "/products/1/archive", strings.NewReader(`{"isArchived":true}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/products", nil))
	var products []Product
	json.NewDecoder(res2.Body).Decode(&products)
	for _, p := range products {
		if p.ID == 1 {
			t.Fatalf("archived product 1 still visible in public list")
		}
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	app := setupApp(nil)

	body, _ := json.Marshal(Product{Name: "Ghost"})
	req := httptest.NewRequest("PUT", "/products/99", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

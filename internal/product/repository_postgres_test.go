package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"product_id", "name", "description", "price", "stock", "image_url", "category",
		"local_pickup_only", "display_order", "weight", "length", "width", "height",
		"is_archived", "created_at", "updated_at",
	})
}

func TestPostgresList_ExcludesArchived(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().
		AddRow(1, "Carolina reapers", "hot", 5.99, 10, "/img/pepper.png", "Produce", false, 1, 4.0, 6.0, 4.0, 2.0, false, "t", "u").
		AddRow(2, "Pesto", "fresh", 7.99, 3, "/img/pesto.png", "Pantry", true, 2, 8.0, 3.0, 3.0, 4.0, false, "t", "u")
	mock.ExpectQuery("WHERE is_archived = FALSE").WillReturnRows(rows)

	products := repo.List(false)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[1].Name != "Pesto" || !products[1].LocalPickupOnly {
		t.Fatalf("unexpected product %+v", products[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").WithArgs(9).WillReturnRows(productRows())

	if _, err := repo.GetByID(9); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSetArchived(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products SET is_archived").
		WithArgs(true, sqlmock.AnyArg(), 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetArchived(4, true); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

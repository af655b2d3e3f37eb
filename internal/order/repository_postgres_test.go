package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresCreate_CommitsOrderAndStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	o := Order{
		Items: []Item{
			{ProductID: 1, Name: "Carolina reapers", Quantity: 2, Price: 5.99},
			{ProductID: 3, Name: "Pesto", Quantity: 1, Price: 7.99},
		},
		Shipping: ShippingInfo{
			FullName: "Alex Doe",
			Street:   "1 Farm Rd", City: "Hillsboro", State: "OH", Zip: "45133",
			Email: "alex@example.com",
		},
		ShippingMethod: "USPS Ground Advantage",
		ShippingCost:   7.50,
		PaymentMethod:  "card",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(42))
	mock.ExpectExec("UPDATE products").
		WithArgs(2, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(42, 1, "Carolina reapers", 2, 5.99).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE products").
		WithArgs(1, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(42, 3, "Pesto", 1, 7.99).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	created, err := repo.Create(o)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 42 {
		t.Fatalf("expected order id 42, got %d", created.ID)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected Pending, got %s", created.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_RollsBackOnShortStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	o := Order{
		Items:    []Item{{ProductID: 1, Name: "Carolina reapers", Quantity: 20, Price: 5.99}},
		Shipping: ShippingInfo{FullName: "Alex Doe", Email: "alex@example.com"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(43))
	// the conditional update matches no row when stock has run out
	mock.ExpectExec("UPDATE products").
		WithArgs(20, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if _, err := repo.Create(o); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateStatus_EmptyTrackingLeavesExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// NULLIF keeps the stored tracking number when none is sent
	mock.ExpectExec(`tracking_number = COALESCE\(NULLIF`).
		WithArgs("Delivered", "", nil, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(42, StatusDelivered, "", nil); err != nil {
		t.Fatal(err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders").
		WithArgs("Shipped", "1Z999", nil, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(99, StatusShipped, "1Z999", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

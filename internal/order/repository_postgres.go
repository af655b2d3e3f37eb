package order

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	orderColumns = `order_id, user_id, full_name, street, city, state, zip, email, phone, shipping_method, shipping_cost, payment_method, order_status, tracking_number, created_at, shipped_at`

	insertOrderQuery = `
		INSERT INTO orders (user_id, full_name, street, city, state, zip, email, phone, shipping_method, shipping_cost, payment_method, order_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING order_id
	`
	reserveStockQuery = `
		UPDATE products
		SET stock = stock - $1, updated_at = $2
		WHERE product_id = $3 AND stock >= $1
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	getOrderByIDQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1
	`
	listOrdersByUserQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 OR email = $2
		ORDER BY order_id DESC
	`
	listAllOrdersQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY order_id DESC
	`
	listOrderItemsQuery = `
		SELECT product_id, name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY order_item_id
	`
	listItemsForOrdersQuery = `
		SELECT order_id, product_id, name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, order_item_id
	`
	updateOrderStatusQuery = `
		UPDATE orders
		SET order_status = $1, tracking_number = COALESCE(NULLIF($2, ''), tracking_number), shipped_at = COALESCE($3, shipped_at)
		WHERE order_id = $4
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the order and decrements stock inside one transaction. The
// stock update is conditional on enough stock remaining, so two buyers
// racing for the last jar cannot both win.
func (r *PostgresRepository) Create(o Order) (Order, error) {
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.CreatedAt == "" {
		o.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}

	var userID sql.NullInt64
	if o.UserID != nil {
		userID = sql.NullInt64{Int64: int64(*o.UserID), Valid: true}
	}

	err = tx.QueryRow(insertOrderQuery,
		userID,
		o.Shipping.FullName, o.Shipping.Street, o.Shipping.City, o.Shipping.State, o.Shipping.Zip,
		o.Shipping.Email, o.Shipping.Phone,
		o.ShippingMethod, o.ShippingCost, o.PaymentMethod,
		string(o.Status), o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		tx.Rollback()
		return Order{}, err
	}

	for _, it := range o.Items {
		res, err := tx.Exec(reserveStockQuery, it.Quantity, o.CreatedAt, it.ProductID)
		if err != nil {
			tx.Rollback()
			return Order{}, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return Order{}, err
		}
		if affected == 0 {
			tx.Rollback()
			return Order{}, ErrInsufficientStock
		}

		if _, err := tx.Exec(insertOrderItemQuery, o.ID, it.ProductID, it.Name, it.Quantity, it.Price); err != nil {
			tx.Rollback()
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	o.Items = r.loadItems(o.ID)
	return o, nil
}

func (r *PostgresRepository) ListByUser(userID int, email string) []Order {
	return r.listOrders(listOrdersByUserQuery, userID, email)
}

func (r *PostgresRepository) ListAll() []Order {
	return r.listOrders(listAllOrdersQuery)
}

func (r *PostgresRepository) listOrders(query string, args ...any) []Order {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return []Order{}
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			continue
		}
		o.Items = []Item{}
		orders = append(orders, o)
	}
	r.attachItems(orders)
	return orders
}

// attachItems loads every listed order's items in one query.
func (r *PostgresRepository) attachItems(orders []Order) {
	if len(orders) == 0 {
		return
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[int]*Order, len(orders))
	for i := range orders {
		ids = append(ids, int64(orders[i].ID))
		byID[orders[i].ID] = &orders[i]
	}

	rows, err := r.db.Query(listItemsForOrdersQuery, pq.Array(ids))
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var it Item
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Quantity, &it.Price); err != nil {
			continue
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
}

func (r *PostgresRepository) loadItems(orderID int) []Item {
	rows, err := r.db.Query(listOrderItemsQuery, orderID)
	if err != nil {
		return []Item{}
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.Price); err != nil {
			continue
		}
		items = append(items, it)
	}
	return items
}

func (r *PostgresRepository) UpdateStatus(id int, status Status, trackingNumber string, shippedAt *string) error {
	res, err := r.db.Exec(updateOrderStatusQuery, string(status), trackingNumber, shippedAt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var userID sql.NullInt64
	var tracking sql.NullString
	var shippedAt sql.NullString

	err := row.Scan(
		&o.ID, &userID,
		&o.Shipping.FullName, &o.Shipping.Street, &o.Shipping.City, &o.Shipping.State, &o.Shipping.Zip,
		&o.Shipping.Email, &o.Shipping.Phone,
		&o.ShippingMethod, &o.ShippingCost, &o.PaymentMethod,
		&o.Status, &tracking, &o.CreatedAt, &shippedAt,
	)
	if err != nil {
		return Order{}, err
	}
	if userID.Valid {
		id := int(userID.Int64)
		o.UserID = &id
	}
	if tracking.Valid {
		o.TrackingNumber = tracking.String
	}
	if shippedAt.Valid {
		o.ShippedAt = &shippedAt.String
	}
	return o, nil
}

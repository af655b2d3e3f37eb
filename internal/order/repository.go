package order

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists orders. Create must decrement product stock and insert
// the order atomically: if any line's stock has run out the whole order is
// rejected and nothing is written.
type Repository interface {
	Create(o Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int, email string) []Order
	ListAll() []Order
	UpdateStatus(id int, status Status, trackingNumber string, shippedAt *string) error
}

// StockTable lets the in-memory repository share stock numbers with the
// catalog used by a test.
type StockTable map[int]int

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[int]Order
	stock  StockTable
	nextID int
}

func NewInMemoryRepository(stock StockTable) *InMemoryRepository {
	if stock == nil {
		stock = make(StockTable)
	}
	return &InMemoryRepository{
		orders: make(map[int]Order),
		stock:  stock,
		nextID: 1,
	}
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// check every line before touching the table
	for _, it := range o.Items {
		if remaining, ok := r.stock[it.ProductID]; ok && remaining < it.Quantity {
			return Order{}, ErrInsufficientStock
		}
	}
	for _, it := range o.Items {
		if _, ok := r.stock[it.ProductID]; ok {
			r.stock[it.ProductID] -= it.Quantity
		}
	}

	o.ID = r.nextID
	r.nextID++
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.CreatedAt == "" {
		o.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	r.orders[o.ID] = o
	return o, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

// ListByUser returns the user's orders, including guest orders placed with
// the same email before the account existed.
func (r *InMemoryRepository) ListByUser(userID int, email string) []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]Order, 0)
	for _, o := range r.orders {
		if (o.UserID != nil && *o.UserID == userID) || (email != "" && o.Shipping.Email == email) {
			orders = append(orders, o)
		}
	}
	sortNewestFirst(orders)
	return orders
}

func (r *InMemoryRepository) ListAll() []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, o)
	}
	sortNewestFirst(orders)
	return orders
}

func (r *InMemoryRepository) UpdateStatus(id int, status Status, trackingNumber string, shippedAt *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	if trackingNumber != "" {
		o.TrackingNumber = trackingNumber
	}
	if shippedAt != nil {
		o.ShippedAt = shippedAt
	}
	r.orders[id] = o
	return nil
}

func sortNewestFirst(orders []Order) {
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
}

func (r *InMemoryRepository) Stock(productID int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stock[productID]
}

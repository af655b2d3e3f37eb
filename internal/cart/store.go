package cart

import (
	"sync"

	"github.com/Benhoward2000/howard-farm/internal/product"
)

// Store holds every active session's cart in memory, keyed by session id.
// Carts are not persisted: losing the session discards the cart. All
// mutations go through the store so there is a single update entry point.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Line)}
}

// Get returns a snapshot of the cart.
func (s *Store) Get(cartID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]Line, len(s.carts[cartID]))
	copy(lines, s.carts[cartID])
	return Cart{Lines: lines}
}

// Add inserts a new line or increases an existing line's quantity, clamped
// so the quantity in the cart never exceeds the product's known stock. The
// line captures the product's price and dimensions at add time.
func (s *Store) Add(cartID string, p product.Product, qty int) Cart {
	if qty <= 0 || p.Stock <= 0 {
		return s.Get(cartID)
	}

	s.mu.Lock()
	lines := s.carts[cartID]
	found := false
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity = clamp(lines[i].Quantity+qty, p.Stock)
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{
			ProductID:       p.ID,
			Name:            p.Name,
			Price:           p.Price,
			Quantity:        clamp(qty, p.Stock),
			LocalPickupOnly: p.LocalPickupOnly,
			Weight:          p.Weight,
			Length:          p.Length,
			Width:           p.Width,
			Height:          p.Height,
		})
	}
	s.carts[cartID] = lines
	s.mu.Unlock()

	return s.Get(cartID)
}

// Remove decrements the line's quantity by one and deletes the line when it
// reaches zero.
func (s *Store) Remove(cartID string, productID int) Cart {
	s.mu.Lock()
	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity--
			if lines[i].Quantity <= 0 {
				lines = append(lines[:i], lines[i+1:]...)
			}
			break
		}
	}
	s.carts[cartID] = lines
	s.mu.Unlock()

	return s.Get(cartID)
}

// RemoveAll deletes the line outright.
func (s *Store) RemoveAll(cartID string, productID int) Cart {
	s.mu.Lock()
	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	s.carts[cartID] = lines
	s.mu.Unlock()

	return s.Get(cartID)
}

// Clear empties the cart, used after a successful checkout.
func (s *Store) Clear(cartID string) {
	s.mu.Lock()
	delete(s.carts, cartID)
	s.mu.Unlock()
}

func clamp(qty, stock int) int {
	if qty > stock {
		return stock
	}
	return qty
}

package cart

import (
	"errors"

	"github.com/Benhoward2000/howard-farm/internal/product"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// ProductGetter is the slice of the product service the cart needs.
type ProductGetter interface {
	GetByID(id int) (product.Product, error)
}

// Service validates cart mutations against the catalog before handing them
// to the store.
type Service struct {
	store    *Store
	products ProductGetter
}

func NewService(store *Store, products ProductGetter) *Service {
	return &Service{store: store, products: products}
}

func (s *Service) Get(cartID string) Cart {
	return s.store.Get(cartID)
}

func (s *Service) Add(cartID string, productID, qty int) (Cart, error) {
	p, err := s.products.GetByID(productID)
	if err != nil || p.IsArchived {
		return Cart{}, ErrProductNotFound
	}
	if p.Stock <= 0 {
		return Cart{}, ErrOutOfStock
	}
	return s.store.Add(cartID, p, qty), nil
}

func (s *Service) Remove(cartID string, productID int) Cart {
	return s.store.Remove(cartID, productID)
}

func (s *Service) RemoveAll(cartID string, productID int) Cart {
	return s.store.RemoveAll(cartID, productID)
}

func (s *Service) Clear(cartID string) {
	s.store.Clear(cartID)
}

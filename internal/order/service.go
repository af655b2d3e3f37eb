package order

import (
	"errors"
	"time"
)

var (
	ErrNoItems           = errors.New("order has no items")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(o Order) (Order, error) {
	if len(o.Items) == 0 {
		return Order{}, ErrNoItems
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return Order{}, ErrNoItems
		}
	}
	o.Status = StatusPending
	return s.repo.Create(o)
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int, email string) []Order {
	return s.repo.ListByUser(userID, email)
}

func (s *Service) ListAll() []Order {
	return s.repo.ListAll()
}

// UpdateStatus moves an order through the fulfillment flow and stamps the
// ship time the first time it goes out the door.
func (s *Service) UpdateStatus(id int, status Status, trackingNumber string) (Order, error) {
	if !status.Valid() {
		return Order{}, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !current.Status.CanTransition(status) {
		return Order{}, ErrInvalidTransition
	}

	var shippedAt *string
	if status == StatusShipped && current.ShippedAt == nil {
		now := time.Now().UTC().Format(time.RFC3339)
		shippedAt = &now
	}

	if err := s.repo.UpdateStatus(id, status, trackingNumber, shippedAt); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(id)
}

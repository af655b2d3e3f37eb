package shipping

import (
	"context"
	"errors"
)

var ErrIncompleteAddress = errors.New("shipping address is incomplete")

type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Quote returns rate options for the given cart contents. Carts that ship
// nothing (empty, or pickup-only) quote no rates without touching the
// provider.
func (s *Service) Quote(ctx context.Context, addr Address, items []Item) ([]Rate, error) {
	if !addr.Complete() {
		return nil, ErrIncompleteAddress
	}
	if len(items) == 0 {
		return []Rate{}, nil
	}
	return s.provider.Rates(ctx, addr, items)
}

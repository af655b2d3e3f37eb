package payment

import "errors"

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrNotSucceeded  = errors.New("payment has not succeeded")
	ErrAmountChanged = errors.New("payment amount does not match order total")
)

type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

func (s *Service) CreateIntent(amount int64) (Intent, error) {
	if amount <= 0 {
		return Intent{}, ErrInvalidAmount
	}
	return s.client.CreateIntent(amount)
}

// VerifyIntent confirms with Stripe that the intent succeeded and that the
// captured amount matches what the order will charge. The client-reported
// state is never trusted on its own.
func (s *Service) VerifyIntent(id string, wantAmount int64) error {
	intent, err := s.client.GetIntent(id)
	if err != nil {
		return err
	}
	if intent.Status != StatusSucceeded {
		return ErrNotSucceeded
	}
	if intent.Amount != wantAmount {
		return ErrAmountChanged
	}
	return nil
}

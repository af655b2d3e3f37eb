package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/Benhoward2000/howard-farm/internal/cart"
	"github.com/Benhoward2000/howard-farm/internal/mailer"
	"github.com/Benhoward2000/howard-farm/internal/order"
	"github.com/Benhoward2000/howard-farm/internal/shipping"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrUnknownRate        = errors.New("selected shipping rate is not available")
	ErrMissingContact     = errors.New("name and email are required")
	ErrIncompleteShipping = errors.New("shipping address is incomplete")
	ErrPaymentMethod      = errors.New("payment method not available for this order")
	ErrPaymentRequired    = errors.New("payment has not been completed")
)

// CartAccess is the slice of the cart service checkout needs.
type CartAccess interface {
	Get(cartID string) cart.Cart
	Clear(cartID string)
}

// RateQuoter re-quotes shipping rates server-side so the charged rate always
// comes from the provider, never from the client.
type RateQuoter interface {
	Quote(ctx context.Context, addr shipping.Address, items []shipping.Item) ([]shipping.Rate, error)
}

// PaymentVerifier confirms a payment intent before the order is accepted.
type PaymentVerifier interface {
	VerifyIntent(id string, wantAmount int64) error
}

// OrderSubmitter persists the order and settles stock.
type OrderSubmitter interface {
	Submit(o order.Order) (order.Order, error)
}

// Request is one checkout attempt.
type Request struct {
	Shipping        order.ShippingInfo
	SelectedRateID  string
	PaymentMethod   string
	PaymentIntentID string
	UserID          *int
}

type Service struct {
	carts    CartAccess
	rates    RateQuoter
	payments PaymentVerifier
	orders   OrderSubmitter
	mail     mailer.Sender
}

func NewService(carts CartAccess, rates RateQuoter, payments PaymentVerifier, orders OrderSubmitter, mail mailer.Sender) *Service {
	return &Service{carts: carts, rates: rates, payments: payments, orders: orders, mail: mail}
}

// Submit turns the session cart into an order. The cart is only cleared
// after the order is accepted; any failure leaves it untouched so the buyer
// can retry.
func (s *Service) Submit(ctx context.Context, cartID string, req Request) (order.Order, error) {
	crt := s.carts.Get(cartID)
	if crt.IsEmpty() {
		return order.Order{}, ErrEmptyCart
	}

	cfg, err := s.resolveConfig(ctx, crt, req)
	if err != nil {
		return order.Order{}, err
	}

	if req.Shipping.FullName == "" || req.Shipping.Email == "" {
		return order.Order{}, ErrMissingContact
	}
	addr := shipping.Address{
		Street: req.Shipping.Street,
		City:   req.Shipping.City,
		State:  req.Shipping.State,
		Zip:    req.Shipping.Zip,
	}
	if !cfg.LocalPickup && !addr.Complete() {
		return order.Order{}, ErrIncompleteShipping
	}

	if !cfg.Allows(req.PaymentMethod) {
		return order.Order{}, ErrPaymentMethod
	}

	o := order.Order{
		UserID:         req.UserID,
		Items:          itemsFromCart(crt),
		Shipping:       req.Shipping,
		ShippingMethod: cfg.ShippingMethod,
		ShippingCost:   cfg.ShippingCost,
		PaymentMethod:  req.PaymentMethod,
	}

	if req.PaymentMethod == PaymentCard {
		if req.PaymentIntentID == "" {
			return order.Order{}, ErrPaymentRequired
		}
		if err := s.payments.VerifyIntent(req.PaymentIntentID, toMinorUnits(o.Total())); err != nil {
			return order.Order{}, err
		}
	}

	created, err := s.orders.Submit(o)
	if err != nil {
		return order.Order{}, err
	}

	s.carts.Clear(cartID)
	s.sendConfirmation(created)
	return created, nil
}

func (s *Service) resolveConfig(ctx context.Context, crt cart.Cart, req Request) (Config, error) {
	pickupOnly := crt.RequiresLocalPickup()

	var rates []shipping.Rate
	if !pickupOnly && req.SelectedRateID != "" {
		addr := shipping.Address{
			Street: req.Shipping.Street,
			City:   req.Shipping.City,
			State:  req.Shipping.State,
			Zip:    req.Shipping.Zip,
		}
		quoted, err := s.rates.Quote(ctx, addr, shipping.ItemsFromCart(crt))
		if err != nil {
			return Config{}, ErrUnknownRate
		}
		rates = quoted
	}

	cfg, ok := Resolve(req.SelectedRateID, rates, pickupOnly)
	if !ok {
		return Config{}, ErrUnknownRate
	}
	return cfg, nil
}

// sendConfirmation emails the buyer a receipt. A mail outage never fails
// the order.
func (s *Service) sendConfirmation(o order.Order) {
	if s.mail == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thanks for your order, %s!</h2>", o.Shipping.FullName)
	fmt.Fprintf(&b, "<p>Order #%d</p><ul>", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "<li>%d x %s - $%.2f</li>", it.Quantity, it.Name, it.Price)
	}
	b.WriteString("</ul>")
	if o.ShippingMethod == LocalPickupMethod {
		b.WriteString("<p>Your order will be ready for pickup at the farm stand.</p>")
	} else {
		fmt.Fprintf(&b, "<p>Shipping: %s - $%.2f</p>", o.ShippingMethod, o.ShippingCost)
	}
	fmt.Fprintf(&b, "<p><strong>Total: $%.2f</strong></p>", o.Total())

	subject := fmt.Sprintf("Howard Farm order #%d confirmed", o.ID)
	if err := s.mail.Send(o.Shipping.Email, subject, b.String()); err != nil {
		log.Printf("checkout: confirmation email for order %d failed: %v", o.ID, err)
	}
}

func itemsFromCart(crt cart.Cart) []order.Item {
	items := make([]order.Item, 0, len(crt.Lines))
	for _, l := range crt.Lines {
		items = append(items, order.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	return items
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

package payment

import (
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Client creates and looks up payment intents. Amounts are in minor units
// (cents).
type Client interface {
	CreateIntent(amount int64) (Intent, error)
	GetIntent(id string) (Intent, error)
}

// StripeClient is the production Client backed by the Stripe API.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func (c *StripeClient) CreateIntent(amount int64) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	// retries of the same request must not double-charge
	params.SetIdempotencyKey(uuid.NewString())

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, err
	}
	return fromStripe(pi), nil
}

func (c *StripeClient) GetIntent(id string) (Intent, error) {
	pi, err := c.api.PaymentIntents.Get(id, nil)
	if err != nil {
		return Intent{}, err
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) Intent {
	return Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Status:       string(pi.Status),
	}
}

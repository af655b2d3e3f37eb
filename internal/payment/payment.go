package payment

// Intent mirrors the fields the storefront and checkout care about from a
// Stripe payment intent.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Status       string `json:"status"`
}

// StatusSucceeded is Stripe's terminal success status for a payment intent.
const StatusSucceeded = "succeeded"

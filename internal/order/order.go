package order

// Status is the fulfillment state of an order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from s to next. Setting
// the same status again is a no-op, not an error, so the admin screen can
// save without changing state.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered || next == StatusCancelled
	}
	return false
}

// Item is one purchased product line. Price is the per-unit price locked in
// at add-to-cart time.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// ShippingInfo is the recipient block captured at checkout. Street, city,
// state and zip stay empty on local pickup orders.
type ShippingInfo struct {
	FullName string `json:"fullName"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Order struct {
	ID             int          `json:"orderId"`
	UserID         *int         `json:"userId,omitempty"`
	Items          []Item       `json:"items"`
	Shipping       ShippingInfo `json:"shipping"`
	ShippingMethod string       `json:"shippingMethod"`
	ShippingCost   float64      `json:"shippingCost"`
	PaymentMethod  string       `json:"paymentMethod"`
	Status         Status       `json:"orderStatus"`
	TrackingNumber string       `json:"trackingNumber,omitempty"`
	CreatedAt      string       `json:"createdAt"`
	ShippedAt      *string      `json:"shippedAt,omitempty"`
}

// Total is the grand total: locked-in item prices plus the shipping cost.
func (o Order) Total() float64 {
	sum := o.ShippingCost
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

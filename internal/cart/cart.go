package cart

// Line is one product in a cart. Price and the shipping dimensions are
// captured from the product at add-to-cart time; checkout charges the
// captured price even if the catalog price changes afterwards.
type Line struct {
	ProductID       int     `json:"productId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	LocalPickupOnly bool    `json:"localPickupOnly"`
	Weight          float64 `json:"weight"`
	Length          float64 `json:"length"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
}

// Cart is a snapshot of a session's cart.
type Cart struct {
	Lines []Line `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// RequiresLocalPickup reports whether any line restricts the whole cart to
// local pickup.
func (c Cart) RequiresLocalPickup() bool {
	for _, l := range c.Lines {
		if l.LocalPickupOnly {
			return true
		}
	}
	return false
}

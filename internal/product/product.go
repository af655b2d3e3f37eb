package product

// Product represents an item sold by the farm stand. Price is in dollars;
// weight is ounces and dimensions are inches, as expected by the
// shipping-rate provider. Archived products stay in the catalog for order
// history but are hidden from the public store.
type Product struct {
	ID              int     `json:"productId"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Stock           int     `json:"stock"`
	ImageURL        string  `json:"imageURL"`
	Category        string  `json:"category,omitempty"`
	LocalPickupOnly bool    `json:"localPickupOnly"`
	DisplayOrder    int     `json:"displayOrder"`
	Weight          float64 `json:"weight"`
	Length          float64 `json:"length"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	IsArchived      bool    `json:"isArchived"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
}

package shipping

// Address is the destination quoted against.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.Zip != ""
}

// Item is a cart line in the shape the rate provider expects.
type Item struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Weight    float64 `json:"weight"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// Rate is a single quoted shipping option. Field names follow the provider's
// wire format, which the storefront reads as-is.
type Rate struct {
	RateID       string  `json:"rate_id"`
	Carrier      string  `json:"carrier"`
	Service      string  `json:"service"`
	Rate         float64 `json:"rate"`
	DeliveryDays int     `json:"delivery_days,omitempty"`
}

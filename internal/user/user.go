package user

// User is a customer or administrator account. PasswordHash and the pending
// verification code never leave the package through JSON.
type User struct {
	ID               int    `json:"id"`
	Email            string `json:"email"`
	PasswordHash     string `json:"-"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Street           string `json:"street"`
	City             string `json:"city"`
	State            string `json:"state"`
	Zip              string `json:"zip"`
	IsAdmin          bool   `json:"isAdmin"`
	MarketingOptIn   bool   `json:"marketingOptIn"`
	SmsAlertOptIn    bool   `json:"smsAlertOptIn"`
	IsVerified       bool   `json:"isVerified"`
	VerificationCode string `json:"-"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

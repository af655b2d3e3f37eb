package user

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Benhoward2000/howard-farm/internal/mailer"
)

const (
	bcryptCost      = 10
	resetTokenTTL   = 30 * time.Minute
	resetPurpose    = "password-reset"
	resetTokenIssue = "howard-farm"
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// Service implements the account lifecycle: registration with email
// verification, authentication, profile updates and password management.
type Service struct {
	repo        Repository
	mail        mailer.Sender
	resetSecret []byte
	frontendURL string
}

func NewService(repo Repository, mail mailer.Sender, resetSecret []byte, frontendURL string) *Service {
	return &Service{repo: repo, mail: mail, resetSecret: resetSecret, frontendURL: frontendURL}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register creates an unverified account and emails the 6-digit verification
// code. The password must satisfy the strength policy.
func (s *Service) Register(email, password, name, phone string, marketingOptIn bool) (User, error) {
	if !IsStrongPassword(password) {
		return User{}, ErrWeakPassword
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, err
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		return User{}, err
	}

	created, err := s.repo.Create(User{
		Email:            email,
		PasswordHash:     string(hash),
		Name:             name,
		Phone:            phone,
		MarketingOptIn:   marketingOptIn,
		IsVerified:       false,
		VerificationCode: code,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return User{}, err
	}

	body := fmt.Sprintf("<p>Your 6-digit verification code is: <strong>%s</strong></p>", code)
	if err := s.mail.Send(email, "Verify your account", body); err != nil {
		log.Printf("verification email to %s failed: %v", email, err)
	}

	return created, nil
}

// Authenticate checks the password against the stored bcrypt hash. Failures
// are collapsed into ErrInvalidCredentials so nothing leaks about which part
// was wrong.
func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

// VerifyCode confirms the emailed 6-digit code and marks the account
// verified.
func (s *Service) VerifyCode(email, code string) error {
	return s.repo.Verify(email, code)
}

// ChangePassword requires the current password before accepting a new one
// meeting the strength policy.
func (s *Service) ChangePassword(id int, oldPassword, newPassword string) error {
	if !IsStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(id, string(hash))
}

// UpdateProfile replaces the account's contact and address fields.
func (s *Service) UpdateProfile(id int, update User) (User, error) {
	return s.repo.Update(id, update)
}

// SetSmsAlertOptIn toggles the admin-only SMS order-alert preference. The
// repository enforces the admin restriction as well.
func (s *Service) SetSmsAlertOptIn(id int, optIn bool) error {
	return s.repo.SetSmsAlertOptIn(id, optIn)
}

// RequestPasswordReset emails a signed expiring reset link. The caller always
// gets a generic answer so email addresses cannot be enumerated.
func (s *Service) RequestPasswordReset(email string) {
	if _, err := s.repo.GetByEmail(email); err != nil {
		return
	}

	claims := jwt.MapClaims{
		"sub":     email,
		"iss":     resetTokenIssue,
		"purpose": resetPurpose,
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.resetSecret)
	if err != nil {
		log.Printf("reset token for %s failed: %v", email, err)
		return
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, signed)
	body := fmt.Sprintf(`<p>We received a request to reset your password.</p><p><a href="%s">Reset your password</a> (the link expires in 30 minutes).</p><p>If you didn't ask for this, you can ignore this email.</p>`, link)
	if err := s.mail.Send(email, "Reset your password", body); err != nil {
		log.Printf("reset email to %s failed: %v", email, err)
	}
}

// ResetPassword validates the signed token and sets the new password.
func (s *Service) ResetPassword(token, newPassword string) error {
	if !IsStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.resetSecret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidResetToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != resetPurpose {
		return ErrInvalidResetToken
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return ErrInvalidResetToken
	}

	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(u.ID, string(hash))
}

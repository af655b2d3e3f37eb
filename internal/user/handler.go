package user

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	auth := app.Group("/api/auth")
	auth.Post("/login", h.login)
	auth.Post("/register", h.register)
	auth.Post("/verify-code", h.verifyCode)
	auth.Post("/logout", h.logout)
	auth.Get("/me", h.me)
	auth.Post("/request-password-reset", h.requestPasswordReset)
	auth.Post("/reset-password", h.resetPassword)
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	account := app.Group("/api/auth/account", RequireUser)
	account.Post("/changepassword", h.changePassword)
	account.Post("/update", h.updateAccount)
	account.Put("/alerts/optin", RequireAdmin, h.setSmsAlertOptIn)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	sess, err := SessionFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	StoreInSession(sess, u)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "Login successful", "user": u})
}

type registerRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	MarketingOptIn bool   `json:"marketingOptIn"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required fields"})
	}

	_, err := h.service.Register(payload.Email, payload.Password, payload.Name, payload.Phone, payload.MarketingOptIn)
	if err != nil {
		switch err {
		case ErrWeakPassword:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Weak password."})
		case ErrEmailExists:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email already registered"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	return c.JSON(fiber.Map{"message": "Verification code sent to your email."})
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *Handler) verifyCode(c *fiber.Ctx) error {
	payload := new(verifyCodeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.VerifyCode(payload.Email, payload.Code); err != nil {
		if err == ErrInvalidCode {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid verification code."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "Email verified successfully."})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	sess, err := SessionFromCtx(c)
	if err != nil {
		return c.SendStatus(fiber.StatusOK)
	}
	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Logout failed"})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) me(c *fiber.Ctx) error {
	su, err := CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not logged in"})
	}

	u, err := h.service.GetByID(su.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	return c.JSON(u)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) changePassword(c *fiber.Ctx) error {
	su, err := CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	payload := new(changePasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.ChangePassword(su.ID, payload.OldPassword, payload.NewPassword); err != nil {
		switch err {
		case ErrWeakPassword:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Weak password."})
		case ErrInvalidCredentials:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Old password is incorrect."})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

type accountUpdateRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	MarketingOptIn bool   `json:"marketingOptIn"`
	SmsAlertOptIn  *bool  `json:"smsAlertOptIn,omitempty"`
}

func (h *Handler) updateAccount(c *fiber.Ctx) error {
	su, err := CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	payload := new(accountUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.UpdateProfile(su.ID, User{
		Name:           payload.Name,
		Phone:          payload.Phone,
		Street:         payload.Street,
		City:           payload.City,
		State:          payload.State,
		Zip:            payload.Zip,
		MarketingOptIn: payload.MarketingOptIn,
	})
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	// only admins may change their own SMS alert preference
	if su.IsAdmin && payload.SmsAlertOptIn != nil {
		if err := h.service.SetSmsAlertOptIn(su.ID, *payload.SmsAlertOptIn); err == nil {
			updated.SmsAlertOptIn = *payload.SmsAlertOptIn
		}
	}

	// keep the session's display name in sync
	if sess, err := SessionFromCtx(c); err == nil {
		StoreInSession(sess, updated)
		if err := sess.Save(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	return c.JSON(fiber.Map{"message": "Account updated successfully", "user": updated})
}

type smsOptInRequest struct {
	SmsAlertOptIn bool `json:"smsAlertOptIn"`
}

func (h *Handler) setSmsAlertOptIn(c *fiber.Ctx) error {
	su, err := CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	payload := new(smsOptInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.SetSmsAlertOptIn(su.ID, payload.SmsAlertOptIn); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admins only"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "SMS alert opt-in updated", "smsAlertOptIn": payload.SmsAlertOptIn})
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

func (h *Handler) requestPasswordReset(c *fiber.Ctx) error {
	payload := new(passwordResetRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// always answer generically so addresses cannot be enumerated
	h.service.RequestPasswordReset(payload.Email)
	return c.JSON(fiber.Map{"message": "If that email exists, a reset link has been sent."})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) resetPassword(c *fiber.Ctx) error {
	payload := new(resetPasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.ResetPassword(payload.Token, payload.NewPassword); err != nil {
		switch err {
		case ErrWeakPassword:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Weak password."})
		case ErrInvalidResetToken:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid or expired reset link."})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}

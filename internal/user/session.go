package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys. Identity is carried server-side; the cookie holds only the
// opaque session id.
const (
	sessKeyUserID  = "userID"
	sessKeyEmail   = "userEmail"
	sessKeyName    = "userName"
	sessKeyIsAdmin = "isAdmin"
)

// SessionUser is the identity stored in the server-side session.
type SessionUser struct {
	ID      int
	Name    string
	Email   string
	IsAdmin bool
}

// SessionFromCtx returns the request's session, placed in locals by the
// session middleware in main.
func SessionFromCtx(c *fiber.Ctx) (*session.Session, error) {
	s, ok := c.Locals("session").(*session.Session)
	if !ok || s == nil {
		return nil, fiber.ErrUnauthorized
	}
	return s, nil
}

// CurrentUser extracts the logged-in identity from the session. It returns
// fiber.ErrUnauthorized when nobody is logged in.
func CurrentUser(c *fiber.Ctx) (SessionUser, error) {
	sess, err := SessionFromCtx(c)
	if err != nil {
		return SessionUser{}, err
	}

	id, ok := sess.Get(sessKeyUserID).(int)
	if !ok || id <= 0 {
		return SessionUser{}, fiber.ErrUnauthorized
	}

	su := SessionUser{ID: id}
	if v, ok := sess.Get(sessKeyName).(string); ok {
		su.Name = v
	}
	if v, ok := sess.Get(sessKeyEmail).(string); ok {
		su.Email = v
	}
	if v, ok := sess.Get(sessKeyIsAdmin).(bool); ok {
		su.IsAdmin = v
	}
	return su, nil
}

// StoreInSession records the user's identity on the session after login.
func StoreInSession(sess *session.Session, u User) {
	sess.Set(sessKeyUserID, u.ID)
	sess.Set(sessKeyEmail, u.Email)
	sess.Set(sessKeyName, u.Name)
	sess.Set(sessKeyIsAdmin, u.IsAdmin)
}

// RequireUser is a middleware that rejects requests without a logged-in
// session.
func RequireUser(c *fiber.Ctx) error {
	if _, err := CurrentUser(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	return c.Next()
}

// RequireAdmin rejects requests unless the session belongs to an
// administrator.
func RequireAdmin(c *fiber.Ctx) error {
	su, err := CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	if !su.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admins only"})
	}
	return c.Next()
}

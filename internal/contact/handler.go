package contact

import (
	"fmt"
	"html"

	"github.com/gofiber/fiber/v2"

	"github.com/Benhoward2000/howard-farm/internal/mailer"
)

// Handler relays the storefront contact form to the farm inbox.
type Handler struct {
	mail mailer.Sender
	to   string
}

func NewHandler(mail mailer.Sender, to string) *Handler {
	return &Handler{mail: mail, to: to}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/contact", h.submit)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(contactRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name, email and message are required"})
	}

	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s (%s)</p><p>%s</p>",
		html.EscapeString(payload.Name),
		html.EscapeString(payload.Email),
		html.EscapeString(payload.Message),
	)
	if err := h.mail.Send(h.to, "Contact form: "+payload.Name, body); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Unable to send message"})
	}

	return c.JSON(fiber.Map{"message": "Message sent. We'll get back to you soon."})
}

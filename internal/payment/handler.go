package payment

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/create-payment-intent", h.createIntent)
}

type createIntentRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) createIntent(c *fiber.Ctx) error {
	payload := new(createIntentRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	intent, err := h.service.CreateIntent(payload.Amount)
	if err != nil {
		if err == ErrInvalidAmount {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "amount must be positive"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Unable to create payment intent"})
	}

	return c.JSON(fiber.Map{
		"id":           intent.ID,
		"clientSecret": intent.ClientSecret,
	})
}

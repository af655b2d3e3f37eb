package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Benhoward2000/howard-farm/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterProtectedRoutes mounts the customer order history.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/orders", user.RequireUser, h.listMine)
}

// RegisterAdminRoutes mounts the back-office order screens. The router is
// expected to already require an admin.
func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.listAll)
	router.Put("/orders/:id<[0-9]+>", h.updateStatus)
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	u, err := user.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not logged in"})
	}
	return c.JSON(h.service.ListByUser(u.ID, u.Email))
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	return c.JSON(h.service.ListAll())
}

type updateStatusRequest struct {
	OrderStatus    string `json:"orderStatus"`
	TrackingNumber string `json:"trackingNumber"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.UpdateStatus(id, Status(payload.OrderStatus), payload.TrackingNumber)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		case ErrInvalidStatus, ErrInvalidTransition:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}
	return c.JSON(updated)
}

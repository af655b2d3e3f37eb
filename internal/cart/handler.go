package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Benhoward2000/howard-farm/internal/user"
)

// Handler exposes the session cart. Guests get a cart too: the cart is keyed
// by the opaque session id, no login required.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/cart", h.getCart)
	app.Post("/api/cart/items", h.addItem)
	app.Delete("/api/cart/items/:productId<[0-9]+>", h.removeItem)
	app.Delete("/api/cart/items/:productId<[0-9]+>/all", h.removeLine)
	app.Delete("/api/cart", h.clearCart)
}

type cartResponse struct {
	Items               []Line  `json:"items"`
	Subtotal            float64 `json:"subtotal"`
	RequiresLocalPickup bool    `json:"requiresLocalPickup"`
}

func toResponse(c Cart) cartResponse {
	return cartResponse{
		Items:               c.Lines,
		Subtotal:            c.Subtotal(),
		RequiresLocalPickup: c.RequiresLocalPickup(),
	}
}

// cartID ties the cart to the server-side session and makes sure the session
// cookie is issued on the first mutation.
func cartID(c *fiber.Ctx, save bool) (string, error) {
	sess, err := user.SessionFromCtx(c)
	if err != nil {
		return "", err
	}
	id := sess.ID()
	if save {
		if err := sess.Save(); err != nil {
			return "", err
		}
	}
	return id, nil
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	id, err := cartID(c, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(toResponse(h.service.Get(id)))
}

type addItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	if payload.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be positive"})
	}

	id, err := cartID(c, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	updated, err := h.service.Add(id, payload.ProductID, payload.Quantity)
	if err != nil {
		switch err {
		case ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
		case ErrOutOfStock:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Product is out of stock"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	return c.JSON(toResponse(updated))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	id, err := cartID(c, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(toResponse(h.service.Remove(id, productID)))
}

func (h *Handler) removeLine(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}

	id, err := cartID(c, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(toResponse(h.service.RemoveAll(id, productID)))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	id, err := cartID(c, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	h.service.Clear(id)
	return c.SendStatus(fiber.StatusNoContent)
}

package shipping

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Benhoward2000/howard-farm/internal/cart"
	"github.com/Benhoward2000/howard-farm/internal/user"
)

// CartReader is the slice of the cart service the rate endpoint needs.
type CartReader interface {
	Get(cartID string) cart.Cart
}

type Handler struct {
	service *Service
	carts   CartReader
}

func NewHandler(s *Service, carts CartReader) *Handler {
	return &Handler{service: s, carts: carts}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/shipping/rates", h.getRates)
}

type ratesRequest struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

func (h *Handler) getRates(c *fiber.Ctx) error {
	payload := new(ratesRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	sess, err := user.SessionFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	crt := h.carts.Get(sess.ID())
	if crt.IsEmpty() || crt.RequiresLocalPickup() {
		return c.JSON([]Rate{})
	}

	addr := Address{Street: payload.Street, City: payload.City, State: payload.State, Zip: payload.Zip}
	rates, err := h.service.Quote(c.Context(), addr, ItemsFromCart(crt))
	if err != nil {
		if err == ErrIncompleteAddress {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Shipping address is incomplete"})
		}
		// a rate outage should not block checkout, the storefront falls back
		// to local pickup
		log.Printf("shipping: rate lookup failed: %v", err)
		return c.JSON([]Rate{})
	}
	return c.JSON(rates)
}

// ItemsFromCart converts cart lines into the provider's parcel shape.
func ItemsFromCart(c cart.Cart) []Item {
	items := make([]Item, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, Item{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Weight:    l.Weight,
			Length:    l.Length,
			Width:     l.Width,
			Height:    l.Height,
		})
	}
	return items
}

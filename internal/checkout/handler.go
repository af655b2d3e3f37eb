package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Benhoward2000/howard-farm/internal/order"
	"github.com/Benhoward2000/howard-farm/internal/payment"
	"github.com/Benhoward2000/howard-farm/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/checkout", h.submit)
}

type checkoutRequest struct {
	ShippingInfo    order.ShippingInfo `json:"shippingInfo"`
	SelectedRateID  string             `json:"selectedRateId"`
	PaymentMethod   string             `json:"paymentMethod"`
	PaymentIntentID string             `json:"paymentIntentId"`
}

// submit places the order. The storefront reads failures from the error
// field of the response body.
func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess, err := user.SessionFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	req := Request{
		Shipping:        payload.ShippingInfo,
		SelectedRateID:  payload.SelectedRateID,
		PaymentMethod:   payload.PaymentMethod,
		PaymentIntentID: payload.PaymentIntentID,
	}
	if su, err := user.CurrentUser(c); err == nil {
		req.UserID = &su.ID
	}

	created, err := h.service.Submit(c.Context(), sess.ID(), req)
	if err != nil {
		return h.submitError(c, err)
	}

	return c.JSON(created)
}

func (h *Handler) submitError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrUnknownRate),
		errors.Is(err, ErrMissingContact),
		errors.Is(err, ErrIncompleteShipping),
		errors.Is(err, ErrPaymentMethod):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrPaymentRequired),
		errors.Is(err, payment.ErrNotSucceeded),
		errors.Is(err, payment.ErrAmountChanged):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "Payment was not completed"})
	case errors.Is(err, order.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "One or more items just sold out"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unable to place order"})
	}
}

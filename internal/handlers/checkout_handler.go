package handlers

import (
	"log"
	"strings"

	"manis/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles order submission. Totals in the response are the
// server-derived ones; anything the client computed is ignored.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout route with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// HandleCheckout submits the session cart, or one batch of a mixed cart,
// as a new order.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	session, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	order, err := h.service.Submit(c.Context(), session, req)
	if err != nil {
		log.Printf("Error submitting checkout for session %s: %v", session, err)
		switch {
		case strings.Contains(err.Error(), "no longer available"):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case strings.Contains(err.Error(), "failed to create order"):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not create order",
				"error":   err.Error(),
			})
		default:
			// Empty cart, bad batch selection, delivery-time rejections.
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

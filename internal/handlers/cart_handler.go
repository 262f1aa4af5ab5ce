package handlers

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"manis/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/split", h.HandleGetSplit)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:identity", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:identity", h.HandleRemoveItem)
	cartRoutes.Delete("/products/:productId", h.HandleRemoveAllByProduct)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// sessionID extracts the customer session key carried on every cart
// request. Carts are keyed by this value in the store.
func sessionID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Get("X-Session-ID"))
	if id == "" {
		return "", fmt.Errorf("X-Session-ID header is required")
	}
	return id, nil
}

// itemIdentity decodes the :identity path parameter; identities contain
// "::" and may contain spaces from the custom message, so they arrive
// URL-encoded.
func itemIdentity(c *fiber.Ctx) (string, error) {
	identity, err := url.PathUnescape(c.Params("identity"))
	if err != nil || identity == "" {
		return "", fmt.Errorf("invalid item identity")
	}
	return identity, nil
}

// HandleGetCart returns the session's current cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	session, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	crt, err := h.service.Load(c.Context(), session)
	if err != nil {
		log.Printf("Error loading cart for session %s: %v", session, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(crt)
}

// HandleGetSplit returns the partitioned view of the cart: instant and
// pre-order groups with their subtotals, plus the mixed predicate that
// tells the client whether checkout must branch into the split flow.
func (h *CartHandler) HandleGetSplit(c *fiber.Ctx) error {
	session, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	split, mixed, err := h.service.Split(c.Context(), session)
	if err != nil {
		log.Printf("Error splitting cart for session %s: %v", session, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not split cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"instant":  split.Instant,
		"preorder": split.Preorder,
		"is_mixed": mixed,
	})
}

// AddItemRequest represents the request body for adding a cart line.
type AddItemRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	CustomMessage string `json:"custom_message" validate:"omitempty,max=200"`
}

// HandleAddItem adds units of a product to the session cart, merging with
// an existing line of the same identity.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	session, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
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

	crt, err := h.service.AddItem(c.Context(), session, req.ProductID, req.Quantity, req.CustomMessage)
	if err != nil {
		log.Printf("Error adding item to cart for session %s: %v", session, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		if strings.Contains(err.Error(), "not available") || strings.Contains(err.Error(), "requires a custom message") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(crt)
}

// UpdateQuantityRequest represents the request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity overwrites a line's quantity; zero or negative
// removes the line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	session, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	identity, err := itemIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	crt, err := h.service.UpdateQuantity(c.Context(), session, identity, req.Quantity)
	if err != nil {
		log.Printf("Error updating quantity for session %s: %v", session, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(crt)
}

// HandleRemoveItem deletes a single line by identity.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	session, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	identity, err := itemIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	crt, err := h.service.RemoveItem(c.Context(), session, identity)
	if err != nil {
		log.Printf("Error removing item for session %s: %v", session, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(crt)
}

// HandleRemoveAllByProduct deletes every message variant of a product.
func (h *CartHandler) HandleRemoveAllByProduct(c *fiber.Ctx) error {
	session, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	crt, err := h.service.RemoveAllByProduct(c.Context(), session, c.Params("productId"))
	if err != nil {
		log.Printf("Error removing product lines for session %s: %v", session, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(crt)
}

// HandleClearCart empties the session cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	session, err := sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.Clear(c.Context(), session); err != nil {
		log.Printf("Error clearing cart for session %s: %v", session, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

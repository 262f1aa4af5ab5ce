package handlers

import (
	"log"
	"strings"

	"manis/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles the fee-settings routes on the operations
// dashboard.
type SettingsHandler struct {
	service  *services.SettingsService
	validate *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the settings routes with the Fiber app.
func (h *SettingsHandler) RegisterRoutes(router fiber.Router) {
	settingsRoutes := router.Group("/settings")
	settingsRoutes.Get("/fees", h.HandleGetFees)
	settingsRoutes.Put("/fees", h.HandleUpdateFees)
}

// HandleGetFees returns the fee amounts checkout currently charges,
// falling back to the static defaults when no row is stored.
func (h *SettingsHandler) HandleGetFees(c *fiber.Ctx) error {
	fees := h.service.GetFeeSettings()
	return c.JSON(fiber.Map{
		"delivery_fee": fees.DeliveryFee.StringFixed(2),
		"fragile_fee":  fees.FragileFee.StringFixed(2),
	})
}

// UpdateFeesRequest represents the request body for a fee update.
type UpdateFeesRequest struct {
	DeliveryFee string `json:"delivery_fee" validate:"required"`
	FragileFee  string `json:"fragile_fee" validate:"required"`
}

// HandleUpdateFees persists new fee amounts.
func (h *SettingsHandler) HandleUpdateFees(c *fiber.Ctx) error {
	var req UpdateFeesRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-fees request body: %v", err)
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

	settings, err := h.service.UpdateFees(req.DeliveryFee, req.FragileFee)
	if err != nil {
		log.Printf("Error updating fee settings: %v", err)
		if strings.Contains(err.Error(), "invalid") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update fee settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}

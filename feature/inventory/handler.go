package inventory

import (
	"traceability/core/errs"
	"traceability/core/logger"
	"traceability/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = models.View{}
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/inventory", h.HandleQuery)
}

// HandleQuery lists units, optionally filtered.
// @Summary Query Inventory
// @Description Lists every unit ordered by id. The optional filter matches, case-sensitively, anywhere in the batch label, origin serial, local serial, client name or order reference.
// @Tags inventory
// @Produce json
// @Param q query string false "Substring filter"
// @Success 200 {object} map[string]interface{} "count and units"
// @Failure 503 {object} map[string]string "Store Unavailable"
// @Router /inventory [get]
func (h *Handler) HandleQuery(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	filter := c.Query("q")

	units, err := h.service.Query(c.Context(), filter)
	if err != nil {
		l.Error("Inventory query failed", zap.Error(err))
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"count": len(units),
		"units": units,
	})
}

package maintenance

import (
	"traceability/core/errs"
	"traceability/core/logger"
	"traceability/feature/maintenance/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for maintenance.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the maintenance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/maintenance")
	group.Post("/reset", h.HandleReset)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleReset wipes the store.
// @Summary Reset System
// @Description Irreversibly discards every unit, model and client and recreates the empty schema.
// @Tags maintenance
// @Produce json
// @Success 200 {object} map[string]string "Reset"
// @Failure 503 {object} map[string]string "Store Unavailable"
// @Router /maintenance/reset [post]
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Warn("System reset requested", zap.String("ip", c.IP()))

	if err := h.service.Reset(c.Context()); err != nil {
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "reset"})
}

// HandleSchemaCheck compares the live schema with the models.
// @Summary Check Schema
// @Description Reports missing tables, missing columns and column type mismatches. A mismatch requires a reset.
// @Tags maintenance
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /maintenance/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Schema mismatch detected")
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally creates the archive bucket.
// @Summary Check Storage
// @Description Checks that the workbook archive bucket exists. Optionally creates it.
// @Tags maintenance
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 400 {object} map[string]string "Storage Disabled"
// @Router /maintenance/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStorage(c.Context(), c.Query("fix") == "true")
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

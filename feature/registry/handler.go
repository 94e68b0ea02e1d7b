package registry

import (
	"strings"

	"traceability/core/errs"
	"traceability/core/logger"
	"traceability/core/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the reference registries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequest is the body of a registration.
type RegisterRequest struct {
	Name string `json:"name" validate:"notblank"`
}

// RegisterRoutes registers the registry routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/registry")
	group.Post("/:kind", h.HandleRegister)
	group.Get("/:kind", h.HandleList)
}

// HandleRegister adds a model or client name.
// @Summary Register Name
// @Description Adds a unique model or client name. A name already present is rejected with 409 and the registry is left unchanged.
// @Tags registry
// @Accept json
// @Produce json
// @Param kind path string true "models or clients"
// @Param body body RegisterRequest true "Name to register"
// @Success 201 {object} map[string]string "Created"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 409 {object} map[string]string "Duplicate Name"
// @Router /registry/{kind} [post]
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	kind, err := ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.Register(c.Context(), kind, req.Name); err != nil {
		l.Warn("Registration rejected", zap.String("kind", string(kind)), zap.Error(err))
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"kind": kind,
		"name": strings.TrimSpace(req.Name),
	})
}

// HandleList lists the model or client names.
// @Summary List Names
// @Description Lists the registered model or client names, sorted by name.
// @Tags registry
// @Produce json
// @Param kind path string true "models or clients"
// @Success 200 {object} map[string]interface{} "Names"
// @Router /registry/{kind} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	kind, err := ParseKind(c.Params("kind"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	names, err := h.service.List(c.Context(), kind)
	if err != nil {
		l.Error("Registry listing failed", zap.String("kind", string(kind)), zap.Error(err))
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"kind":  kind,
		"names": names,
	})
}

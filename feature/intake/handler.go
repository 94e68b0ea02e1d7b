package intake

import (
	"errors"

	"traceability/core/errs"
	"traceability/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for intake.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the intake routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/intake", h.HandleIntake)
}

// HandleIntake registers a batch of received units.
// @Summary Intake Batch
// @Description Creates one Available unit per non-empty line of serials. Serials already in the inventory are skipped and only counted.
// @Tags intake
// @Accept json
// @Produce json
// @Param body body Request true "Intake batch"
// @Success 200 {object} map[string]interface{} "inserted, total and message"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 503 {object} map[string]string "Store Unavailable"
// @Router /intake [post]
func (h *Handler) HandleIntake(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := h.service.Process(c.Context(), req)
	if err != nil {
		if !errors.Is(err, errs.ErrValidation) {
			l.Error("Intake failed", zap.Error(err))
		}
		body := fiber.Map{"error": err.Error()}
		if res != nil {
			body["inserted"] = res.Inserted
			body["total"] = res.Total
		}
		return c.Status(errs.StatusCode(err)).JSON(body)
	}

	return c.JSON(fiber.Map{
		"inserted": res.Inserted,
		"total":    res.Total,
		"message":  res.Message(),
	})
}

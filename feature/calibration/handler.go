package calibration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"traceability/core/errs"
	"traceability/core/logger"
	"traceability/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for calibration.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Response is the report of a calibration batch.
type Response struct {
	*reconcile.Result
	Message string `json:"message"`
}

// RegisterRoutes registers the calibration routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/calibration")
	group.Get("/template", h.HandleTemplate)
	group.Post("/", h.HandleUpload)
	group.Post("/preview", h.HandlePreview)
	group.Post("/rows", h.HandleRows)
	group.Get("/archive", h.HandleArchive)
}

// HandleTemplate downloads the empty calibration workbook.
// @Summary Download Template
// @Description Returns an xlsx workbook holding only the calibration header row.
// @Tags calibration
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Template workbook"
// @Router /calibration/template [get]
func (h *Handler) HandleTemplate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var buf bytes.Buffer
	if err := h.service.WriteTemplate(&buf); err != nil {
		l.Error("Template generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", h.service.Config().TemplateFile))
	return c.Send(buf.Bytes())
}

// HandleUpload reconciles a filled workbook.
// @Summary Upload Calibration Workbook
// @Description Matches every row of the workbook against Available units and finalizes the matches with the client, the order and the measurements. Unknown or already finalized serials are reported in unmatched.
// @Tags calibration
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Filled calibration workbook"
// @Param client_name formData string true "Client name"
// @Param order_reference formData string true "Order reference"
// @Param dry_run formData boolean false "Evaluate without writing"
// @Success 200 {object} Response "Batch report"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 503 {object} map[string]interface{} "Store Unavailable"
// @Router /calibration [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	return h.upload(c, reconcile.Options{DryRun: c.FormValue("dry_run") == "true"})
}

// HandlePreview evaluates a filled workbook without writing.
// @Summary Preview Calibration Workbook
// @Description Runs the same matching as an upload without finalizing any unit or archiving the workbook.
// @Tags calibration
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Filled calibration workbook"
// @Param client_name formData string true "Client name"
// @Param order_reference formData string true "Order reference"
// @Success 200 {object} Response "Batch report"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /calibration/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	return h.upload(c, reconcile.Options{DryRun: true})
}

func (h *Handler) upload(c *fiber.Ctx, opts reconcile.Options) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := h.service.ReconcileUpload(c.Context(), Upload{
		ClientName:     c.FormValue("client_name"),
		OrderReference: c.FormValue("order_reference"),
		Filename:       fh.Filename,
		Data:           data,
	}, opts)
	return h.respond(c, res, err)
}

// HandleRows reconciles a JSON batch.
// @Summary Submit Calibration Rows
// @Description Same as a workbook upload, with rows given as JSON objects keyed by column name.
// @Tags calibration
// @Accept json
// @Produce json
// @Param body body RowsRequest true "Calibration batch"
// @Param dry_run query boolean false "Evaluate without writing"
// @Success 200 {object} Response "Batch report"
// @Failure 400 {object} map[string]string "Validation Error"
// @Router /calibration/rows [post]
func (h *Handler) HandleRows(c *fiber.Ctx) error {
	// Numbers are kept verbatim so long numeric serials are not rounded through float64.
	var req RowsRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := h.service.ReconcileRows(c.Context(), req, reconcile.Options{DryRun: c.QueryBool("dry_run")})
	return h.respond(c, res, err)
}

// HandleArchive lists archived workbooks.
// @Summary List Archived Workbooks
// @Description Lists the workbooks archived in object storage, optionally for one order.
// @Tags calibration
// @Produce json
// @Param order query string false "Order reference"
// @Success 200 {object} map[string]interface{} "Archived objects"
// @Failure 400 {object} map[string]string "Archive Disabled"
// @Router /calibration/archive [get]
func (h *Handler) HandleArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	objects, err := h.service.ListArchive(c.Context(), c.Query("order"))
	if err != nil {
		l.Warn("Archive listing failed", zap.Error(err))
		return c.Status(errs.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"count":   len(objects),
		"objects": objects,
	})
}

func (h *Handler) respond(c *fiber.Ctx, res *reconcile.Result, err error) error {
	l := logger.WithRayID(h.service.logger, c)

	if err != nil {
		body := fiber.Map{"error": err.Error()}
		if res != nil {
			l.Error("Calibration batch aborted", zap.Error(err))
			body["success_count"] = res.Succeeded
			body["unmatched"] = res.Unmatched
		}
		return c.Status(errs.StatusCode(err)).JSON(body)
	}

	if len(res.Unmatched) > 0 {
		l.Warn("Calibration batch partially matched",
			zap.String("order", res.OrderReference),
			zap.Strings("unmatched", res.Unmatched),
		)
	}
	return c.JSON(Response{Result: res, Message: res.Message()})
}

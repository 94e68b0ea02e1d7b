package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Requests counts HTTP requests by route and status.
	Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "traceability",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "status"})

	// IntakeUnits counts units submitted to intake, by result (inserted, skipped).
	IntakeUnits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "traceability",
		Name:      "intake_units_total",
		Help:      "Serials submitted to intake, by result.",
	}, []string{"result"})

	// CalibrationRows counts reconciled rows, by result (finalized, unmatched).
	CalibrationRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "traceability",
		Name:      "calibration_rows_total",
		Help:      "Calibration rows reconciled, by result.",
	}, []string{"result"})

	// Registry is the registry every collector above is registered on.
	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(Requests, IntakeUnits, CalibrationRows)
}

// New returns a middleware counting requests on the route pattern, not the raw path.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		Requests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

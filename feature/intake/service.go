package intake

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"traceability/core/errs"
	"traceability/core/middleware/metrics"
	"traceability/core/validation"
	"traceability/feature/inventory"
	"traceability/feature/inventory/models"

	"go.uber.org/zap"
)

// Request is one intake batch.
type Request struct {
	BatchLabel      string `json:"batch_label" validate:"notblank,max=191"`
	ImportReference string `json:"import_reference"`
	ModelName       string `json:"model_name" validate:"notblank"`
	// Serials is newline-delimited; blank lines are ignored.
	Serials string `json:"serials" validate:"notblank"`
}

// Result reports how many submitted serials became new units.
type Result struct {
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

// Message renders the operator-facing summary.
func (r *Result) Message() string {
	return fmt.Sprintf("%d of %d units registered", r.Inserted, r.Total)
}

// Service is the Intake Processor.
type Service struct {
	store  *inventory.Store
	logger *zap.Logger
}

// NewService creates a new intake service.
func NewService(store *inventory.Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// SplitSerials returns the trimmed, non-empty lines of raw in order.
func SplitSerials(raw string) []string {
	lines := strings.Split(raw, "\n")
	serials := make([]string, 0, len(lines))
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			serials = append(serials, s)
		}
	}
	return serials
}

// Process creates one Available unit per serial. Serials already in the inventory are
// skipped without failing the batch. Missing batch label, model or serials reject the
// whole request before anything is written.
func (s *Service) Process(ctx context.Context, req Request) (*Result, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	serials := SplitSerials(req.Serials)
	for i, serial := range serials {
		if utf8.RuneCountInString(serial) > models.MaxKeyLength {
			return nil, errs.Validation("serial %d exceeds %d characters", i+1, models.MaxKeyLength)
		}
	}
	res := &Result{Total: len(serials)}

	err := s.store.Acquire(ctx, func(st *inventory.Store) error {
		for _, serial := range serials {
			ok, err := st.Insert(ctx, &models.Unit{
				BatchLabel:      strings.TrimSpace(req.BatchLabel),
				ImportReference: strings.TrimSpace(req.ImportReference),
				ModelName:       strings.TrimSpace(req.ModelName),
				SerialOrigin:    serial,
			})
			if err != nil {
				return err
			}
			if ok {
				res.Inserted++
			}
		}
		return nil
	})

	metrics.IntakeUnits.WithLabelValues("inserted").Add(float64(res.Inserted))
	if err != nil {
		s.logger.Error("Intake aborted", zap.String("batch", req.BatchLabel), zap.Int("inserted", res.Inserted), zap.Error(err))
		return res, err
	}
	metrics.IntakeUnits.WithLabelValues("skipped").Add(float64(res.Total - res.Inserted))

	s.logger.Info("Intake processed",
		zap.String("batch", req.BatchLabel),
		zap.String("model", req.ModelName),
		zap.Int("inserted", res.Inserted),
		zap.Int("total", res.Total),
	)
	return res, nil
}

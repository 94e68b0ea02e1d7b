package calibration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"traceability/core/errs"
	"traceability/core/logger"
	"traceability/core/middleware/metrics"
	"traceability/core/reconcile"
	"traceability/feature/inventory"

	"go.uber.org/zap"
)

// Upload is a filled calibration workbook bound to a client order.
type Upload struct {
	ClientName     string
	OrderReference string
	Filename       string
	Data           []byte
}

// RowsRequest is a calibration batch submitted as JSON. Row keys are column names
// (origin_serial, max_load, ...) or workbook headers.
type RowsRequest struct {
	ClientName     string           `json:"client_name"`
	OrderReference string           `json:"order_reference"`
	Rows           []map[string]any `json:"rows"`
}

// Service runs calibration batches against the inventory.
type Service struct {
	store   *inventory.Store
	archive *Archive
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a calibration service. archive may be nil when storage is disabled.
func NewService(store *inventory.Store, archive *Archive, cfg Config, logger *zap.Logger) *Service {
	return &Service{store: store, archive: archive, cfg: cfg, logger: logger, now: time.Now}
}

// Config returns the workbook contract in use.
func (s *Service) Config() Config {
	return s.cfg
}

// WriteTemplate writes the empty calibration workbook.
func (s *Service) WriteTemplate(w io.Writer) error {
	return WriteTemplate(w, s.cfg.SheetName)
}

// ReconcileUpload parses a workbook and reconciles it. Live uploads that pass the gate are
// archived first; an archive failure is logged and does not block reconciliation.
func (s *Service) ReconcileUpload(ctx context.Context, u Upload, opts reconcile.Options) (*reconcile.Result, error) {
	batch, err := s.batchFromWorkbook(u.Data, u.ClientName, u.OrderReference)
	if err != nil {
		return nil, err
	}
	if err := reconcile.Validate(batch); err != nil {
		return nil, err
	}

	if s.archive != nil && !opts.DryRun {
		key := s.archive.Key(batch.OrderReference, u.Filename, s.now())
		if err := s.archive.Put(ctx, key, u.Data); err != nil {
			s.logger.Warn("Workbook not archived", zap.String("key", key), zap.Error(err))
		} else {
			s.logger.Info("Workbook archived", zap.String("key", key), zap.Int("bytes", len(u.Data)))
		}
	}

	return s.run(ctx, batch, opts)
}

// ReconcileRows reconciles a JSON batch.
func (s *Service) ReconcileRows(ctx context.Context, req RowsRequest, opts reconcile.Options) (*reconcile.Result, error) {
	batch := &reconcile.Batch{
		ClientName:     req.ClientName,
		OrderReference: req.OrderReference,
		Columns:        []reconcile.Column{},
		Rows:           make([]reconcile.Row, 0, len(req.Rows)),
	}

	seen := make(map[reconcile.Column]bool)
	for i, raw := range req.Rows {
		cells := make(map[reconcile.Column]any, len(raw))
		// A column name beats its header, which beats the legacy header.
		ranks := make(map[reconcile.Column]keyRank, len(raw))
		keys := make(map[reconcile.Column]string, len(raw))
		for key, v := range raw {
			col, rank, ok := columnForKey(key)
			if !ok {
				continue
			}
			if prev, dup := ranks[col]; dup {
				if rank == prev {
					a, b := keys[col], key
					if b < a {
						a, b = b, a
					}
					return nil, errs.Validation("row %d: %q and %q both set %s", i+1, a, b, col)
				}
				if rank > prev {
					continue
				}
			}
			cells[col], ranks[col], keys[col] = v, rank, key
			if !seen[col] {
				seen[col] = true
				batch.Columns = append(batch.Columns, col)
			}
		}
		batch.Rows = append(batch.Rows, reconcile.Row{Line: i + 1, Cells: cells})
	}

	return s.run(ctx, batch, opts)
}

// Replay reconciles a workbook previously archived under key.
func (s *Service) Replay(ctx context.Context, key, clientName, orderReference string, opts reconcile.Options) (*reconcile.Result, error) {
	if s.archive == nil {
		return nil, errs.Validation("workbook archive is disabled")
	}
	data, err := s.archive.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	batch, err := s.batchFromWorkbook(data, clientName, orderReference)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, batch, opts)
}

// ListArchive lists archived workbooks, optionally for one order.
func (s *Service) ListArchive(ctx context.Context, orderReference string) ([]ArchivedObject, error) {
	if s.archive == nil {
		return nil, errs.Validation("workbook archive is disabled")
	}
	return s.archive.List(ctx, orderReference)
}

func (s *Service) batchFromWorkbook(data []byte, clientName, orderReference string) (*reconcile.Batch, error) {
	sheet, err := ParseWorkbook(bytes.NewReader(data), s.cfg.SheetName)
	if err != nil {
		return nil, err
	}
	if sheet.Name != s.cfg.SheetName {
		s.logger.Debug("Configured sheet absent, read first sheet", zap.String("sheet", sheet.Name))
	}
	return &reconcile.Batch{
		ClientName:     clientName,
		OrderReference: orderReference,
		Columns:        sheet.Columns,
		Rows:           sheet.Rows,
	}, nil
}

func (s *Service) run(ctx context.Context, batch *reconcile.Batch, opts reconcile.Options) (*reconcile.Result, error) {
	l := logger.WithOrder(s.logger, batch.OrderReference, batch.ClientName)

	var res *reconcile.Result
	err := s.store.Acquire(ctx, func(st *inventory.Store) error {
		var err error
		res, err = reconcile.Run(ctx, st, batch, opts)
		return err
	})

	if res != nil && !opts.DryRun {
		metrics.CalibrationRows.WithLabelValues(string(reconcile.OutcomeFinalized)).Add(float64(res.Succeeded))
		metrics.CalibrationRows.WithLabelValues(string(reconcile.OutcomeUnmatched)).Add(float64(len(res.Unmatched)))
	}

	if err != nil {
		if res != nil {
			l.Error("Calibration aborted",
				zap.Int("finalized", res.Succeeded),
				zap.Error(err),
			)
			return res, fmt.Errorf("calibration of order %s aborted: %w", res.OrderReference, err)
		}
		return nil, err
	}

	l.Info("Calibration processed",
		zap.Int("rows", len(batch.Rows)),
		zap.Int("finalized", res.Succeeded),
		zap.Strings("unmatched", res.Unmatched),
		zap.Bool("dry_run", res.DryRun),
	)
	return res, nil
}

// keyRank orders the spellings a JSON row key may use for one column.
type keyRank int

const (
	rankColumn keyRank = iota
	rankHeader
	rankLegacyHeader
)

func columnForKey(key string) (reconcile.Column, keyRank, bool) {
	for _, col := range reconcile.Columns() {
		if string(col) == key {
			return col, rankColumn, true
		}
	}
	trimmed := strings.TrimSpace(key)
	cols := reconcile.Columns()
	for i, h := range Headers {
		if h == trimmed {
			return cols[i], rankHeader, true
		}
	}
	for i, h := range legacyHeaders {
		if h == trimmed {
			return cols[i], rankLegacyHeader, true
		}
	}
	return "", 0, false
}

package reconcile

import (
	"context"
	"fmt"
	"strings"

	"traceability/core/errs"
	"traceability/core/utils"
)

// Validate checks the batch-level preconditions. A failing batch is never processed.
func Validate(b *Batch) error {
	if strings.TrimSpace(b.OrderReference) == "" {
		return errs.Validation("order reference is required")
	}
	if strings.TrimSpace(b.ClientName) == "" {
		return errs.Validation("client name is required")
	}
	if !b.HasColumn(ColOriginSerial) {
		return errs.Validation("batch has no %s column", ColOriginSerial)
	}
	return nil
}

// Run reconciles every row of the batch against the target, in order.
//
// Rows are independent: an unmatched row is recorded and processing continues, and
// rows already finalized stay finalized if a later row fails. A store error aborts the
// remaining rows; the partial result is returned together with the error.
func Run(ctx context.Context, target Target, b *Batch, opts Options) (*Result, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}

	a := Assignment{
		ClientName:     strings.TrimSpace(b.ClientName),
		OrderReference: strings.TrimSpace(b.OrderReference),
	}
	res := &Result{
		OrderReference: a.OrderReference,
		ClientName:     a.ClientName,
		Unmatched:      []string{},
		DryRun:         opts.DryRun,
		Rows:           make([]RowResult, 0, len(b.Rows)),
	}

	// In dry-run the store never leaves Available, so serials matched earlier in the batch are tracked here.
	consumed := make(map[string]struct{})

	for _, row := range b.Rows {
		serial := cell(row, ColOriginSerial)
		if serial == "" {
			res.Blank++
			res.Rows = append(res.Rows, RowResult{Line: row.Line, Outcome: OutcomeBlank})
			continue
		}

		available, err := target.IsAvailable(ctx, serial)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", row.Line, err)
		}
		if _, seen := consumed[serial]; seen {
			available = false
		}
		if !available {
			res.unmatched(row.Line, serial)
			continue
		}

		a.Fields = ExtractFields(row)

		if opts.DryRun {
			consumed[serial] = struct{}{}
			res.finalized(row.Line, serial)
			continue
		}

		ok, err := target.Finalize(ctx, serial, a)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", row.Line, err)
		}
		if !ok {
			// Lost the compare-and-swap: someone else finalized it in between.
			res.unmatched(row.Line, serial)
			continue
		}
		res.finalized(row.Line, serial)
	}

	return res, nil
}

// ExtractFields normalizes the optional cells of a row. Missing cells become "".
func ExtractFields(row Row) Fields {
	return Fields{
		LocalSerial:       cell(row, ColLocalSerial),
		ReadingBefore:     cell(row, ColReadingBefore),
		ReadingAfter:      cell(row, ColReadingAfter),
		CornerTopLeft:     cell(row, ColCornerTopLeft),
		CornerTopRight:    cell(row, ColCornerTopRight),
		CornerBottomLeft:  cell(row, ColCornerBottomLeft),
		CornerBottomRight: cell(row, ColCornerBottomRight),
		MaxLoad:           cell(row, ColMaxLoad),
		ZeroReading:       cell(row, ColZeroReading),
	}
}

func cell(row Row, col Column) string {
	if row.Cells == nil {
		return ""
	}
	return strings.TrimSpace(utils.ToString(row.Cells[col]))
}

func (r *Result) finalized(line int, serial string) {
	r.Succeeded++
	r.Rows = append(r.Rows, RowResult{Line: line, OriginSerial: serial, Outcome: OutcomeFinalized})
}

func (r *Result) unmatched(line int, serial string) {
	r.Unmatched = append(r.Unmatched, serial)
	r.Rows = append(r.Rows, RowResult{Line: line, OriginSerial: serial, Outcome: OutcomeUnmatched})
}

// Err returns an ErrNotEligible wrap listing the unmatched serials, or nil when every
// non-blank row was finalized.
func (r *Result) Err() error {
	if len(r.Unmatched) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", errs.ErrNotEligible, strings.Join(r.Unmatched, ", "))
}

// Message renders the operator-facing summary of the batch.
func (r *Result) Message() string {
	var b strings.Builder
	verb := "calibrated and linked to order"
	if r.DryRun {
		verb = "would be calibrated and linked to order"
	}
	fmt.Fprintf(&b, "%d units %s %s", r.Succeeded, verb, r.OrderReference)
	if len(r.Unmatched) > 0 {
		fmt.Fprintf(&b, "; serials not in stock or already finalized: %s", strings.Join(r.Unmatched, ", "))
	}
	return b.String()
}

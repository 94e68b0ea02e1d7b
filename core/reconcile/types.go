package reconcile

// Column identifies one field of a calibration row.
type Column string

const (
	ColOriginSerial      Column = "origin_serial"
	ColLocalSerial       Column = "local_serial"
	ColReadingBefore     Column = "reading_before"
	ColReadingAfter      Column = "reading_after"
	ColCornerTopLeft     Column = "corner_top_left"
	ColCornerTopRight    Column = "corner_top_right"
	ColCornerBottomLeft  Column = "corner_bottom_left"
	ColCornerBottomRight Column = "corner_bottom_right"
	ColMaxLoad           Column = "max_load"
	ColZeroReading       Column = "zero_reading"
)

// MeasurementColumns lists the optional columns in template order.
var MeasurementColumns = []Column{
	ColLocalSerial,
	ColReadingBefore,
	ColReadingAfter,
	ColCornerTopLeft,
	ColCornerTopRight,
	ColCornerBottomLeft,
	ColCornerBottomRight,
	ColMaxLoad,
	ColZeroReading,
}

// Columns lists every column a calibration batch can carry, origin serial first.
func Columns() []Column {
	return append([]Column{ColOriginSerial}, MeasurementColumns...)
}

// Row is one measurement line as submitted. Cells hold raw values (string, number or nil);
// a column absent from the map is treated like an empty cell.
type Row struct {
	// Line is the 1-based position of the row in its source document.
	Line  int            `json:"line"`
	Cells map[Column]any `json:"cells"`
}

// Batch is a calibration submission bound to one client and one commercial order.
type Batch struct {
	OrderReference string
	ClientName     string
	// Columns is the header the source document exposed.
	Columns []Column
	Rows    []Row
}

// HasColumn reports whether the batch header exposes col.
func (b *Batch) HasColumn(col Column) bool {
	for _, c := range b.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Fields holds the measurement values written on finalization.
// Every field is an explicit value; missing cells become "".
type Fields struct {
	LocalSerial       string `json:"serial_local"`
	ReadingBefore     string `json:"reading_before"`
	ReadingAfter      string `json:"reading_after"`
	CornerTopLeft     string `json:"corner_deviation_top_left"`
	CornerTopRight    string `json:"corner_deviation_top_right"`
	CornerBottomLeft  string `json:"corner_deviation_bottom_left"`
	CornerBottomRight string `json:"corner_deviation_bottom_right"`
	MaxLoad           string `json:"max_load"`
	ZeroReading       string `json:"zero_reading"`
}

// Assignment is everything applied to a unit in the Available -> Finalized transition.
type Assignment struct {
	ClientName     string
	OrderReference string
	Fields         Fields
}

// Outcome is the per-row result of a reconciliation.
type Outcome string

const (
	// OutcomeFinalized means the unit was (or, in dry-run, would be) finalized.
	OutcomeFinalized Outcome = "finalized"
	// OutcomeUnmatched means the serial is unknown or no longer Available.
	OutcomeUnmatched Outcome = "unmatched"
	// OutcomeBlank means the origin serial was empty and the row was dropped.
	OutcomeBlank Outcome = "blank"
)

// RowResult reports what happened to one submitted row.
type RowResult struct {
	Line         int     `json:"line"`
	OriginSerial string  `json:"origin_serial"`
	Outcome      Outcome `json:"outcome"`
}

// Options controls reconcile behavior.
type Options struct {
	// DryRun evaluates every row against the store without mutating it.
	DryRun bool
}

// Result is the aggregate report of a reconciliation.
type Result struct {
	OrderReference string `json:"order_reference"`
	ClientName     string `json:"client_name"`
	// Succeeded counts finalized units.
	Succeeded int `json:"success_count"`
	// Unmatched lists origin serials that were unknown or already finalized, in row order.
	Unmatched []string `json:"unmatched"`
	// Blank counts rows dropped for an empty origin serial.
	Blank  int         `json:"blank_rows"`
	DryRun bool        `json:"dry_run"`
	Rows   []RowResult `json:"rows"`
}

package models

import "strings"

const (
	// StatusAvailable marks a unit received by intake and not yet calibrated.
	StatusAvailable = "Available"
	// StatusFinalized marks a calibrated unit linked to a client order.
	StatusFinalized = "Finalized"
)

// MaxKeyLength bounds the indexed text columns (serial_origin, batch_label).
// 191 characters keep a utf8mb4 index within MySQL's key limit.
const MaxKeyLength = 191

// Unit is one physical device. Calibration columns stay NULL until finalization.
// Free-form operator text is stored as TEXT so any reading fits.
type Unit struct {
	ID              uint   `gorm:"primaryKey;column:id"`
	ImportReference string `gorm:"column:import_reference;type:text"`
	BatchLabel      string `gorm:"column:batch_label;type:varchar(191);index"`
	ModelName       string `gorm:"column:model_name;type:text"`
	SerialOrigin    string `gorm:"column:serial_origin;type:varchar(191);uniqueIndex;not null"`

	SerialLocal    *string `gorm:"column:serial_local;type:text"` // Not unique
	ClientName     *string `gorm:"column:client_name;type:text"`
	OrderReference *string `gorm:"column:order_reference;type:text"`

	ReadingBefore     *string `gorm:"column:reading_before;type:text"`
	ReadingAfter      *string `gorm:"column:reading_after;type:text"`
	CornerTopLeft     *string `gorm:"column:corner_deviation_top_left;type:text"`
	CornerTopRight    *string `gorm:"column:corner_deviation_top_right;type:text"`
	CornerBottomLeft  *string `gorm:"column:corner_deviation_bottom_left;type:text"`
	CornerBottomRight *string `gorm:"column:corner_deviation_bottom_right;type:text"`
	MaxLoad           *string `gorm:"column:max_load;type:text"`
	ZeroReading       *string `gorm:"column:zero_reading;type:text"`

	Status string `gorm:"column:status;type:varchar(20);not null;default:Available;index"`
}

func (Unit) TableName() string {
	return "units"
}

// View is the read projection of a unit, in display order.
type View struct {
	ImportReference   string `json:"import_reference"`
	BatchLabel        string `json:"batch_label"`
	ModelName         string `json:"model_name"`
	ClientName        string `json:"client_name"`
	OrderReference    string `json:"order_reference"`
	SerialOrigin      string `json:"serial_origin"`
	SerialLocal       string `json:"serial_local"`
	ReadingBefore     string `json:"reading_before"`
	ReadingAfter      string `json:"reading_after"`
	CornerTopLeft     string `json:"corner_deviation_top_left"`
	CornerTopRight    string `json:"corner_deviation_top_right"`
	CornerBottomLeft  string `json:"corner_deviation_bottom_left"`
	CornerBottomRight string `json:"corner_deviation_bottom_right"`
	MaxLoad           string `json:"max_load"`
	ZeroReading       string `json:"zero_reading"`
	Status            string `json:"status"`
}

// ViewColumns is the header of the read projection.
var ViewColumns = []string{
	"import_reference", "batch_label", "model_name", "client_name", "order_reference",
	"serial_origin", "serial_local", "reading_before", "reading_after",
	"corner_deviation_top_left", "corner_deviation_top_right",
	"corner_deviation_bottom_left", "corner_deviation_bottom_right",
	"max_load", "zero_reading", "status",
}

// View projects the unit. NULL columns render as "".
func (u Unit) View() View {
	return View{
		ImportReference:   u.ImportReference,
		BatchLabel:        u.BatchLabel,
		ModelName:         u.ModelName,
		ClientName:        deref(u.ClientName),
		OrderReference:    deref(u.OrderReference),
		SerialOrigin:      u.SerialOrigin,
		SerialLocal:       deref(u.SerialLocal),
		ReadingBefore:     deref(u.ReadingBefore),
		ReadingAfter:      deref(u.ReadingAfter),
		CornerTopLeft:     deref(u.CornerTopLeft),
		CornerTopRight:    deref(u.CornerTopRight),
		CornerBottomLeft:  deref(u.CornerBottomLeft),
		CornerBottomRight: deref(u.CornerBottomRight),
		MaxLoad:           deref(u.MaxLoad),
		ZeroReading:       deref(u.ZeroReading),
		Status:            u.Status,
	}
}

// Values returns the projection as a row aligned with ViewColumns.
func (v View) Values() []string {
	return []string{
		v.ImportReference, v.BatchLabel, v.ModelName, v.ClientName, v.OrderReference,
		v.SerialOrigin, v.SerialLocal, v.ReadingBefore, v.ReadingAfter,
		v.CornerTopLeft, v.CornerTopRight, v.CornerBottomLeft, v.CornerBottomRight,
		v.MaxLoad, v.ZeroReading, v.Status,
	}
}

// Matches reports whether filter is a case-sensitive substring of any searchable field.
func (v View) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	for _, f := range []string{v.BatchLabel, v.SerialOrigin, v.SerialLocal, v.ClientName, v.OrderReference} {
		if strings.Contains(f, filter) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

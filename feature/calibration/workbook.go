package calibration

import (
	"fmt"
	"io"
	"strings"

	"traceability/core/errs"
	"traceability/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of xlsx workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Headers lists the template header row, aligned with reconcile.Columns().
var Headers = []string{
	"Origin_Serial",
	"Local_Serial",
	"Reading_Before",
	"Reading_After",
	"Corner_Top_Left",
	"Corner_Top_Right",
	"Corner_Bottom_Left",
	"Corner_Bottom_Right",
	"Max_Load",
	"Zero",
}

// legacyHeaders are the headers of workbooks filled before the English template.
var legacyHeaders = []string{
	"Serial_China",
	"Novo_Serial_Brasil",
	"Valor_Antes",
	"Valor_Depois",
	"Exc_Sup_Esq",
	"Exc_Sup_Dir",
	"Exc_Inf_Esq",
	"Exc_Inf_Dir",
	"Carga_Max",
	"Zero",
}

var headerIndex = buildHeaderIndex()

func buildHeaderIndex() map[string]reconcile.Column {
	cols := reconcile.Columns()
	idx := make(map[string]reconcile.Column, 2*len(cols))
	for i, col := range cols {
		idx[Headers[i]] = col
		idx[legacyHeaders[i]] = col
	}
	return idx
}

// ColumnFor resolves a header cell to its column.
func ColumnFor(header string) (reconcile.Column, bool) {
	col, ok := headerIndex[strings.TrimSpace(header)]
	return col, ok
}

// Sheet is the content of a parsed calibration workbook.
type Sheet struct {
	// Name is the worksheet that was read.
	Name    string
	Columns []reconcile.Column
	Rows    []reconcile.Row
}

// WriteTemplate writes an empty workbook carrying only the header row.
func WriteTemplate(w io.Writer, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	last, _ := excelize.ColumnNumberToName(len(Headers))
	if err := f.SetColWidth(sheetName, "A", last, 20); err != nil {
		return err
	}

	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

// ParseWorkbook reads the calibration rows of an xlsx document.
//
// The named sheet is read, or the first sheet when it is absent. The first row is the
// header; unknown headers are ignored and rows whose cells are all empty are dropped.
// Cell values are raw, so numeric serials keep every digit.
func ParseWorkbook(r io.Reader, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.Validation("unreadable workbook: %v", err)
	}
	defer f.Close()

	name := sheetName
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errs.Validation("workbook has no sheets")
		}
		name = sheets[0]
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errs.Validation("unable to read sheet %s: %v", name, err)
	}

	sheet := &Sheet{Name: name, Columns: []reconcile.Column{}, Rows: []reconcile.Row{}}
	if len(rows) == 0 {
		return sheet, nil
	}

	// position -> column; first occurrence of a header wins.
	positions := make(map[int]reconcile.Column)
	seen := make(map[reconcile.Column]bool)
	for i, header := range rows[0] {
		col, ok := ColumnFor(header)
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		positions[i] = col
		sheet.Columns = append(sheet.Columns, col)
	}

	for i, raw := range rows[1:] {
		if blankRow(raw) {
			continue
		}
		cells := make(map[reconcile.Column]any, len(positions))
		for pos, col := range positions {
			if pos < len(raw) {
				cells[col] = strings.TrimSpace(raw[pos])
			}
		}
		sheet.Rows = append(sheet.Rows, reconcile.Row{Line: i + 2, Cells: cells})
	}

	return sheet, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package fetcher

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions selects the worksheet holding the export.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// SheetOptions maps a configured sheet to XLSXOptions. A sheet of that
// name wins; otherwise an integer selects a zero-based index.
func SheetOptions(sheet string) XLSXOptions {
	sheet = strings.TrimSpace(sheet)
	if n, err := strconv.Atoi(sheet); err == nil {
		return XLSXOptions{SheetIndex: n, SheetName: sheet}
	}
	return XLSXOptions{SheetName: sheet}
}

// ReadXLSX reads a worksheet and returns all rows, header included.
// Trailing empty rows are dropped.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, rowToStrings(row))
	}

	for len(rows) > 0 && blankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		if sheet, ok := f.Sheet[opts.SheetName]; ok {
			return sheet, nil
		}
		if n, err := strconv.Atoi(opts.SheetName); err != nil || n != opts.SheetIndex {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

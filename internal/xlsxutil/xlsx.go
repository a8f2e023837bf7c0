// Package xlsxutil parses the product table spreadsheet. It wraps excelize
// to isolate the external dependency and normalizes the header row so that
// "Código", "CODIGO", and "codigo " all resolve to the same column.
package xlsxutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Required column keys after header normalization.
const (
	colCode        = "codigo"
	colDescription = "descripcion"
	colPrice       = "precio"
)

var (
	ErrUnreadable    = errors.New("xlsxutil: unreadable spreadsheet")
	ErrNoSheet       = errors.New("xlsxutil: workbook has no sheets")
	ErrEmptySheet    = errors.New("xlsxutil: sheet has no header row")
	ErrMissingColumn = errors.New("xlsxutil: required column missing")
)

// Record is one raw product row. Values are cell strings as excelize
// renders them; numeric validation belongs to the caller.
type Record struct {
	Code        string
	Description string
	Price       string
}

// accentReplacer folds the accented vowels that occur in the expected
// Spanish headers.
var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
)

// Parse reads the first sheet of an .xlsx workbook and returns its product
// records. The header row must contain the Codigo, Descripcion, and Precio
// columns (case- and accent-insensitive). Rows with an empty code cell are
// skipped.
func Parse(data []byte) ([]Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, row := range rows[1:] {
		code := cell(row, columns[colCode])
		if code == "" {
			continue
		}
		records = append(records, Record{
			Code:        code,
			Description: cell(row, columns[colDescription]),
			Price:       cell(row, columns[colPrice]),
		})
	}
	return records, nil
}

// mapColumns resolves the required column indexes from the header row.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, 3)
	for i, name := range header {
		columns[NormalizeHeader(name)] = i
	}
	for _, required := range []string{colCode, colDescription, colPrice} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}
	return columns, nil
}

// NormalizeHeader lowercases, trims, and strips accents from a column name.
func NormalizeHeader(name string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// cell returns the trimmed cell at index i, or "" when the row is short.
// excelize omits trailing empty cells, so short rows are normal.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

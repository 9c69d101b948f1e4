// Package spreadsheet reads client lists out of uploaded workbooks.
//
// The first sheet of an .xlsx workbook (or the whole .csv file) must start
// with a header row holding a "Name" and an "Address" column, matched
// case-insensitively. Every following row with a non-empty name becomes one
// client row.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

const (
	columnName    = "name"
	columnAddress = "address"
)

// Parser implements ports.ClientSheetParser.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse picks the reader from the file extension. Unknown extensions are
// tried as .xlsx.
func (p *Parser) Parse(filename string, r io.Reader) ([]ports.ClientRow, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xls":
		return nil, fmt.Errorf("legacy .xls workbooks are not supported, save as .xlsx: %w", domain.ErrInvalidSpreadsheet)
	default:
		rows, err = readXLSX(r)
	}
	if err != nil {
		return nil, err
	}
	return toClientRows(rows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %v: %w", err, domain.ErrInvalidSpreadsheet)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", domain.ErrInvalidSpreadsheet)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %v: %w", sheets[0], err, domain.ErrInvalidSpreadsheet)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("csv line %d: %v: %w", pe.Line, pe.Err, domain.ErrInvalidSpreadsheet)
		}
		return nil, fmt.Errorf("read csv: %v: %w", err, domain.ErrInvalidSpreadsheet)
	}
	return rows, nil
}

func toClientRows(rows [][]string) ([]ports.ClientRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row: %w", domain.ErrInvalidSpreadsheet)
	}

	nameCol, addrCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case columnName:
			if nameCol < 0 {
				nameCol = i
			}
		case columnAddress:
			if addrCol < 0 {
				addrCol = i
			}
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("missing Name column: %w", domain.ErrInvalidSpreadsheet)
	}
	if addrCol < 0 {
		return nil, fmt.Errorf("missing Address column: %w", domain.ErrInvalidSpreadsheet)
	}

	out := make([]ports.ClientRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		out = append(out, ports.ClientRow{Name: name, Address: cell(row, addrCol)})
	}
	return out, nil
}

// cell returns the trimmed value at i; rows may be shorter than the header.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Package tabular decodes uploaded spreadsheet and CSV payloads into a
// header-plus-rows table. The contract is best-effort: any payload that
// cannot be decoded yields a ParseError and the caller mutates nothing.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseError reports an upload payload that could not be decoded.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Table is a decoded payload: the first row of the file as headers, every
// following row normalized to the header width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Decode parses a CSV or Excel payload by file extension. The first row
// is the header; a payload without one fails.
func Decode(filename string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return decodeCSV(filename, data)
	case ".xlsx", ".xls":
		// Legacy .xls payloads are attempted as OOXML; true BIFF files
		// fail the parse contract like any other malformed payload.
		return decodeExcel(filename, data)
	default:
		return nil, &ParseError{Filename: filename, Err: fmt.Errorf("unsupported file type %q", filepath.Ext(filename))}
	}
}

func decodeCSV(filename string, data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	return buildTable(filename, records)
}

func decodeExcel(filename string, data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Filename: filename, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	return buildTable(filename, rows)
}

func buildTable(filename string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, &ParseError{Filename: filename, Err: io.ErrUnexpectedEOF}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			return nil, &ParseError{Filename: filename, Err: fmt.Errorf("blank header in column %d", i+1)}
		}
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// Package bulk implements the bulk ingestion pipeline's pure stages:
// parsing tabular uploads into row records and classifying rows into
// uploadable questions with their category names.
package bulk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"quizbank/internal/errs"
)

// Row is one parsed data row: a mapping from column name to a typed cell
// value. Numeric cells are parsed as int64 or float64, everything else
// stays a string, and empty cells are absent from the map.
type Row map[string]any

// ParseCSV reads a delimited-text file whose first row names the columns.
// Inconsistent column counts or unreadable input fail the whole parse with
// a *errs.ParseError carrying the offending line; no partial results are
// returned.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []Row{}, nil
		}
		return nil, wrapCSVError(err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		rows = append(rows, buildRow(header, record))
	}
	return rows, nil
}

// ParseXLSX reads the first sheet of a workbook through the same row-record
// contract as ParseCSV. Trailing empty cells are tolerated because the
// workbook format drops them.
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &errs.ParseError{Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Row{}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &errs.ParseError{Err: err}
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for _, record := range records[1:] {
		if len(record) > len(header) {
			record = record[:len(header)]
		}
		rows = append(rows, buildRow(header, record))
	}
	return rows, nil
}

// buildRow maps column names onto typed cell values. record may be shorter
// than header; missing and empty cells stay absent.
func buildRow(header, record []string) Row {
	row := Row{}
	for i, name := range header {
		if name == "" || i >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[i])
		if cell == "" {
			continue
		}
		row[name] = typeCell(cell)
	}
	return row
}

// typeCell parses a cell the way loose tabular tooling does: integers and
// floats become numbers, everything else stays a string.
func typeCell(cell string) any {
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

func wrapCSVError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &errs.ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &errs.ParseError{Err: err}
}

// CellString renders a typed cell back to its text form.
func CellString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

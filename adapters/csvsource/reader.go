// Package csvsource implements the market data port over delimited text
// files.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"inmopanel/domain/market"
)

// TableData holds a raw delimited table: one header row plus data rows
type TableData struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named header, or -1
func (t *TableData) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadTable reads a delimited file into memory. Rows with a deviating field
// count are rejected by the csv reader, which surfaces as a read error.
func ReadTable(path string, delimiter rune) (*TableData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file %s has no header row", path)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	return &TableData{Headers: headers, Rows: records[1:]}, nil
}

// cell returns the trimmed value at the given column index, or "" when the
// column is absent
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFloat coerces a cell to float64, NaN for empty or unparsable values
func parseFloat(raw string) float64 {
	if raw == "" {
		return market.Missing()
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return market.Missing()
	}
	return value
}

// parseInt coerces a cell to int, reporting whether a usable value was
// present; integers have no missing sentinel like NaN
func parseInt(raw string) (int, bool) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

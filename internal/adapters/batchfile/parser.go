// Package batchfile turns uploaded CSV and Excel batch files into row
// records.
package batchfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bioportal/internal/adapters/upload"
	"bioportal/internal/core/domain"
)

const (
	MsgUnsupported = "Unsupported format. Use CSV or Excel."
	MsgEmpty       = "File is empty."
)

// Parse decodes a batch file by its extension. On error no table is
// returned: unsupported extensions and parser failures wrap
// domain.ErrUnsupportedFormat, files without data rows wrap
// domain.ErrEmptyInput.
func Parse(name string, data []byte) (*domain.Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch upload.Extension(name) {
	case "csv":
		rows, err = readCSV(data)
	case "xlsx":
		rows, err = readXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, MsgUnsupported)
	}
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}

	return buildTable(rows)
}

// Message returns the user-facing text for a Parse error.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEmptyInput):
		return MsgEmpty
	case errors.Is(err, domain.ErrUnsupportedFormat):
		msg := strings.TrimPrefix(err.Error(), domain.ErrUnsupportedFormat.Error()+": ")
		if msg == "" {
			return MsgUnsupported
		}
		return msg
	default:
		return err.Error()
	}
}

func readCSV(data []byte) ([][]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.ErrEmptyInput
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyInput
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return f.GetRows(sheets[0])
}

func buildTable(rows [][]string) (*domain.Table, error) {
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return nil, domain.ErrEmptyInput
	}

	columns := headerNames(rows[0])
	table := &domain.Table{Columns: columns}

	for i, row := range rows[1:] {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("%w: expected %d fields in line %d, saw %d",
				domain.ErrUnsupportedFormat, len(columns), i+2, len(row))
		}
		rec := make(domain.Record, len(columns))
		for j, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				rec[columns[j]] = cell
			}
		}
		table.Records = append(table.Records, rec)
	}

	if len(table.Records) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return table, nil
}

// headerNames cleans header cells: a leading BOM is dropped, blank headers
// become "Unnamed: <i>" and repeats get a ".<n>" suffix.
func headerNames(header []string) []string {
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = h + "." + strconv.Itoa(n+1)
		} else {
			seen[h] = 0
		}
		names[i] = h
	}
	return names
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

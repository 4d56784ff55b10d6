// Package loader reads spreadsheet and CSV files into the in-memory table
// model. Cell typing is auto-detected per field; the engine never sees raw
// file data.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

// CSVOptions configures CSV import.
type CSVOptions struct {
	// Delimiter is the field separator; comma when zero.
	Delimiter rune
	// HeaderRow is the zero-based index of the row holding column names.
	// Rows above it are skipped.
	HeaderRow int
}

// CSV reads delimited text into a table. The header row supplies column
// names with their original casing preserved; every following row becomes a
// typed row of the table.
func CSV(r io.Reader, opts CSVOptions) (*table.Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if opts.HeaderRow < 0 || opts.HeaderRow >= len(records) {
		return nil, fmt.Errorf("header row %d out of range: file has %d rows", opts.HeaderRow, len(records))
	}

	columns := records[opts.HeaderRow]
	t := &table.Table{Columns: columns}
	for _, record := range records[opts.HeaderRow+1:] {
		cells := make([]table.Cell, len(record))
		for i, field := range record {
			cells[i] = table.ParseCell(field)
		}
		t.Rows = append(t.Rows, table.NewRow(columns, cells))
	}
	return t, nil
}

// CSVFile opens and reads a CSV file.
func CSVFile(path string, opts CSVOptions) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return CSV(f, opts)
}

package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

// ExcelOptions configures workbook import.
type ExcelOptions struct {
	// Sheet selects the worksheet by name; the first sheet when empty.
	Sheet string
	// HeaderRow is the zero-based index of the row holding column names.
	HeaderRow int
}

// Excel reads one worksheet of an .xlsx workbook into a table.
func Excel(path string, opts ExcelOptions) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if opts.HeaderRow < 0 || opts.HeaderRow >= len(records) {
		return nil, fmt.Errorf("header row %d out of range: sheet %q has %d rows", opts.HeaderRow, sheet, len(records))
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

// SheetNames lists the worksheets of a workbook.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// Open loads a tabular file by extension: .xlsx/.xlsm as a workbook,
// everything else as CSV.
func Open(path string, opts ExcelOptions) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return Excel(path, opts)
	default:
		return CSVFile(path, CSVOptions{HeaderRow: opts.HeaderRow})
	}
}

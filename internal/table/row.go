package table

import "strings"

// Row is an ordered mapping from column name to cell value. Column names keep
// their original casing; Lookup matches case-insensitively.
type Row struct {
	columns []string
	byFold  map[string]int
	cells   []Cell
}

// NewRow builds a row from parallel column and cell slices. Missing trailing
// cells read as empty; extra cells are dropped.
func NewRow(columns []string, cells []Cell) Row {
	byFold := make(map[string]int, len(columns))
	vals := make([]Cell, len(columns))
	for i, name := range columns {
		byFold[strings.ToLower(name)] = i
		if i < len(cells) {
			vals[i] = cells[i]
		}
	}
	return Row{columns: columns, byFold: byFold, cells: vals}
}

// Lookup returns the cell for the named column, matching case-insensitively.
func (r Row) Lookup(name string) (Cell, bool) {
	i, ok := r.byFold[strings.ToLower(name)]
	if !ok {
		return Cell{}, false
	}
	return r.cells[i], true
}

// Columns returns the column names in their original order and casing.
func (r Row) Columns() []string {
	return r.columns
}

// Snapshot renders the row as a plain name→text mapping for reports.
func (r Row) Snapshot() map[string]string {
	snap := make(map[string]string, len(r.columns))
	for i, name := range r.columns {
		snap[name] = r.cells[i].String()
	}
	return snap
}

// Table is an ordered collection of rows sharing one header.
type Table struct {
	Columns []string
	Rows    []Row
}

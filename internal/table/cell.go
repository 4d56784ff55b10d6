// Package table holds the in-memory tabular model validated by rules: typed
// cells, rows with case-insensitive column lookup, and whole tables. Rows are
// read-only once constructed.
package table

import (
	"strconv"
	"strings"
)

// CellKind is the runtime type tag of a cell value.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellString
	CellBool
)

// Cell is a single typed cell value. Exactly one of the value fields is
// meaningful, selected by Kind.
type Cell struct {
	Kind CellKind
	Num  float64
	Str  string
	Bool bool
}

func Empty() Cell            { return Cell{Kind: CellEmpty} }
func Number(v float64) Cell  { return Cell{Kind: CellNumber, Num: v} }
func String(s string) Cell   { return Cell{Kind: CellString, Str: s} }
func Boolean(b bool) Cell    { return Cell{Kind: CellBool, Bool: b} }

// ParseCell auto-detects the type of a raw text field as loaders do: empty
// text becomes an empty cell, numeric text a number, everything else a
// string. Boolean-like words such as YES or TRUE stay strings here; their
// boolean-likeness is a comparison-time concern, not a load-time one.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Empty()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(f)
	}
	return String(trimmed)
}

func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case CellString:
		return c.Str
	case CellBool:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

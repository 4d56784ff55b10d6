// Package engine evaluates parsed rule expressions against table rows and
// aggregates the per-(rule,row) verdicts into a validation report.
package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

// ColumnNotFoundError is a row-scoped resolution failure: a referenced column
// has no case-insensitive match in the row's schema. It never aborts the
// validation of other rows or rules.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in row", e.Column)
}

// resolve turns an operand into a concrete cell value for one row. Literals
// resolve to themselves; column references are matched case-insensitively
// against the row's schema.
func resolve(op rule.Operand, row table.Row) (table.Cell, error) {
	switch o := op.(type) {
	case *rule.Literal:
		return o.Value, nil
	case *rule.ColumnRef:
		cell, ok := row.Lookup(o.Name)
		if !ok {
			return table.Cell{}, &ColumnNotFoundError{Column: o.Name}
		}
		return cell, nil
	default:
		return table.Cell{}, fmt.Errorf("unknown operand type %T", op)
	}
}

// resolveRight resolves the right-hand operand of a comparison. A bare word
// that matches no column is taken as its own string value, so JB_Property=YES
// reads naturally without quoting YES. The left side, which names the column
// under test, gets no such fallback.
func resolveRight(op rule.Operand, row table.Row) (table.Cell, error) {
	cell, err := resolve(op, row)
	if err == nil {
		return cell, nil
	}
	var notFound *ColumnNotFoundError
	if ref, ok := op.(*rule.ColumnRef); ok && errors.As(err, &notFound) {
		return table.String(ref.Name), nil
	}
	return table.Cell{}, err
}

// numeric reports the cell's numeric value if it has one, either natively or
// as number-shaped text.
func numeric(c table.Cell) (float64, bool) {
	switch c.Kind {
	case table.CellNumber:
		return c.Num, true
	case table.CellString:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.Str), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// booleanLike reports the cell's boolean value for boolean-like tokens:
// native booleans and the YES/NO/TRUE/FALSE word forms, case-insensitive.
func booleanLike(c table.Cell) (bool, bool) {
	switch c.Kind {
	case table.CellBool:
		return c.Bool, true
	case table.CellString:
		switch strings.ToUpper(strings.TrimSpace(c.Str)) {
		case "YES", "TRUE":
			return true, true
		case "NO", "FALSE":
			return false, true
		}
	}
	return false, false
}

// compare applies op to two resolved cells under the coercion policy:
// numeric when both sides are numeric, boolean when both sides are
// boolean-like, case-sensitive string equality otherwise. String operators
// always treat both sides as strings, case-insensitively, regardless of
// apparent numeric shape.
func compare(op rule.CompareOp, left, right table.Cell) (bool, error) {
	switch op {
	case rule.OpContains:
		return strings.Contains(fold(left), fold(right)), nil
	case rule.OpStartsWith:
		return strings.HasPrefix(fold(left), fold(right)), nil
	case rule.OpEndsWith:
		return strings.HasSuffix(fold(left), fold(right)), nil
	}

	ln, lNum := numeric(left)
	rn, rNum := numeric(right)

	switch op {
	case rule.OpGreater, rule.OpLess, rule.OpGreaterEqual, rule.OpLessEqual:
		if !lNum || !rNum {
			// Relational order is only defined for numbers; a non-numeric
			// side fails the comparison rather than erroring the row.
			return false, nil
		}
		switch op {
		case rule.OpGreater:
			return ln > rn, nil
		case rule.OpLess:
			return ln < rn, nil
		case rule.OpGreaterEqual:
			return ln >= rn, nil
		default:
			return ln <= rn, nil
		}

	case rule.OpEqual, rule.OpNotEqual:
		eq := equalCells(left, right, ln, rn, lNum, rNum)
		if op == rule.OpNotEqual {
			return !eq, nil
		}
		return eq, nil

	default:
		return false, fmt.Errorf("unknown comparison operator %q", op)
	}
}

func equalCells(left, right table.Cell, ln, rn float64, lNum, rNum bool) bool {
	if lNum && rNum {
		return ln == rn
	}
	if lb, lOK := booleanLike(left); lOK {
		if rb, rOK := booleanLike(right); rOK {
			return lb == rb
		}
	}
	return left.String() == right.String()
}

func fold(c table.Cell) string {
	return strings.ToLower(c.String())
}

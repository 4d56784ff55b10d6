package engine

import (
	"fmt"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

// Outcome is the verdict of evaluating one expression against one row.
// FailingExpr is the sub-condition that decided a failed verdict, for
// diagnostics; it is nil when Passed is true.
type Outcome struct {
	Passed      bool
	FailingExpr rule.Expr
}

// Evaluate walks the expression tree for one row. AND and OR short-circuit:
// the second operand is not evaluated once the first decides the result, so
// a missing column on a logically irrelevant branch raises no error. The
// only error condition is resolution failure (*ColumnNotFoundError), scoped
// to this (expression, row) pair.
func Evaluate(expr rule.Expr, row table.Row) (Outcome, error) {
	switch e := expr.(type) {
	case *rule.Comparison:
		left, err := resolve(e.Left, row)
		if err != nil {
			return Outcome{}, err
		}
		right, err := resolveRight(e.Right, row)
		if err != nil {
			return Outcome{}, err
		}
		ok, err := compare(e.Op, left, right)
		if err != nil {
			return Outcome{}, err
		}
		if !ok {
			return Outcome{Passed: false, FailingExpr: e}, nil
		}
		return Outcome{Passed: true}, nil

	case *rule.LogicalAnd:
		left, lerr := Evaluate(e.Left, row)
		if lerr == nil && !left.Passed {
			return left, nil
		}
		right, rerr := Evaluate(e.Right, row)
		if lerr != nil {
			// The right side alone can still decide the AND: a false right
			// makes the left branch irrelevant, error included.
			if rerr == nil && !right.Passed {
				return right, nil
			}
			return Outcome{}, lerr
		}
		return right, rerr

	case *rule.LogicalOr:
		left, lerr := Evaluate(e.Left, row)
		if lerr == nil && left.Passed {
			return left, nil
		}
		right, rerr := Evaluate(e.Right, row)
		if lerr != nil {
			if rerr == nil && right.Passed {
				return right, nil
			}
			return Outcome{}, lerr
		}
		if rerr != nil {
			return Outcome{}, rerr
		}
		if right.Passed {
			return right, nil
		}
		// Both sides failed; report the whole disjunction.
		return Outcome{Passed: false, FailingExpr: e}, nil

	case *rule.LogicalNot:
		inner, err := Evaluate(e.Inner, row)
		if err != nil {
			return Outcome{}, err
		}
		if inner.Passed {
			return Outcome{Passed: false, FailingExpr: e}, nil
		}
		return Outcome{Passed: true}, nil

	default:
		return Outcome{}, fmt.Errorf("unknown expression type %T", expr)
	}
}

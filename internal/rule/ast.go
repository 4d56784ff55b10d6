package rule

import (
	"fmt"
	"strings"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

// Expr is a node of a parsed rule expression tree. Trees are immutable after
// construction and owned exclusively by the Rule containing them.
type Expr interface {
	// String re-serializes the subtree; used for failing-subexpression
	// diagnostics. The result is semantically equivalent to the source,
	// not necessarily textually identical.
	String() string

	exprNode()
}

// Operand is either a literal value or a reference to a column. The
// classification is made once, at parse time, by syntax alone.
type Operand interface {
	String() string

	operandNode()
}

// Comparison applies a single comparison operator to two operands.
type Comparison struct {
	Left  Operand
	Op    CompareOp
	Right Operand
}

// LogicalAnd is a short-circuiting conjunction.
type LogicalAnd struct {
	Left  Expr
	Right Expr
}

// LogicalOr is a short-circuiting disjunction.
type LogicalOr struct {
	Left  Expr
	Right Expr
}

// LogicalNot inverts its inner expression.
type LogicalNot struct {
	Inner Expr
}

func (*Comparison) exprNode() {}
func (*LogicalAnd) exprNode() {}
func (*LogicalOr) exprNode()  {}
func (*LogicalNot) exprNode() {}

func (c *Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

func (a *LogicalAnd) String() string {
	return fmt.Sprintf("(%s AND %s)", a.Left, a.Right)
}

func (o *LogicalOr) String() string {
	return fmt.Sprintf("(%s OR %s)", o.Left, o.Right)
}

func (n *LogicalNot) String() string {
	return fmt.Sprintf("NOT (%s)", n.Inner)
}

// Literal is a number or string fixed at parse time.
type Literal struct {
	Value table.Cell
}

// ColumnRef names a column to be resolved against a row at evaluation time.
// Matching is case-insensitive and deferred: parsing succeeds independent of
// which table the rule will later run against.
type ColumnRef struct {
	Name string
}

func (*Literal) operandNode()   {}
func (*ColumnRef) operandNode() {}

func (l *Literal) String() string {
	if l.Value.Kind == table.CellString {
		return `"` + strings.ReplaceAll(l.Value.Str, `"`, `\"`) + `"`
	}
	return l.Value.String()
}

func (r *ColumnRef) String() string {
	return r.Name
}

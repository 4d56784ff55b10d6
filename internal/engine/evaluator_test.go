package engine

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

func makeRow(t *testing.T, cells map[string]table.Cell) table.Row {
	t.Helper()
	columns := make([]string, 0, len(cells))
	for name := range cells {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	values := make([]table.Cell, len(columns))
	for i, name := range columns {
		values[i] = cells[name]
	}
	return table.NewRow(columns, values)
}

func evalRule(t *testing.T, source string, cells map[string]table.Cell) (Outcome, error) {
	t.Helper()
	expr, err := rule.Parse(source)
	require.NoError(t, err)
	return Evaluate(expr, makeRow(t, cells))
}

func TestEvaluate_Comparisons(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		cells  map[string]table.Cell
		passed bool
	}{
		{
			name:   "numeric greater than",
			source: "Current>2",
			cells:  map[string]table.Cell{"Current": table.Number(2.5)},
			passed: true,
		},
		{
			name:   "numeric greater than fails on boundary",
			source: "Ratio>5",
			cells:  map[string]table.Cell{"Ratio": table.Number(5.0)},
			passed: false,
		},
		{
			name:   "greater equal passes on boundary",
			source: "Ratio>=5",
			cells:  map[string]table.Cell{"Ratio": table.Number(5.0)},
			passed: true,
		},
		{
			name:   "number-shaped text compares numerically",
			source: "Current>2",
			cells:  map[string]table.Cell{"Current": table.String("2.5")},
			passed: true,
		},
		{
			name:   "column against column",
			source: "Starting_Current>Rated_Current",
			cells: map[string]table.Cell{
				"Starting_Current": table.Number(12.5),
				"Rated_Current":    table.Number(2.5),
			},
			passed: true,
		},
		{
			name:   "case-insensitive column match",
			source: "current>2",
			cells:  map[string]table.Cell{"Current": table.Number(2.5)},
			passed: true,
		},
		{
			name:   "accented column name",
			source: "Voltagé >= 400",
			cells:  map[string]table.Cell{"Voltagé": table.Number(415)},
			passed: true,
		},
		{
			name:   "relational on non-numeric text fails rather than erroring",
			source: "Status > 2",
			cells:  map[string]table.Cell{"Status": table.String("Open")},
			passed: false,
		},
		{
			name:   "equality is case-sensitive for plain strings",
			source: "Status = 'open'",
			cells:  map[string]table.Cell{"Status": table.String("Open")},
			passed: false,
		},
		{
			name:   "boolean-like equality crosses word forms",
			source: "JB_Property = TRUE",
			cells:  map[string]table.Cell{"JB_Property": table.String("yes")},
			passed: true,
		},
		{
			name:   "bare right-hand word reads as its own value",
			source: "JB_Property = YES",
			cells:  map[string]table.Cell{"JB_Property": table.String("YES")},
			passed: true,
		},
		{
			name:   "not equal on numbers",
			source: "Current != 2",
			cells:  map[string]table.Cell{"Current": table.Number(2.0)},
			passed: false,
		},
		{
			name:   "numeric equality across representations",
			source: "Current = 2.50",
			cells:  map[string]table.Cell{"Current": table.String("2.5")},
			passed: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := evalRule(t, tc.source, tc.cells)
			require.NoError(t, err)
			assert.Equal(t, tc.passed, outcome.Passed)
		})
	}
}

func TestEvaluate_StringOperators(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		cells  map[string]table.Cell
		passed bool
	}{
		{
			name:   "contains match",
			source: `voltage contains "cc_r"`,
			cells:  map[string]table.Cell{"voltage": table.String("abc_cc_r_123")},
			passed: true,
		},
		{
			name:   "contains miss",
			source: `voltage contains "cc_r"`,
			cells:  map[string]table.Cell{"voltage": table.String("abc")},
			passed: false,
		},
		{
			name:   "contains is case-insensitive",
			source: `voltage contains "CC_R"`,
			cells:  map[string]table.Cell{"voltage": table.String("abc_cc_r_123")},
			passed: true,
		},
		{
			name:   "starts_with",
			source: `Tag starts_with "JB"`,
			cells:  map[string]table.Cell{"Tag": table.String("jb-104")},
			passed: true,
		},
		{
			name:   "ends_with",
			source: `Tag ends_with "104"`,
			cells:  map[string]table.Cell{"Tag": table.String("JB-104")},
			passed: true,
		},
		{
			name:   "string operator on numeric cell uses its text form",
			source: `Current contains "2.5"`,
			cells:  map[string]table.Cell{"Current": table.Number(2.5)},
			passed: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := evalRule(t, tc.source, tc.cells)
			require.NoError(t, err)
			assert.Equal(t, tc.passed, outcome.Passed)
		})
	}
}

func TestEvaluate_Logical(t *testing.T) {
	cells := map[string]table.Cell{
		"Current":     table.Number(2.5),
		"JB_Property": table.String("YES"),
		"Ratio":       table.Number(5.0),
	}

	testCases := []struct {
		name   string
		source string
		passed bool
	}{
		{name: "AND both true", source: "(Current>2) AND (JB_Property=YES)", passed: true},
		{name: "AND left false", source: "(Current>3) AND (JB_Property=YES)", passed: false},
		{name: "AND right false", source: "(Current>2) AND (Ratio>5)", passed: false},
		{name: "OR left true", source: "(Current>2) OR (Ratio>5)", passed: true},
		{name: "OR right true", source: "(Current>3) OR (Ratio>=5)", passed: true},
		{name: "OR both false", source: "(Current>3) OR (Ratio>5)", passed: false},
		{name: "NOT inverts", source: "NOT (Ratio>5)", passed: true},
		{name: "NOT of true fails", source: "NOT (Current>2)", passed: false},
		{name: "in list", source: "Ratio in (4, 5, 6)", passed: true},
		{name: "between inclusive", source: "Current between 2.5 AND 10", passed: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := evalRule(t, tc.source, cells)
			require.NoError(t, err)
			assert.Equal(t, tc.passed, outcome.Passed)
		})
	}
}

func TestEvaluate_FailingExpr(t *testing.T) {
	t.Run("failed comparison names itself", func(t *testing.T) {
		outcome, err := evalRule(t, "Ratio>5", map[string]table.Cell{"Ratio": table.Number(5.0)})
		require.NoError(t, err)
		require.False(t, outcome.Passed)
		require.NotNil(t, outcome.FailingExpr)
		assert.Equal(t, "Ratio > 5", outcome.FailingExpr.String())
	})

	t.Run("AND reports the deciding side", func(t *testing.T) {
		cells := map[string]table.Cell{"Current": table.Number(2.5), "Ratio": table.Number(5.0)}
		outcome, err := evalRule(t, "(Current>2) AND (Ratio>5)", cells)
		require.NoError(t, err)
		require.False(t, outcome.Passed)
		assert.Equal(t, "Ratio > 5", outcome.FailingExpr.String())
	})

	t.Run("OR reports the whole disjunction", func(t *testing.T) {
		cells := map[string]table.Cell{"Current": table.Number(1.0), "Ratio": table.Number(5.0)}
		outcome, err := evalRule(t, "(Current>2) OR (Ratio>5)", cells)
		require.NoError(t, err)
		require.False(t, outcome.Passed)
		assert.Equal(t, "(Current > 2 OR Ratio > 5)", outcome.FailingExpr.String())
	})

	t.Run("passed outcome carries no failing node", func(t *testing.T) {
		outcome, err := evalRule(t, "Current>2", map[string]table.Cell{"Current": table.Number(2.5)})
		require.NoError(t, err)
		assert.True(t, outcome.Passed)
		assert.Nil(t, outcome.FailingExpr)
	})
}

func TestEvaluate_MissingColumns(t *testing.T) {
	cells := map[string]table.Cell{"Current": table.Number(2.5)}

	t.Run("missing column is a resolution error", func(t *testing.T) {
		_, err := evalRule(t, "MissingCol>1", cells)
		require.Error(t, err)
		var notFound *ColumnNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "MissingCol", notFound.Column)
	})

	t.Run("short-circuit OR absorbs an irrelevant error", func(t *testing.T) {
		outcome, err := evalRule(t, "(MissingCol>1) OR (1=1)", cells)
		require.NoError(t, err)
		assert.True(t, outcome.Passed)
	})

	t.Run("decided OR never reaches the erroring right side", func(t *testing.T) {
		outcome, err := evalRule(t, "(Current>2) OR (MissingCol>1)", cells)
		require.NoError(t, err)
		assert.True(t, outcome.Passed)
	})

	t.Run("AND decided false by the right side absorbs a left error", func(t *testing.T) {
		outcome, err := evalRule(t, "(MissingCol>1) AND (1=2)", cells)
		require.NoError(t, err)
		assert.False(t, outcome.Passed)
	})

	t.Run("undecided AND propagates the error", func(t *testing.T) {
		_, err := evalRule(t, "(MissingCol>1) AND (Current>2)", cells)
		require.Error(t, err)
		var notFound *ColumnNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("undecided OR propagates the error", func(t *testing.T) {
		_, err := evalRule(t, "(MissingCol>1) OR (Current>3)", cells)
		require.Error(t, err)
	})
}

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

func scenarioRows(t *testing.T) []table.Row {
	t.Helper()
	columns := []string{"Current", "JB_Property", "Ratio"}
	return []table.Row{
		table.NewRow(columns, []table.Cell{table.Number(2.5), table.String("YES"), table.Number(5.0)}),
		table.NewRow(columns, []table.Cell{table.Number(1.8), table.String("NO"), table.Number(4.0)}),
	}
}

func scenarioSet(t *testing.T) *rule.Set {
	t.Helper()
	set := rule.NewSet()
	for _, src := range []string{"(Current>2) AND (JB_Property=YES)", "Ratio>5"} {
		r, err := rule.New("", src)
		require.NoError(t, err)
		set.Add(r)
	}
	return set
}

func TestRun_Scenario(t *testing.T) {
	report, err := NewRunner().Run(context.Background(), scenarioSet(t), scenarioRows(t))
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, 0, report.Errored)
	assert.NotEmpty(t, report.RunID)

	// Outer loop rows, inner loop rules.
	assert.Equal(t, StatusPass, report.Results[0].Status)
	assert.Equal(t, StatusFail, report.Results[1].Status)
	assert.Equal(t, StatusFail, report.Results[2].Status)
	assert.Equal(t, StatusFail, report.Results[3].Status)

	assert.Equal(t, 0, report.Results[0].RowIndex)
	assert.Equal(t, 0, report.Results[1].RowIndex)
	assert.Equal(t, 1, report.Results[2].RowIndex)
	assert.Equal(t, 1, report.Results[3].RowIndex)

	assert.Equal(t, "Ratio > 5", report.Results[1].FailingExpr)
	assert.Equal(t, "2.5", report.Results[0].Row["Current"])

	failed := report.FailedResults()
	require.Len(t, failed, 3)
	assert.Equal(t, report.Results[1], failed[0])
}

func TestRun_DisabledRulesSkipped(t *testing.T) {
	set := scenarioSet(t)
	first := set.Rules()[0]
	require.True(t, set.Disable(first.ID))

	report, err := NewRunner().Run(context.Background(), set, scenarioRows(t))
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.Equal(t, "ratio_5", res.RuleID)
	}
}

func TestRun_ErrorOutcome(t *testing.T) {
	set := rule.NewSet()
	r, err := rule.New("missing", "MissingCol>1")
	require.NoError(t, err)
	set.Add(r)

	report, err := NewRunner().Run(context.Background(), set, scenarioRows(t))
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, 2, report.Errored)
	for _, res := range report.Results {
		assert.Equal(t, StatusError, res.Status)
		assert.Contains(t, res.Error, "MissingCol")
		assert.Empty(t, res.FailingExpr)
	}
}

func TestRun_ParallelMatchesSerial(t *testing.T) {
	set := scenarioSet(t)
	rows := scenarioRows(t)

	serial, err := NewRunner(WithWorkers(1)).Run(context.Background(), set, rows)
	require.NoError(t, err)
	parallel, err := NewRunner(WithWorkers(8)).Run(context.Background(), set, rows)
	require.NoError(t, err)

	assert.Equal(t, serial.Results, parallel.Results)
}

func TestRun_Empty(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		report, err := NewRunner().Run(context.Background(), scenarioSet(t), nil)
		require.NoError(t, err)
		assert.Empty(t, report.Results)
		assert.Equal(t, 0, report.Total)
	})

	t.Run("no enabled rules", func(t *testing.T) {
		set := scenarioSet(t)
		for _, r := range set.Rules() {
			set.Disable(r.ID)
		}
		report, err := NewRunner().Run(context.Background(), set, scenarioRows(t))
		require.NoError(t, err)
		assert.Empty(t, report.Results)
	})
}

func TestRun_WithoutSnapshots(t *testing.T) {
	report, err := NewRunner(WithoutSnapshots()).Run(context.Background(), scenarioSet(t), scenarioRows(t))
	require.NoError(t, err)
	for _, res := range report.Results {
		assert.Nil(t, res.Row)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, scenarioSet(t), scenarioRows(t))
	assert.ErrorIs(t, err, context.Canceled)
}

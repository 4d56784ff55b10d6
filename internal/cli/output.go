package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/engine"
)

var (
	passText  = color.New(color.FgGreen, color.Bold).SprintFunc()
	failText  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorText = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// renderReport writes the validation report as a bordered table followed by
// a one-line summary.
func renderReport(w io.Writer, report *engine.Report, failedOnly bool) {
	results := report.Results
	if failedOnly {
		results = report.FailedResults()
	}

	if len(results) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ROW", "RULE", "STATUS", "DETAIL"})

		verbose := viper.GetBool("verbose")
		for _, res := range results {
			detail := resultDetail(res)
			if verbose && res.Status != engine.StatusPass && len(res.Row) > 0 {
				detail += "\n" + renderRowSnapshot(res.Row)
			}
			t.AppendRow(table.Row{res.RowIndex, res.RuleID, statusText(res.Status), detail})
		}
		t.Render()
	}

	fmt.Fprintf(w, "%d checks: %s, %s, %s\n",
		report.Total,
		passText(fmt.Sprintf("%d passed", report.Passed)),
		failText(fmt.Sprintf("%d failed", report.Failed)),
		errorText(fmt.Sprintf("%d errors", report.Errored)),
	)
}

func statusText(status engine.Status) string {
	switch status {
	case engine.StatusPass:
		return passText("PASS")
	case engine.StatusFail:
		return failText("FAIL")
	default:
		return errorText("ERROR")
	}
}

func resultDetail(res engine.Result) string {
	switch res.Status {
	case engine.StatusFail:
		return res.FailingExpr
	case engine.StatusError:
		return res.Error
	default:
		return ""
	}
}

// renderRowSnapshot formats a failing row for verbose text output. Snapshots
// are plain maps, so columns are listed in name order.
func renderRowSnapshot(row map[string]string) string {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s=%s", col, row[col]))
	}
	return strings.Join(parts, ", ")
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/engine"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/loader"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/style"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a spreadsheet against a rule file",
	Long: `Validate every row of a spreadsheet or CSV file against a set of rules.

Each enabled rule is evaluated against each row. The report lists one outcome
per (row, rule) pair: pass, fail (with the failing sub-condition), or error
(a rule referenced a column the row does not have).

Examples:
  xlrv validate data.xlsx --rules rules.txt
  xlrv validate data.xlsx --rules rules.yaml --sheet "Motor List"
  xlrv validate data.csv --rules rules.txt --output json
  xlrv validate data.xlsx --rules rules.txt --failed-only`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args[0])
	},
}

var (
	rulesPath   string
	sheetName   string
	headerRow   int
	workers     int
	failedOnly  bool
	failOnError bool
	outPath     string
	noSnapshots bool
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&rulesPath, "rules", "", "rule file (.txt one per line, or .yaml)")
	validateCmd.Flags().StringVar(&sheetName, "sheet", "", "worksheet to load (default: first sheet)")
	validateCmd.Flags().IntVar(&headerRow, "header-row", 0, "zero-based row holding column names")
	validateCmd.Flags().IntVar(&workers, "workers", 0, "rows evaluated concurrently (default: GOMAXPROCS)")
	validateCmd.Flags().BoolVar(&failedOnly, "failed-only", false, "only list failed and errored checks")
	validateCmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when any check errors, not only when one fails")
	validateCmd.Flags().StringVar(&outPath, "out", "", "write the report to a file instead of stdout")
	validateCmd.Flags().BoolVar(&noSnapshots, "no-snapshots", false, "omit row snapshots from the report")

	_ = validateCmd.MarkFlagRequired("rules")
}

func runValidate(cmd *cobra.Command, dataPath string) error {
	set, err := loadRules(rulesPath)
	if err != nil {
		return err
	}

	spin := style.NewSpinner(cmd.ErrOrStderr())
	if !viper.GetBool("quiet") && viper.GetString("output") == "text" {
		spin.SetSuffix(fmt.Sprintf(" loading %s", dataPath))
		spin.Start()
	}
	tbl, err := loader.Open(dataPath, loader.ExcelOptions{Sheet: sheetName, HeaderRow: headerRow})
	spin.Stop()
	if err != nil {
		return fmt.Errorf("loading %s: %w", dataPath, err)
	}

	opts := []engine.Option{engine.WithWorkers(workers)}
	if noSnapshots {
		opts = append(opts, engine.WithoutSnapshots())
	}
	runner := engine.NewRunner(opts...)

	report, err := runner.Run(cmd.Context(), set, tbl.Rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(out, report)
	case "yaml":
		style.PrintYAML(out, report)
	default:
		renderReport(out, report, failedOnly)
		if report.Errored > 0 {
			style.Warning(out, fmt.Sprintf("%d checks referenced columns the data does not have", report.Errored))
		}
	}

	if report.Failed > 0 || (failOnError && report.Errored > 0) {
		// Distinguish "data violated rules" from operational failure.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &exitError{code: 1}
	}
	return nil
}

// exitError carries a process exit code through RunE without printing.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// ExitCode extracts the intended process exit code from Execute's error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return 1
}

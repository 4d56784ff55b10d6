package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/rulefile"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/style"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Check a rule file for syntax errors",
	Long: `Parse every rule in a rule file and report lexical and syntax errors
with their positions, without validating any data.

Examples:
  xlrv check rules.txt
  xlrv check rules.yaml --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// CheckResult reports the outcome of linting one rule file.
type CheckResult struct {
	File   string   `json:"file" yaml:"file"`
	Valid  bool     `json:"valid" yaml:"valid"`
	Rules  int      `json:"rules" yaml:"rules"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func runCheck(cmd *cobra.Command, path string) error {
	set, err := rulefile.Load(path)
	result := CheckResult{File: path, Valid: err == nil}
	if set != nil {
		result.Rules = set.Len()
	}

	var multi *rulefile.MultiError
	switch {
	case err == nil:
	case errors.As(err, &multi):
		for _, e := range multi.Errors {
			result.Errors = append(result.Errors, e.Error())
		}
	default:
		return err
	}

	out := cmd.OutOrStdout()
	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(out, result)
	case "yaml":
		style.PrintYAML(out, result)
	default:
		if result.Valid {
			style.Success(out, fmt.Sprintf("%s: %d rules parsed", style.FormatFilePath(path), result.Rules))
			for _, rl := range set.Rules() {
				fmt.Fprintf(out, "  %s %s: %s\n", style.StatusIcon("pass"), rl.ID, rl.Expr)
			}
		} else {
			style.Error(out, fmt.Sprintf("%s: %d invalid rules", style.FormatFilePath(path), len(result.Errors)))
			for _, e := range multi.Errors {
				renderRuleError(out, e)
			}
		}
	}

	if !result.Valid {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &exitError{code: 1}
	}
	return nil
}

// renderRuleError prints one invalid rule with the offending line and, when
// the failure carries a position, a caret pointing at it.
func renderRuleError(out io.Writer, err error) {
	var lineErr *rulefile.LineError
	if !errors.As(err, &lineErr) {
		fmt.Fprintf(out, "  %s %s\n", style.StatusIcon("fail"), err)
		return
	}

	fmt.Fprintf(out, "  %s line %s: %s\n", style.StatusIcon("fail"), style.FormatPosition(lineErr.Line), lineErr.Text)
	if pos, ok := errorPos(lineErr.Err); ok {
		indent := strings.Repeat(" ", len(fmt.Sprintf("  x line %d: ", lineErr.Line)))
		fmt.Fprintf(out, "%s%s\n", indent, style.CaretIndicator(pos))
	}
	fmt.Fprintf(out, "    %s\n", lineErr.Err)
}

// errorPos extracts the source position of a lex or syntax error.
func errorPos(err error) (int, bool) {
	var lexErr *rule.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	var synErr *rule.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Pos, true
	}
	return 0, false
}

// loadRules loads a rule file for validation, surfacing parse failures as
// hard errors: an invalid rule never enters the active set.
func loadRules(path string) (*rule.Set, error) {
	set, err := rulefile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading rules from %s: %w", path, err)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("no rules found in %s", path)
	}
	return set, nil
}

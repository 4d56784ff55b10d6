package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/loader"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/style"
)

// columnsCmd represents the columns command
var columnsCmd = &cobra.Command{
	Use:   "columns FILE",
	Short: "List sheets and column headers of a tabular file",
	Long: `Show the worksheets of a workbook and the column headers rules can
reference. Column matching in rules is case-insensitive.

Examples:
  xlrv columns data.xlsx
  xlrv columns data.xlsx --sheet "Motor List"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runColumns(cmd, args[0])
	},
}

var columnsSheet string

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().StringVar(&columnsSheet, "sheet", "", "worksheet to inspect (default: first sheet)")
}

// FileInfo describes the shape of a tabular file.
type FileInfo struct {
	File    string   `json:"file" yaml:"file"`
	Sheets  []string `json:"sheets,omitempty" yaml:"sheets,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    int      `json:"rows" yaml:"rows"`
}

func runColumns(cmd *cobra.Command, path string) error {
	info := FileInfo{File: path}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xlsm" {
		sheets, err := loader.SheetNames(path)
		if err != nil {
			return err
		}
		info.Sheets = sheets
	}

	tbl, err := loader.Open(path, loader.ExcelOptions{Sheet: columnsSheet})
	if err != nil {
		return err
	}
	info.Columns = tbl.Columns
	info.Rows = len(tbl.Rows)

	out := cmd.OutOrStdout()
	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(out, info)
	case "yaml":
		style.PrintYAML(out, info)
	default:
		if len(info.Sheets) > 0 {
			fmt.Fprintf(out, "Sheets: %s\n", strings.Join(info.Sheets, ", "))
		}
		fmt.Fprintf(out, "Columns (%d rows):\n", info.Rows)
		for _, col := range info.Columns {
			fmt.Fprintf(out, "  %s\n", col)
		}
	}
	return nil
}

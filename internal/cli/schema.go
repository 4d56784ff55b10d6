package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/rulefile"
)

// SchemaOutput represents the combined output structure
type SchemaOutput struct {
	Schema    json.RawMessage    `json:"schema"`
	Operators []rule.OperatorDef `json:"operators"`
}

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Output JSON schema and operator reference",
	Long:   `Output the JSON schema for YAML rule files and the reference of rule language operators, for editor integration.`,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaBytes, err := rulefile.JSONSchema()
		if err != nil {
			return fmt.Errorf("generating schema: %w", err)
		}

		output := SchemaOutput{
			Schema:    json.RawMessage(schemaBytes),
			Operators: rule.Operators(),
		}

		outputBytes, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(outputBytes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

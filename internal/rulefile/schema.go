package rulefile

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// JSONSchema generates the JSON schema for the structured rule file format,
// for editor integration and CI validation of rule files.
func JSONSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Document{})
	schema.Title = "ExcelRuleValidation rule file"
	schema.Description = "A set of boolean validation rules applied to tabular data."
	return json.MarshalIndent(schema, "", "  ")
}

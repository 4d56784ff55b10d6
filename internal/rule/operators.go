package rule

// OperatorDef documents one operator of the rule language for reference
// surfaces (CLI schema output, HTTP API).
type OperatorDef struct {
	Operator    string `json:"operator" yaml:"operator"`
	Description string `json:"description" yaml:"description"`
	Example     string `json:"example" yaml:"example"`
}

// Operators lists every operator the rule language recognizes.
func Operators() []OperatorDef {
	return []OperatorDef{
		{Operator: string(OpGreater), Description: "Numeric greater-than", Example: "Current > 2"},
		{Operator: string(OpLess), Description: "Numeric less-than", Example: "Ratio < 5"},
		{Operator: string(OpGreaterEqual), Description: "Numeric greater-or-equal", Example: "Voltage >= 415"},
		{Operator: string(OpLessEqual), Description: "Numeric less-or-equal", Example: "Temp <= 40"},
		{Operator: string(OpEqual), Description: "Equality; numeric when both sides are numbers", Example: "JB_Property = YES"},
		{Operator: string(OpNotEqual), Description: "Inequality", Example: `Status != "open"`},
		{Operator: string(OpContains), Description: "Case-insensitive substring match", Example: `Voltage contains "cc_r"`},
		{Operator: string(OpStartsWith), Description: "Case-insensitive prefix match (also spelled startswith)", Example: `Tag starts_with "M-"`},
		{Operator: string(OpEndsWith), Description: "Case-insensitive suffix match (also spelled endswith)", Example: `Tag ends_with "-01"`},
		{Operator: kwIn, Description: "Membership in a literal list", Example: "Phase in (1, 3)"},
		{Operator: kwBetween, Description: "Inclusive numeric range", Example: "Current between 1 AND 10"},
		{Operator: kwAnd, Description: "Conjunction; short-circuits", Example: "(Current>2) AND (JB_Property=YES)"},
		{Operator: kwOr, Description: "Disjunction; short-circuits", Example: "(Phase=1) OR (Phase=3)"},
		{Operator: kwNot, Description: "Negation", Example: `NOT (Status = "closed")`},
	}
}

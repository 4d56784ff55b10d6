package rulefile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
)

// Document is the structured rule file format.
type Document struct {
	Version int        `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Rule file format version"`
	Rules   []RuleSpec `yaml:"rules" json:"rules" jsonschema:"required,description=Validation rules applied to every row"`
}

// RuleSpec is one rule entry in a structured rule file.
type RuleSpec struct {
	ID          string `yaml:"id,omitempty" json:"id,omitempty" jsonschema:"description=Unique rule identifier; derived from the rule text when omitted"`
	Rule        string `yaml:"rule" json:"rule" jsonschema:"required,description=Boolean rule expression such as (Current>2) AND (JB_Property=YES)"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" jsonschema:"description=Human-readable explanation shown in reports"`
	Enabled     *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty" jsonschema:"description=Disabled rules are retained but skipped (default true)"`
}

// ParseYAML decodes a structured rule document. Every entry must parse; a
// *MultiError reports all invalid entries while the returned set contains the
// valid ones.
func ParseYAML(r io.Reader) (*rule.Set, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding rule file: %w", err)
	}

	set := rule.NewSet()
	errs := &MultiError{}
	for i, spec := range doc.Rules {
		rl, err := rule.New(spec.ID, spec.Rule)
		if err != nil {
			errs.Add(fmt.Errorf("rule %d (%s): %w", i+1, spec.Rule, err))
			continue
		}
		rl.Description = spec.Description
		if spec.Enabled != nil {
			rl.Enabled = *spec.Enabled
		}
		set.Add(rl)
	}
	return set, errs.ToError()
}

// LoadYAML opens and parses a structured rule file.
func LoadYAML(path string) (*rule.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseYAML(f)
}

// WriteYAML round-trips a rule set back to the structured format.
func WriteYAML(w io.Writer, set *rule.Set) error {
	doc := Document{Version: 1}
	for _, rl := range set.Rules() {
		spec := RuleSpec{
			ID:          rl.ID,
			Rule:        rl.Source,
			Description: rl.Description,
		}
		if !rl.Enabled {
			enabled := false
			spec.Enabled = &enabled
		}
		doc.Rules = append(doc.Rules, spec)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Package rule implements the rule language front end: tokenizer, parser,
// expression tree, and the rule set container. Rule text such as
// `(Current>2) AND (JB_Property=YES)` is parsed once into an immutable tree
// which the engine evaluates per row.
package rule

import (
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"
)

// Rule is a parsed, optionally-enabled boolean expression. A Rule exists only
// if its source text parsed successfully; it is mutated only via
// Enable/Disable.
type Rule struct {
	ID          string `json:"id" yaml:"id"`
	Source      string `json:"source" yaml:"rule"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`

	Expr Expr `json:"-" yaml:"-"`
}

// New parses source and returns an enabled rule. If id is empty, one is
// derived from the source text.
func New(id, source string) (*Rule, error) {
	expr, err := Parse(source)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = DeriveID(source)
	}
	return &Rule{ID: id, Source: source, Expr: expr, Enabled: true}, nil
}

// DeriveID builds a stable snake_case identifier from the leading words of
// rule text, the way interactively-entered rules get named.
func DeriveID(source string) string {
	fields := strings.FieldsFunc(source, func(r rune) bool {
		return !isIdentRune(r)
	})
	if len(fields) > 4 {
		fields = fields[:4]
	}
	id := strcase.SnakeCase(strings.Join(fields, "_"))
	if id == "" {
		return "rule"
	}
	return id
}

// Set is an ordered collection of rules with unique IDs.
type Set struct {
	rules []*Rule
	byID  map[string]*Rule
}

func NewSet() *Set {
	return &Set{byID: make(map[string]*Rule)}
}

// Add appends a rule, suffixing its ID if a rule with the same ID already
// exists.
func (s *Set) Add(r *Rule) {
	if _, taken := s.byID[r.ID]; taken {
		base := r.ID
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s_%d", base, n)
			if _, taken := s.byID[candidate]; !taken {
				r.ID = candidate
				break
			}
		}
	}
	s.rules = append(s.rules, r)
	s.byID[r.ID] = r
}

// Remove deletes the rule with the given ID, reporting whether it existed.
func (s *Set) Remove(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, r := range s.rules {
		if r.ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			break
		}
	}
	return true
}

// Enable marks the rule active. Disabled rules are retained but skipped by
// the runner.
func (s *Set) Enable(id string) bool  { return s.setEnabled(id, true) }
func (s *Set) Disable(id string) bool { return s.setEnabled(id, false) }

func (s *Set) setEnabled(id string, enabled bool) bool {
	r, ok := s.byID[id]
	if ok {
		r.Enabled = enabled
	}
	return ok
}

// Get returns the rule with the given ID.
func (s *Set) Get(id string) (*Rule, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Rules returns all rules in insertion order.
func (s *Set) Rules() []*Rule {
	return s.rules
}

// Enabled returns the enabled rules in insertion order.
func (s *Set) Enabled() []*Rule {
	var out []*Rule
	for _, r := range s.rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the total number of rules, enabled or not.
func (s *Set) Len() int {
	return len(s.rules)
}

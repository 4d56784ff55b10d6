// Package rulefile loads and saves rule sets. Two formats are supported:
// plain text with one rule per line, and a structured YAML document carrying
// per-rule metadata.
package rulefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
)

// LineError ties a rule parse failure to its line in the source file.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// MultiError aggregates per-line failures from loading a rule file.
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d invalid rules:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString("  " + err.Error() + "\n")
	}
	return sb.String()
}

func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *MultiError) ToError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// ParseText reads rules one per line. Blank lines and lines starting with
// '#' are skipped. A line may carry an explicit ID with the form
// `id: expression`; otherwise the ID is derived from the rule text. The
// returned set contains every rule that parsed; the error, if non-nil, is a
// *MultiError listing the lines that did not.
func ParseText(r io.Reader) (*rule.Set, error) {
	set := rule.NewSet()
	errs := &MultiError{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id, source := splitID(line)
		rl, err := rule.New(id, source)
		if err != nil {
			errs.Add(&LineError{Line: lineNo, Text: line, Err: err})
			continue
		}
		set.Add(rl)
	}
	if err := scanner.Err(); err != nil {
		return set, err
	}
	return set, errs.ToError()
}

// LoadText opens and parses a plain-text rule file.
func LoadText(path string) (*rule.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseText(f)
}

// WriteText writes the set one rule per line, disabled rules commented out.
func WriteText(w io.Writer, set *rule.Set) error {
	for _, rl := range set.Rules() {
		prefix := ""
		if !rl.Enabled {
			prefix = "# disabled: "
		}
		if _, err := fmt.Fprintf(w, "%s%s: %s\n", prefix, rl.ID, rl.Source); err != nil {
			return err
		}
	}
	return nil
}

// splitID peels a leading `identifier:` prefix off a rule line. The prefix
// must look like a bare identifier so that rule text containing no colon is
// never mis-split; the expression grammar itself has no ':' token.
func splitID(line string) (id, source string) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", line
	}
	candidate := strings.TrimSpace(line[:idx])
	if !isIdentifier(candidate) {
		return "", line
	}
	return candidate, strings.TrimSpace(line[idx+1:])
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Load parses a rule file by extension: .yaml/.yml as the structured format,
// anything else as plain text.
func Load(path string) (*rule.Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return LoadText(path)
	}
}

package engine

import "time"

// Status classifies a single (rule, row) outcome. A resolution error is a
// distinct kind, never conflated with a genuine rule violation.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusError Status = "error"
)

// Result is one immutable (rule, row) verdict.
type Result struct {
	RuleID      string            `json:"rule_id" yaml:"rule_id"`
	RowIndex    int               `json:"row_index" yaml:"row_index"`
	Status      Status            `json:"status" yaml:"status"`
	FailingExpr string            `json:"failing_expr,omitempty" yaml:"failing_expr,omitempty"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
	Row         map[string]string `json:"row,omitempty" yaml:"row,omitempty"`
}

// Report aggregates every verdict of a validation run. Results are ordered
// outer loop over rows, inner loop over rules; downstream consumers rely on
// that ordering being stable.
type Report struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Total    int           `json:"total" yaml:"total"`
	Passed   int           `json:"passed" yaml:"passed"`
	Failed   int           `json:"failed" yaml:"failed"`
	Errored  int           `json:"errored" yaml:"errored"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Results  []Result      `json:"results" yaml:"results"`
}

// FailedResults returns the failed and errored results in report order.
func (r *Report) FailedResults() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status != StatusPass {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) tally() {
	r.Total = len(r.Results)
	r.Passed, r.Failed, r.Errored = 0, 0, 0
	for _, res := range r.Results {
		switch res.Status {
		case StatusPass:
			r.Passed++
		case StatusFail:
			r.Failed++
		case StatusError:
			r.Errored++
		}
	}
}

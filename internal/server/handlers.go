package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/engine"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

// RuleInput is one rule submitted over the API.
type RuleInput struct {
	ID          string `json:"id,omitempty"`
	Rule        string `json:"rule"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// ValidateRequest carries rules and rows for one validation run. Rules may
// be inline, referenced by registered rule set ID, or both.
type ValidateRequest struct {
	RuleSet string           `json:"rule_set,omitempty"`
	Rules   []RuleInput      `json:"rules,omitempty"`
	Rows    []map[string]any `json:"rows"`
}

// CheckRequest carries rule text to lint.
type CheckRequest struct {
	Rules []RuleInput `json:"rules"`
}

// CheckResponse reports per-rule parse outcomes.
type CheckResponse struct {
	Valid   bool          `json:"valid"`
	Results []CheckResult `json:"results"`
}

// CheckResult is the parse outcome for one submitted rule.
type CheckResult struct {
	ID     string `json:"id,omitempty"`
	Rule   string `json:"rule"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Parsed string `json:"parsed,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	set, err := s.assembleRules(req)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if set.Len() == 0 {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("no rules supplied"))
		return
	}

	rows := make([]table.Row, len(req.Rows))
	for i, raw := range req.Rows {
		rows[i] = rowFromJSON(raw)
	}

	report, err := s.runner.Run(r.Context(), set, rows)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	if s.metrics != nil {
		s.metrics.checksTotal.WithLabelValues(string(engine.StatusPass)).Add(float64(report.Passed))
		s.metrics.checksTotal.WithLabelValues(string(engine.StatusFail)).Add(float64(report.Failed))
		s.metrics.checksTotal.WithLabelValues(string(engine.StatusError)).Add(float64(report.Errored))
		s.metrics.runDuration.Observe(report.Duration.Seconds())
	}

	s.writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}

	resp := CheckResponse{Valid: true}
	for _, input := range req.Rules {
		result := CheckResult{ID: input.ID, Rule: input.Rule}
		rl, err := rule.New(input.ID, input.Rule)
		if err != nil {
			result.Error = err.Error()
			resp.Valid = false
		} else {
			result.Valid = true
			result.ID = rl.ID
			result.Parsed = rl.Expr.String()
		}
		resp.Results = append(resp.Results, result)
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleListRuleSets(w http.ResponseWriter, r *http.Request) {
	ids := s.registry.List()
	sort.Strings(ids)
	s.writeJSON(w, r, http.StatusOK, map[string][]string{"rule_sets": ids})
}

func (s *Server) handleOperators(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{"operators": rule.Operators()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// assembleRules combines a referenced registered set with inline rules. An
// inline rule that fails to parse rejects the whole request; a rule is never
// silently dropped.
func (s *Server) assembleRules(req ValidateRequest) (*rule.Set, error) {
	set := rule.NewSet()

	if req.RuleSet != "" {
		registered, ok := s.registry.Get(req.RuleSet)
		if !ok {
			return nil, fmt.Errorf("unknown rule set %q", req.RuleSet)
		}
		for _, rl := range registered.Rules() {
			set.Add(rl)
		}
	}

	for i, input := range req.Rules {
		rl, err := rule.New(input.ID, input.Rule)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, input.Rule, err)
		}
		rl.Description = input.Description
		if input.Enabled != nil {
			rl.Enabled = *input.Enabled
		}
		set.Add(rl)
	}
	return set, nil
}

// rowFromJSON converts a JSON object into a typed row. JSON objects carry no
// field order, so columns are sorted by name to keep snapshots deterministic.
func rowFromJSON(raw map[string]any) table.Row {
	columns := make([]string, 0, len(raw))
	for name := range raw {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	cells := make([]table.Cell, len(columns))
	for i, name := range columns {
		cells[i] = cellFromJSON(raw[name])
	}
	return table.NewRow(columns, cells)
}

func cellFromJSON(v any) table.Cell {
	switch val := v.(type) {
	case nil:
		return table.Empty()
	case bool:
		return table.Boolean(val)
	case float64:
		return table.Number(val)
	case string:
		return table.ParseCell(val)
	default:
		return table.String(fmt.Sprintf("%v", val))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
	s.countRequest(r, code)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
	s.countRequest(r, code)
}

func (s *Server) countRequest(r *http.Request, code int) {
	if s.metrics == nil {
		return
	}
	s.metrics.requestsTotal.WithLabelValues(r.URL.Path, fmt.Sprintf("%d", code)).Inc()
}

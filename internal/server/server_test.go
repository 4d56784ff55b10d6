package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/engine"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	config := DefaultConfig()
	// The default prometheus registry is process-global; registering the same
	// collectors from a second test server would panic.
	config.EnableMetrics = false

	registry := NewRuleSetRegistry()
	set := rule.NewSet()
	for _, src := range []string{"(Current>2) AND (JB_Property=YES)", "Ratio>5"} {
		rl, err := rule.New("", src)
		require.NoError(t, err)
		set.Add(rl)
	}
	registry.Register("motors", set)

	return New(config, registry)
}

func postJSON(t *testing.T, s *Server, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleValidate(t *testing.T) {
	s := newTestServer(t)

	t.Run("inline rules", func(t *testing.T) {
		rec := postJSON(t, s, "/api/v1/validate", ValidateRequest{
			Rules: []RuleInput{{ID: "overcurrent", Rule: "Current>2"}},
			Rows: []map[string]any{
				{"Current": 2.5},
				{"Current": 1.8},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var report engine.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 1, report.Passed)
		assert.Equal(t, 1, report.Failed)
		require.Len(t, report.Results, 2)
		assert.Equal(t, "overcurrent", report.Results[0].RuleID)
	})

	t.Run("registered rule set", func(t *testing.T) {
		rec := postJSON(t, s, "/api/v1/validate", ValidateRequest{
			RuleSet: "motors",
			Rows: []map[string]any{
				{"Current": 2.5, "JB_Property": "YES", "Ratio": 5.0},
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var report engine.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 1, report.Passed)
		assert.Equal(t, 1, report.Failed)
	})

	t.Run("typed JSON values", func(t *testing.T) {
		rec := postJSON(t, s, "/api/v1/validate", ValidateRequest{
			Rules: []RuleInput{{Rule: "Active = TRUE"}},
			Rows:  []map[string]any{{"Active": true}},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var report engine.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 1, report.Passed)
	})

	t.Run("unknown rule set", func(t *testing.T) {
		rec := postJSON(t, s, "/api/v1/validate", ValidateRequest{
			RuleSet: "absent",
			Rows:    []map[string]any{{"Current": 2.5}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid inline rule rejects the request", func(t *testing.T) {
		rec := postJSON(t, s, "/api/v1/validate", ValidateRequest{
			Rules: []RuleInput{{Rule: "Current >"}},
			Rows:  []map[string]any{{"Current": 2.5}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no rules", func(t *testing.T) {
		rec := postJSON(t, s, "/api/v1/validate", ValidateRequest{
			Rows: []map[string]any{{"Current": 2.5}},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleCheck(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/api/v1/rules/check", CheckRequest{
		Rules: []RuleInput{
			{Rule: "Current>2"},
			{Rule: "A>B>C"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	require.Len(t, resp.Results, 2)

	assert.True(t, resp.Results[0].Valid)
	assert.Equal(t, "current_2", resp.Results[0].ID)
	assert.Equal(t, "Current > 2", resp.Results[0].Parsed)

	assert.False(t, resp.Results[1].Valid)
	assert.NotEmpty(t, resp.Results[1].Error)
}

func TestHandleListRuleSets(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rulesets", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"motors"}, resp["rule_sets"])
}

func TestHandleOperators(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/operators", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "contains")
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/validate", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

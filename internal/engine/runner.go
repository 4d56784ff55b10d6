package engine

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/table"
)

// Runner applies every enabled rule to every row. Each (rule, row) pair is
// independent, so rows are evaluated concurrently across a worker pool;
// result order is restored by index, not by serializing evaluation.
type Runner struct {
	workers      int
	withSnapshot bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers caps the number of rows evaluated concurrently. Values below 1
// fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithoutSnapshots omits row snapshots from results, for large tables whose
// reports are only consumed as counts.
func WithoutSnapshots() Option {
	return func(r *Runner) { r.withSnapshot = false }
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{workers: runtime.GOMAXPROCS(0), withSnapshot: true}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// Run validates rows against the enabled rules of the set and returns the
// aggregated report. The outer loop is over rows, the inner over rules.
// Disabled rules contribute zero results. Run fails only on context
// cancellation; per-pair resolution errors are recorded in the report.
func (r *Runner) Run(ctx context.Context, set *rule.Set, rows []table.Row) (*Report, error) {
	start := time.Now()
	enabled := set.Enabled()

	report := &Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(rows)*len(enabled)),
	}

	if len(enabled) == 0 || len(rows) == 0 {
		report.Duration = time.Since(start)
		return report, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for rowIdx := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := rows[rowIdx]
			for ruleIdx, rl := range enabled {
				report.Results[rowIdx*len(enabled)+ruleIdx] = r.evaluatePair(rl, row, rowIdx)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.tally()
	report.Duration = time.Since(start)

	log.Debug().
		Str("run_id", report.RunID).
		Int("rules", len(enabled)).
		Int("rows", len(rows)).
		Int("failed", report.Failed).
		Int("errored", report.Errored).
		Dur("duration", report.Duration).
		Msg("validation run complete")

	return report, nil
}

func (r *Runner) evaluatePair(rl *rule.Rule, row table.Row, rowIdx int) Result {
	res := Result{RuleID: rl.ID, RowIndex: rowIdx}
	if r.withSnapshot {
		res.Row = row.Snapshot()
	}

	outcome, err := Evaluate(rl.Expr, row)
	switch {
	case err != nil:
		var notFound *ColumnNotFoundError
		if !errors.As(err, &notFound) {
			// Only resolution errors are expected once a rule has parsed.
			log.Warn().Str("rule", rl.ID).Int("row", rowIdx).Err(err).Msg("unexpected evaluation error")
		}
		res.Status = StatusError
		res.Error = err.Error()
	case outcome.Passed:
		res.Status = StatusPass
	default:
		res.Status = StatusFail
		if outcome.FailingExpr != nil {
			res.FailingExpr = outcome.FailingExpr.String()
		}
	}
	return res
}

package reports

import (
	"context"
	"log/slog"

	apperrors "hmireport/internal/errors"
	"hmireport/internal/infrastructure"
	"hmireport/pkg/contracts/domain"
)

// Outcome is the result of one kind inside RunAll
type Outcome struct {
	Kind    domain.ReportKind
	Result  *Result
	Err     error
	Skipped bool // no input for this kind
}

// RunSummary lists the outcome of every kind in processing order
type RunSummary struct {
	Outcomes []Outcome
}

// Succeeded counts kinds that produced output
func (s RunSummary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts kinds that had input but could not be produced
func (s RunSummary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil && !o.Skipped {
			n++
		}
	}
	return n
}

// Skipped counts kinds without input
func (s RunSummary) Skipped() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Skipped {
			n++
		}
	}
	return n
}

// RunAll generates every kind from one data directory, one after another.
// A kind without input is logged as a warning and skipped; other failures
// are recorded and do not stop the remaining kinds.
func (g *Generator) RunAll(ctx context.Context, opts Options) (RunSummary, error) {
	var summary RunSummary
	if opts.CSVPath != "" || opts.OutputPath != "" {
		return summary, apperrors.NewAppValidationError("explicit input or output paths cannot be shared by every report kind")
	}
	ctx = infrastructure.EnsureTraceID(ctx)

	for _, id := range domain.AllReportKinds {
		result, err := g.Run(ctx, id, opts)
		outcome := Outcome{Kind: id, Result: result, Err: err}
		if apperrors.Is(err, apperrors.ErrNotFound) {
			outcome.Skipped = true
			g.logger.WarnContext(ctx, "No input for report kind",
				slog.String("report_kind", string(id)),
				slog.String("data_dir", opts.DataDir),
				slog.String("error", err.Error()))
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	g.logger.InfoContext(ctx, "All reports processed",
		slog.Int("succeeded", summary.Succeeded()),
		slog.Int("failed", summary.Failed()),
		slog.Int("skipped", summary.Skipped()))
	return summary, nil
}

package reports

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hmireport/pkg/contracts/domain"
)

const (
	TracerName = "hmireport.reports"
)

// Tracer wraps the OpenTelemetry spans of a report run
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer on the global provider
func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(TracerName)}
}

// TraceRun creates the span covering a whole run of one kind
func (t *Tracer) TraceRun(ctx context.Context, kind domain.ReportKind, opts Options) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, fmt.Sprintf("report.run.%s", kind),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("report.kind", string(kind)),
			attribute.Bool("report.dry_run", opts.DryRun),
			attribute.Bool("report.separate_files", opts.SeparateFiles),
			attribute.String("report.chart_placement", string(opts.Placement)),
			attribute.Int("report.row_limit", opts.RowLimit),
		),
	)
}

// TraceStage creates a span for one pipeline stage
func (t *Tracer) TraceStage(ctx context.Context, kind domain.ReportKind, stage string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, fmt.Sprintf("report.stage.%s", stage),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("report.kind", string(kind)),
			attribute.String("stage.name", stage),
		),
	)
}

// RecordRunCompletion annotates the run span with its outcome
func (t *Tracer) RecordRunCompletion(span trace.Span, result *Result, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.Float64("report.duration_seconds", duration.Seconds()),
		attribute.Int("report.rows", result.Rows),
		attribute.Int("report.pages", result.Pages),
		attribute.Int("report.warnings", len(result.Warnings)),
		attribute.StringSlice("report.outputs", result.Outputs),
	)
	if result.Source.Path != "" {
		span.SetAttributes(attribute.String("report.source", result.Source.Path))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "report completed")
}

// RecordStageCompletion annotates a stage span with its outcome
func (t *Tracer) RecordStageCompletion(span trace.Span, duration time.Duration, err error) {
	span.SetAttributes(attribute.Float64("stage.duration_seconds", duration.Seconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "stage completed")
}

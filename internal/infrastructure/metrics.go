package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// stageBuckets are in seconds. Instrument names use underscores so the
// textfile keeps plain Prometheus metric names.
var stageBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// ReportMetrics holds the instruments recorded by report runs. A nil
// *ReportMetrics records nothing.
type ReportMetrics struct {
	ReportsTotal  metric.Int64Counter
	RowsIngested  metric.Int64Counter
	PagesRendered metric.Int64Counter
	Warnings      metric.Int64Counter
	StageDuration metric.Float64Histogram
}

// NewReportMetrics creates the report instruments on meter
func NewReportMetrics(meter metric.Meter) (*ReportMetrics, error) {
	reports, err := meter.Int64Counter(
		"hmireport_reports",
		metric.WithDescription("Report runs by kind and outcome"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"hmireport_rows_ingested",
		metric.WithDescription("Data rows read from export files"),
	)
	if err != nil {
		return nil, err
	}

	pages, err := meter.Int64Counter(
		"hmireport_pages_rendered",
		metric.WithDescription("PDF pages written"),
	)
	if err != nil {
		return nil, err
	}

	warnings, err := meter.Int64Counter(
		"hmireport_warnings",
		metric.WithDescription("Recovered conditions by kind"),
	)
	if err != nil {
		return nil, err
	}

	stage, err := meter.Float64Histogram(
		"hmireport_stage_duration",
		metric.WithDescription("Pipeline stage duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(stageBuckets...),
	)
	if err != nil {
		return nil, err
	}

	return &ReportMetrics{
		ReportsTotal:  reports,
		RowsIngested:  rows,
		PagesRendered: pages,
		Warnings:      warnings,
		StageDuration: stage,
	}, nil
}

// RecordRun records the outcome of one report kind
func (m *ReportMetrics) RecordRun(ctx context.Context, kind, status string, rows, pages int) {
	if m == nil {
		return
	}
	kindAttr := attribute.String("kind", kind)
	m.ReportsTotal.Add(ctx, 1, metric.WithAttributes(kindAttr, attribute.String("status", status)))
	m.RowsIngested.Add(ctx, int64(rows), metric.WithAttributes(kindAttr))
	m.PagesRendered.Add(ctx, int64(pages), metric.WithAttributes(kindAttr))
}

// RecordWarning counts a recovered condition
func (m *ReportMetrics) RecordWarning(ctx context.Context, kind, warning string) {
	if m == nil {
		return
	}
	m.Warnings.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("warning", warning),
	))
}

// RecordStage records how long a pipeline stage took
func (m *ReportMetrics) RecordStage(ctx context.Context, kind, stage string, d time.Duration, failed bool) {
	if m == nil {
		return
	}
	status := "success"
	if failed {
		status = "failure"
	}
	m.StageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("stage", stage),
		attribute.String("status", status),
	))
}

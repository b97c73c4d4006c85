package infrastructure

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestOTelInitialization_Defaults(t *testing.T) {
	providers, err := InitializeOTel(nil, testLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	// tracing disabled by default, metrics always available
	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Registry)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitialization_UnknownExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{TraceExporter: "jaeger"}, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestStdoutTracing(t *testing.T) {
	var out bytes.Buffer
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:   ServiceName,
		TraceExporter: "stdout",
		TraceWriter:   &out,
	}, testLogger())
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	_, span := providers.Tracer.Start(context.Background(), "ingest")
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, out.String(), `"Name": "ingest"`)
}

func TestReportMetrics_WrittenToTextfile(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "hmireport.prom")
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName: ServiceName,
		MetricsFile: metricsFile,
	}, testLogger())
	require.NoError(t, err)

	metrics, err := NewReportMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordRun(ctx, "alarm", "success", 42, 3)
	metrics.RecordWarning(ctx, "alarm", "ASSET_MISSING")
	metrics.RecordStage(ctx, "alarm", "render", 150*time.Millisecond, false)

	require.NoError(t, providers.Shutdown(ctx))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.Contains(text, "hmireport_reports_total"), text)
	assert.Contains(t, text, `kind="alarm"`)
	assert.Contains(t, text, "hmireport_rows_ingested_total")
	assert.Contains(t, text, "hmireport_warnings_total")
	assert.Contains(t, text, "hmireport_pages_rendered_total")
	assert.NotContains(t, text, `"hmireport.`)
}

func TestReportMetrics_StageBucketsInSeconds(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "hmireport.prom")
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName: ServiceName,
		MetricsFile: metricsFile,
	}, testLogger())
	require.NoError(t, err)

	metrics, err := NewReportMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordStage(ctx, "batch", "render", 150*time.Millisecond, false)
	require.NoError(t, providers.Shutdown(ctx))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "hmireport_stage_duration_seconds_bucket")
	assert.Contains(t, text, `le="0.1"`)
	assert.Contains(t, text, `le="0.5"`)
	assert.NotContains(t, text, `le="10000"`)
}

func TestReportMetrics_NilSafe(t *testing.T) {
	var m *ReportMetrics
	assert.NotPanics(t, func() {
		m.RecordRun(context.Background(), "batch", "success", 1, 1)
		m.RecordWarning(context.Background(), "batch", "EMPTY_DATA")
		m.RecordStage(context.Background(), "batch", "layout", time.Second, true)
	})
}

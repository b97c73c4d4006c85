package reports

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"hmireport/internal/chart"
	"hmireport/internal/config"
	"hmireport/internal/dataprocessing"
	apperrors "hmireport/internal/errors"
	"hmireport/internal/exporter"
	"hmireport/internal/files"
	"hmireport/internal/infrastructure"
	"hmireport/internal/layout"
	"hmireport/internal/render"
	"hmireport/pkg/contracts/domain"
)

// Pipeline stage names used for spans and the stage duration histogram
const (
	StageLocate    = "locate"
	StageIngest    = "ingest"
	StageNormalize = "normalize"
	StageLayout    = "layout"
	StageChart     = "chart"
	StageRender    = "render"
	StageExport    = "export"
)

// Result describes one finished run
type Result struct {
	Kind     domain.ReportKind
	Source   files.FileInfo
	Outputs  []string
	Pages    int
	Rows     int
	Missing  []string
	Warnings []apperrors.Warning

	// Summary is set for dry runs only.
	Summary *Summary
}

// Generator runs the report pipeline for every kind
type Generator struct {
	locator    *files.Locator
	normalizer *dataprocessing.Normalizer
	renderer   *render.Renderer
	manager    *files.Manager
	policy     layout.WidthPolicy
	metrics    *infrastructure.ReportMetrics
	tracer     *Tracer
	logger     *slog.Logger
}

// NewGenerator wires the pipeline from the configuration. metrics may be nil.
func NewGenerator(cfg *config.Config, metrics *infrastructure.ReportMetrics, logger *slog.Logger) *Generator {
	logger = infrastructure.WithComponent(logger, "reports")
	return &Generator{
		locator:    files.NewLocator(files.NewDiscovery(""), logger),
		normalizer: dataprocessing.NewNormalizer(logger),
		renderer:   render.NewRenderer(render.SettingsFromConfig(cfg.Report), chart.NewPainter(), logger),
		manager:    files.NewManager(logger),
		policy: layout.WidthPolicy{
			Min:        cfg.Report.MinColumnMM,
			Max:        cfg.Report.MaxColumnMM,
			SampleRows: cfg.Report.WidthSampleRow,
		},
		metrics: metrics,
		tracer:  NewTracer(),
		logger:  logger,
	}
}

// Run generates the report of one kind. Only a missing input, invalid
// options or an I/O failure is returned as an error; everything else is
// recovered and listed in Result.Warnings.
func (g *Generator) Run(ctx context.Context, id domain.ReportKind, opts Options) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	result := &Result{Kind: id}

	kind, err := Lookup(id)
	if err != nil {
		return result, err
	}
	if err := opts.Validate(); err != nil {
		return result, err
	}
	kind = kind.excluding(opts.ExportSuffix)

	ctx, span := g.tracer.TraceRun(ctx, id, opts)
	defer span.End()

	logger := g.logger.With(
		slog.String("report_kind", string(id)),
		slog.String("trace_id", infrastructure.GetTraceID(ctx)))
	start := time.Now()

	err = g.run(ctx, kind, opts, result, logger)

	duration := time.Since(start)
	g.tracer.RecordRunCompletion(span, result, duration, err)
	status := "success"
	if err != nil {
		status = "failure"
	}
	g.metrics.RecordRun(ctx, string(id), status, result.Rows, result.Pages)
	for _, w := range result.Warnings {
		g.metrics.RecordWarning(ctx, string(id), string(w.Kind))
	}

	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Report failed",
			slog.Duration("duration", duration))
		return result, err
	}
	logger.InfoContext(ctx, "Report finished",
		slog.String("source", result.Source.Path),
		slog.Any("outputs", result.Outputs),
		slog.Int("rows", result.Rows),
		slog.Int("pages", result.Pages),
		slog.Int("warnings", len(result.Warnings)),
		slog.Duration("duration", duration))
	return result, nil
}

func (g *Generator) run(ctx context.Context, kind Kind, opts Options, result *Result, logger *slog.Logger) error {
	err := g.stage(ctx, kind.ID, StageLocate, func(context.Context) error {
		src, err := g.locator.Locate(opts.DataDir, kind.Matcher, opts.CSVPath)
		result.Source = src
		return err
	})
	if err != nil {
		return err
	}

	var raw domain.RawTable
	err = g.stage(ctx, kind.ID, StageIngest, func(context.Context) error {
		ingestor := dataprocessing.NewIngestor(dataprocessing.IngestOptions{
			RowLimit:   opts.RowLimit,
			HeaderHint: dataprocessing.DefaultIngestOptions().HeaderHint,
		}, logger)
		var err error
		raw, err = ingestor.ParseFile(result.Source.Path)
		if err != nil && !apperrors.IsFatal(err) {
			w := apperrors.RecoveredWarning(err)
			result.Warnings = append(result.Warnings, w)
			logger.WarnContext(ctx, "Input recovered",
				slog.String("source", result.Source.Path),
				slog.String("error", w.Message),
				slog.String("kind", string(w.Kind)))
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	var table domain.NormalizedTable
	err = g.stage(ctx, kind.ID, StageNormalize, func(ctx context.Context) error {
		res := g.normalizer.Normalize(raw, kind.Columns, kind.Exclude)
		table = res.Table
		result.Warnings = append(result.Warnings, res.Warnings...)
		for column, count := range res.Unparsed {
			w := apperrors.TransformParseWarning(column, count)
			g.metrics.RecordWarning(ctx, string(kind.ID), string(w.Kind))
		}
		return nil
	})
	if err != nil {
		return err
	}
	result.Rows = len(table.Rows)
	result.Missing = table.Missing

	if opts.DryRun {
		result.Summary = summarize(result.Source, raw, table, kind)
		return nil
	}

	base := strings.TrimSuffix(result.Source.Name, filepath.Ext(result.Source.Name))
	outDir := config.ResolveOutputDir(opts.OutputDir, result.Source.Path, kind.OutputNextToInput)

	docs, err := g.assemble(ctx, kind, opts, base, table, result, logger)
	if err != nil {
		return err
	}

	reportPath := opts.OutputPath
	if reportPath == "" {
		reportPath = filepath.Join(outDir, base+opts.ReportSuffix+".pdf")
	}
	chartPath := strings.TrimSuffix(strings.TrimSuffix(reportPath, ".pdf"), opts.ReportSuffix) + opts.ChartSuffix + ".pdf"

	for i, doc := range docs {
		path := reportPath
		if i > 0 {
			path = chartPath
		}
		if err := g.renderDocument(ctx, kind.ID, doc, path, result); err != nil {
			return err
		}
	}

	if opts.ExportCSV {
		err := g.stage(ctx, kind.ID, StageExport, func(context.Context) error {
			name := base + opts.ExportSuffix + ".csv"
			writer := exporter.NewCSVWriter(filepath.Dir(reportPath), logger)
			path, err := writer.WriteTable(name, table)
			if err != nil {
				return apperrors.NewStorageError("failed to export table", err).WithContext("file", name)
			}
			result.Outputs = append(result.Outputs, path)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// assemble builds the documents of a run. The first one is always the
// table report; a standalone chart document follows when requested. The
// chart is painted before layout so the table is planned for the final
// page order.
func (g *Generator) assemble(ctx context.Context, kind Kind, opts Options, base string, table domain.NormalizedTable,
	result *Result, logger *slog.Logger) ([]domain.Report, error) {
	report := domain.Report{
		Title:     base,
		Note:      apperrors.MissingColumnsNote(table.Missing),
		Placement: opts.Placement,
		LogoPath:  opts.LogoPath,
		NoData:    len(table.Rows) == 0 || len(table.Columns) == 0,
		ChartName: chart.DefaultTitle,
		Landscape: opts.Landscape,
	}

	var series []domain.ChartSeries
	var chartPNG []byte
	if kind.Chart {
		report.Subtitle = PeriodSubtitle(table)
		err := g.stage(ctx, kind.ID, StageChart, func(ctx context.Context) error {
			if report.NoData {
				return nil
			}
			series = chart.BuildSeries(table, chart.TemperatureChannels)
			if len(series) == 0 {
				return nil
			}
			data, err := g.renderer.PaintChart(series, report.ChartName)
			if err != nil {
				w := apperrors.AssetMissingWarning("chart", err)
				result.Warnings = append(result.Warnings, w)
				logger.WarnContext(ctx, "Chart not drawn",
					slog.String("error", err.Error()),
					slog.String("kind", string(w.Kind)))
				series = nil
				return nil
			}
			chartPNG = data
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var chartDoc *domain.Report
	switch {
	case report.NoData || len(series) == 0:
	case opts.SeparateFiles:
		chartDoc = &domain.Report{
			Title:      kind.ChartTitle(base),
			Subtitle:   report.Subtitle,
			Chart:      series,
			ChartName:  report.ChartName,
			ChartImage: chartPNG,
			Placement:  opts.Placement,
			LogoPath:   opts.LogoPath,
			Landscape:  true,
		}
	default:
		report.Chart = series
		report.ChartImage = chartPNG
	}

	err := g.stage(ctx, kind.ID, StageLayout, func(context.Context) error {
		engine := layout.NewEngine(g.renderer.TableGeometry(report), g.policy,
			g.renderer.CellMetrics(), g.renderer.HeaderMetrics())
		plan := engine.Plan(table)
		report.Layout = &plan
		return nil
	})
	if err != nil {
		return nil, err
	}

	docs := []domain.Report{report}
	if chartDoc != nil {
		docs = append(docs, *chartDoc)
	}
	return docs, nil
}

func (g *Generator) renderDocument(ctx context.Context, id domain.ReportKind, doc domain.Report, path string, result *Result) error {
	return g.stage(ctx, id, StageRender, func(context.Context) error {
		_, err := g.manager.WriteAtomic(path, func(w io.Writer) error {
			out, err := g.renderer.Render(doc, w)
			result.Pages += out.Pages
			result.Warnings = append(result.Warnings, out.Warnings...)
			return err
		})
		if err != nil {
			var appErr *apperrors.AppError
			if !apperrors.As(err, &appErr) {
				err = apperrors.NewStorageError("failed to write report", err).WithContext("path", path)
			}
			return err
		}
		result.Outputs = append(result.Outputs, path)
		return nil
	})
}

// stage runs fn inside a span and records its duration
func (g *Generator) stage(ctx context.Context, id domain.ReportKind, name string, fn func(context.Context) error) error {
	ctx, span := g.tracer.TraceStage(ctx, id, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	g.tracer.RecordStageCompletion(span, duration, err)
	g.metrics.RecordStage(ctx, string(id), name, duration, err != nil)
	return err
}

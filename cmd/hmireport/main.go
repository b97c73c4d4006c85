// Package main provides the hmireport command line tool.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hmireport/internal/config"
	apperrors "hmireport/internal/errors"
	"hmireport/internal/infrastructure"
	"hmireport/internal/reports"
	"hmireport/pkg/contracts"
	"hmireport/pkg/contracts/domain"
)

// cliFlags holds every flag value. Unset flags leave the configuration alone.
type cliFlags struct {
	configPath    string
	dataDir       string
	outputDir     string
	logoPath      string
	limitRows     int
	dryRun        bool
	placement     string
	separateFiles bool
	exportCSV     bool

	csvPath string
	outPath string
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	f := &cliFlags{}
	root := &cobra.Command{
		Use:   "hmireport",
		Short: "Turn HMI data-logger exports into printable PDF reports",
		Long: `hmireport finds the newest ALARM, OPERLOG or BATCH export in a data
directory and renders it as a paginated PDF table. Batch reports also carry
a temperature trend chart.`,
		Version:       contracts.GetFullVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Configuration file (default: hmireport.yaml or configs/hmireport.yaml)")
	pf.StringVar(&f.dataDir, "data-dir", "", "Directory searched for exports")
	pf.StringVar(&f.outputDir, "output-dir", "", "Directory reports are written to")
	pf.StringVar(&f.logoPath, "logo", "", "Logo image printed in the page header")
	pf.IntVar(&f.limitRows, "limit-rows", 0, "Keep at most this many data rows (0 keeps all)")
	pf.BoolVar(&f.dryRun, "dry-run", false, "Summarize the input without writing anything")
	pf.StringVar(&f.placement, "chart-placement", "", "Chart position relative to the table: before or after")
	pf.BoolVar(&f.separateFiles, "separate-files", false, "Write the chart as its own PDF")
	pf.BoolVar(&f.exportCSV, "export-csv", false, "Also write the normalized table as CSV")

	for _, kind := range []struct {
		id    domain.ReportKind
		short string
	}{
		{domain.ReportKindAlarm, "Generate the alarm report"},
		{domain.ReportKindOperlog, "Generate the operator log report from the latest dated folder"},
		{domain.ReportKindBatch, "Generate the batch report with its temperature chart"},
	} {
		root.AddCommand(newKindCommand(kind.id, kind.short, f))
	}
	root.AddCommand(newAllCommand(f))
	return root
}

func newKindCommand(id domain.ReportKind, short string, f *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(id),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, f, func(ctx context.Context, a *app, opts reports.Options) error {
				opts.CSVPath = f.csvPath
				opts.OutputPath = f.outPath

				result, err := a.generator.Run(ctx, id, opts)
				if err != nil {
					return err
				}
				if result.Summary != nil {
					return reports.PrintSummary(cmd.OutOrStdout(), result.Summary)
				}
				printResult(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "Use this export instead of searching the data directory")
	cmd.Flags().StringVar(&f.outPath, "out", "", "Write the report to this PDF path")
	return cmd
}

func newAllCommand(f *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Generate every report kind found in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, f, func(ctx context.Context, a *app, opts reports.Options) error {
				summary, err := a.generator.RunAll(ctx, opts)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, o := range summary.Outcomes {
					switch {
					case o.Skipped:
						fmt.Fprintf(out, "[%s] skipped: no input\n", o.Kind)
					case o.Err != nil:
						fmt.Fprintf(out, "[%s] failed: %v\n", o.Kind, o.Err)
					case o.Result.Summary != nil:
						if err := reports.PrintSummary(out, o.Result.Summary); err != nil {
							return err
						}
					default:
						printResult(out, o.Result)
					}
				}
				fmt.Fprintf(out, "%d succeeded, %d failed, %d skipped\n",
					summary.Succeeded(), summary.Failed(), summary.Skipped())

				if summary.Failed() > 0 {
					return fmt.Errorf("%d report(s) failed", summary.Failed())
				}
				if summary.Succeeded() == 0 {
					return apperrors.NewNotFoundError("ALARM/OPERLOG/BATCH exports", opts.DataDir)
				}
				return nil
			})
		},
	}
}

func printResult(w io.Writer, r *reports.Result) {
	for _, path := range r.Outputs {
		fmt.Fprintf(w, "[%s] wrote %s\n", r.Kind, path)
	}
	fmt.Fprintf(w, "[%s] %d row(s), %d page(s) from %s\n", r.Kind, r.Rows, r.Pages, r.Source.Path)
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "[%s] warning: %s\n", r.Kind, warning)
	}
}

// app holds what a command needs for one invocation
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	generator *reports.Generator
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize logger", err)
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize telemetry", err)
	}
	metrics, err := infrastructure.NewReportMetrics(providers.Meter)
	if err != nil {
		logger.Warn("Run metrics disabled", slog.String("error", err.Error()))
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		providers: providers,
		generator: reports.NewGenerator(cfg, metrics, logger),
	}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.providers.Shutdown(ctx); err != nil {
		a.logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}

// options overlays the flags the user actually set onto the configured defaults
func (f *cliFlags) options(cmd *cobra.Command, cfg *config.Config) (reports.Options, error) {
	opts := reports.OptionsFromConfig(cfg)
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		opts.DataDir = f.dataDir
	}
	if flags.Changed("output-dir") {
		opts.OutputDir = f.outputDir
	}
	if flags.Changed("logo") {
		opts.LogoPath = f.logoPath
	}
	if flags.Changed("chart-placement") {
		placement := domain.ChartPlacement(f.placement)
		if !placement.Valid() {
			return opts, apperrors.NewAppValidationError(
				fmt.Sprintf("invalid --chart-placement %q: want %q or %q", f.placement, domain.ChartBeforeTable, domain.ChartAfterTable))
		}
		opts.Placement = placement
	}
	if flags.Changed("separate-files") {
		opts.SeparateFiles = f.separateFiles
	}
	opts.RowLimit = f.limitRows
	opts.DryRun = f.dryRun
	opts.ExportCSV = f.exportCSV
	return opts, nil
}

func withApp(cmd *cobra.Command, f *cliFlags, run func(context.Context, *app, reports.Options) error) error {
	a, err := newApp(f.configPath)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := infrastructure.EnsureTraceID(cmd.Context())
	a.logger.InfoContext(ctx, "Starting "+config.AppName,
		slog.String("command", cmd.Name()),
		slog.String("version", contracts.GetVersionString()))
	opts, err := f.options(cmd, a.cfg)
	if err != nil {
		return err
	}
	return run(ctx, a, opts)
}

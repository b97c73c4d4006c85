package reports

import (
	"fmt"

	"hmireport/internal/config"
	apperrors "hmireport/internal/errors"
	"hmireport/pkg/contracts/domain"
)

// Options are the per-run settings of a report. Empty paths fall back to
// discovery under DataDir and the configured output directory.
type Options struct {
	DataDir    string `validate:"required_without=CSVPath"`
	CSVPath    string
	OutputPath string `validate:"omitempty,endswith=.pdf"`
	OutputDir  string
	LogoPath   string

	RowLimit      int `validate:"gte=0"`
	DryRun        bool
	Placement     domain.ChartPlacement `validate:"oneof=before after"`
	SeparateFiles bool
	ExportCSV     bool
	// Landscape turns the table document sideways. Chart documents are
	// always landscape.
	Landscape bool

	ReportSuffix string `validate:"required"`
	ChartSuffix  string `validate:"required,nefield=ReportSuffix"`
	ExportSuffix string `validate:"required"`
}

// OptionsFromConfig seeds run options from the loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DataDir:       cfg.Paths.DataDir,
		OutputDir:     cfg.Paths.OutputDir,
		LogoPath:      cfg.Paths.LogoPath,
		Placement:     domain.ChartPlacement(cfg.Report.ChartPlacement),
		SeparateFiles: cfg.Report.SeparateFiles,
		Landscape:     cfg.Report.Landscape,
		ReportSuffix:  cfg.Report.ReportSuffix,
		ChartSuffix:   cfg.Report.ChartSuffix,
		ExportSuffix:  cfg.Report.ExportSuffix,
	}
}

// Validate checks the options with the shared validator
func (o Options) Validate() error {
	if err := config.ValidateStruct(o); err != nil {
		return apperrors.NewAppValidationError(fmt.Sprintf("invalid report options: %v", err))
	}
	return nil
}

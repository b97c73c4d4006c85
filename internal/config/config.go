package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogoPath  string `yaml:"logo_path" envconfig:"LOGO_PATH"`
}

// ReportConfig controls page geometry, fonts and output naming
type ReportConfig struct {
	PageSize       string  `yaml:"page_size" envconfig:"PAGE_SIZE" validate:"oneof=A4 A3 Letter Legal"`
	Landscape      bool    `yaml:"landscape" envconfig:"LANDSCAPE"`
	MarginMM       float64 `yaml:"margin_mm" envconfig:"MARGIN_MM" validate:"gte=5,lte=40"`
	LogoHeightMM   float64 `yaml:"logo_height_mm" envconfig:"LOGO_HEIGHT_MM" validate:"gte=0,lte=60"`
	FontSize       float64 `yaml:"font_size" envconfig:"FONT_SIZE" validate:"gte=5,lte=16"`
	HeaderFontSize float64 `yaml:"header_font_size" envconfig:"HEADER_FONT_SIZE" validate:"gte=5,lte=16"`
	TitleFontSize  float64 `yaml:"title_font_size" envconfig:"TITLE_FONT_SIZE" validate:"gte=8,lte=30"`
	CellPaddingMM  float64 `yaml:"cell_padding_mm" envconfig:"CELL_PADDING_MM" validate:"gte=0,lte=5"`
	MinColumnMM    float64 `yaml:"min_column_mm" envconfig:"MIN_COLUMN_MM" validate:"gt=0"`
	MaxColumnMM    float64 `yaml:"max_column_mm" envconfig:"MAX_COLUMN_MM" validate:"gtfield=MinColumnMM"`
	WidthSampleRow int     `yaml:"width_sample_rows" envconfig:"WIDTH_SAMPLE_ROWS" validate:"gte=0"`
	ChartPlacement string  `yaml:"chart_placement" envconfig:"CHART_PLACEMENT" validate:"oneof=before after"`
	SeparateFiles  bool    `yaml:"separate_files" envconfig:"SEPARATE_FILES"`
	ReportSuffix   string  `yaml:"report_suffix" envconfig:"REPORT_SUFFIX" validate:"required"`
	ChartSuffix    string  `yaml:"chart_suffix" envconfig:"CHART_SUFFIX" validate:"required,nefield=ReportSuffix"`
	ExportSuffix   string  `yaml:"export_suffix" envconfig:"EXPORT_SUFFIX" validate:"required"`
}

// TelemetryConfig controls tracing and the metrics text file
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Environment   string `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Load builds the configuration from defaults, an optional YAML file and
// HMIREPORT_* environment variables, in increasing precedence. An explicit
// configPath must exist; otherwise the usual locations are searched.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = getConfigFilePath()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	if configPath != "" {
		if err := loadFromFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment overrides whatever the file set. No default tags are used,
	// so unset variables leave file values alone.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		ConfigFileName,
		filepath.Join("configs", ConfigFileName),
	}
	if home, err := os.UserConfigDir(); err == nil {
		locations = append(locations, filepath.Join(home, "hmireport", ConfigFileName))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Validate checks every section against its struct tags
func (c *Config) Validate() error {
	return ValidateStruct(c)
}

// ValidateStruct validates v with the shared validator and flattens field
// errors into one readable message.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatValidationError(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

var validate = validator.New()

// formatValidationError formats a validation error message
func formatValidationError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ResolveOutputDir returns the directory reports are written to for an
// input file. A configured outputDir always wins; otherwise reports go next
// to the input when nextToInput is set, or to the working directory.
func ResolveOutputDir(outputDir, inputPath string, nextToInput bool) string {
	switch {
	case outputDir != "":
		return outputDir
	case nextToInput:
		return filepath.Dir(inputPath)
	default:
		return "."
	}
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir:  DefaultDataDir,
			LogoPath: DefaultLogoPath,
		},
		Report: ReportConfig{
			PageSize:       DefaultPageSize,
			MarginMM:       DefaultMarginMM,
			LogoHeightMM:   DefaultLogoHeightMM,
			FontSize:       DefaultFontSize,
			HeaderFontSize: DefaultHeaderFontSize,
			TitleFontSize:  DefaultTitleFontSize,
			CellPaddingMM:  DefaultCellPaddingMM,
			MinColumnMM:    DefaultMinColumnMM,
			MaxColumnMM:    DefaultMaxColumnMM,
			WidthSampleRow: DefaultWidthSampleRow,
			ChartPlacement: "after",
			ReportSuffix:   DefaultReportSuffix,
			ChartSuffix:    DefaultChartSuffix,
			ExportSuffix:   DefaultExportSuffix,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
			Environment:   "production",
		},
	}
}

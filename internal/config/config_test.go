package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "file overrides defaults",
			file: `
paths:
  data_dir: /srv/exports
  logo_path: /srv/exports/logo.png
report:
  chart_placement: before
  separate_files: true
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/exports", cfg.Paths.DataDir)
				assert.Equal(t, "/srv/exports/logo.png", cfg.Paths.LogoPath)
				assert.Equal(t, "before", cfg.Report.ChartPlacement)
				assert.True(t, cfg.Report.SeparateFiles)
				// untouched sections keep defaults
				assert.Equal(t, DefaultPageSize, cfg.Report.PageSize)
				assert.Equal(t, DefaultReportSuffix, cfg.Report.ReportSuffix)
				assert.Equal(t, "info", cfg.Logging.Level)
			},
		},
		{
			name: "env overrides file",
			env: map[string]string{
				"HMIREPORT_PATHS_DATA_DIR":         "/from/env",
				"HMIREPORT_LOGGING_LEVEL":          "debug",
				"HMIREPORT_REPORT_FONT_SIZE":       "9.5",
				"HMIREPORT_TELEMETRY_METRICS_FILE": "/tmp/hmireport.prom",
			},
			file: `
paths:
  data_dir: /from/file
logging:
  level: warn
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/from/env", cfg.Paths.DataDir)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 9.5, cfg.Report.FontSize)
				assert.Equal(t, "/tmp/hmireport.prom", cfg.Telemetry.MetricsFile)
			},
		},
		{
			name: "invalid chart placement",
			file: `
report:
  chart_placement: sideways
`,
			wantErr: "ChartPlacement must be one of [before after]",
		},
		{
			name: "max column narrower than min",
			file: `
report:
  min_column_mm: 40
  max_column_mm: 20
`,
			wantErr: "MaxColumnMM must be greater than MinColumnMM",
		},
		{
			name:    "malformed yaml",
			file:    "report: [unterminated",
			wantErr: "failed to load config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfigFile(t, tt.file)

			cfg, err := Load(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "after", cfg.Report.ChartPlacement)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
}

func TestValidate_LogFileRequiredForFileOutput(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FilePath is required")
}

func TestResolveOutputDir(t *testing.T) {
	input := filepath.Join("data", "250625", "OPERLOG.csv")

	assert.Equal(t, ".", ResolveOutputDir("", input, false))
	assert.Equal(t, filepath.Join("data", "250625"), ResolveOutputDir("", input, true))
	assert.Equal(t, "out", ResolveOutputDir("out", input, true))
}

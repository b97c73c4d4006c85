package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmireport/internal/shared/testutil"
	"hmireport/pkg/contracts"
)

func setupDataDir(t *testing.T) (string, string) {
	t.Helper()
	dataDir, outDir := t.TempDir(), t.TempDir()
	testutil.WriteFixture(t, dataDir, "ALARM_250625.csv", testutil.AlarmExport(2))
	return dataDir, outDir
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_KindCommand(t *testing.T) {
	dataDir, outDir := setupDataDir(t)

	code, stdout, stderr := run(t, "alarm", "--data-dir", dataDir, "--output-dir", outDir, "--logo", "")
	require.Equal(t, 0, code, stderr)

	report := filepath.Join(outDir, "ALARM_250625_report.pdf")
	assert.Contains(t, stdout, "[alarm] wrote "+report)
	assert.Contains(t, stdout, "2 row(s), 1 page(s)")
	assert.FileExists(t, report)
}

func TestExecute_ExplicitPaths(t *testing.T) {
	dataDir, outDir := setupDataDir(t)
	out := filepath.Join(outDir, "mine.pdf")

	code, _, stderr := run(t, "alarm", "--csv", filepath.Join(dataDir, "ALARM_250625.csv"), "--out", out, "--logo", "")
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, out)
}

func TestExecute_Failures(t *testing.T) {
	dataDir, outDir := setupDataDir(t)

	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"no input", []string{"batch", "--data-dir", dataDir, "--output-dir", outDir}, "NOT_FOUND"},
		{"bad placement", []string{"alarm", "--data-dir", dataDir, "--chart-placement", "middle"}, `invalid --chart-placement "middle"`},
		{"missing config file", []string{"alarm", "--config", filepath.Join(dataDir, "absent.yaml")}, "CONFIG"},
		{"unknown command", []string{"summary"}, "unknown command"},
		{"stray argument", []string{"alarm", "extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestExecute_Version(t *testing.T) {
	code, stdout, _ := run(t, "--version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, contracts.GetVersionString())
	assert.Contains(t, stdout, "commit: "+contracts.GitCommit)
}

func TestExecute_DryRun(t *testing.T) {
	dataDir, outDir := setupDataDir(t)

	code, stdout, stderr := run(t, "alarm", "--data-dir", dataDir, "--output-dir", outDir, "--dry-run")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "ALARM_250625.csv")
	assert.Contains(t, stdout, "comma")
	assert.Contains(t, stdout, "Tank 1 level high")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExecute_All(t *testing.T) {
	dataDir, outDir := setupDataDir(t)

	code, stdout, stderr := run(t, "all", "--data-dir", dataDir, "--output-dir", outDir, "--logo", "", "--export-csv")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "[batch] skipped: no input")
	assert.Contains(t, stdout, "[operlog] skipped: no input")
	assert.Contains(t, stdout, "1 succeeded, 0 failed, 2 skipped")
	assert.FileExists(t, filepath.Join(outDir, "ALARM_250625_normalized.csv"))

	empty := t.TempDir()
	code, stdout, _ = run(t, "all", "--data-dir", empty, "--output-dir", outDir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "0 succeeded, 0 failed, 3 skipped")
}

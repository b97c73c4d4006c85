package testutil

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)
		AssertLogContains(t, handler, slog.LevelDebug, "debug")
	})

	t.Run("derived handlers share records and keep attrs", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		child := logger.With(slog.String("component", "reports"))

		child.Warn("column missing", slog.String("kind", "MISSING_COLUMN"))
		logger.WithGroup("pdf").Info("rendered", slog.Int("pages", 3))

		records := handler.GetRecords()
		require.Len(t, records, 2)
		assert.Equal(t, "reports", records[0].Attrs["component"])
		assert.Equal(t, int64(3), records[1].Attrs["pdf.pages"])
		assert.Equal(t, []string{"MISSING_COLUMN"}, handler.WarningKinds())

		handler.Clear()
		assert.Zero(t, handler.Count())
		AssertNoErrors(t, handler)
	})
}

func TestFixtures(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(BatchExport(14)), "\n")
	require.Len(t, lines, 15)
	assert.Equal(t, BatchHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[13], "6/25/2025,11:00:00,"), lines[13])

	assert.Equal(t, AlarmHeader+"\n", AlarmExport(0))
	assert.Contains(t, OperlogExport(2), "Setpoint tank 2,Manual,21,26")

	dir := t.TempDir()
	path := WriteFixture(t, dir, filepath.Join("250625", "OPERLOG.csv"), OperlogExport(1))
	assert.FileExists(t, path)
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "not found", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "empty data", errType: ErrTypeEmptyData, expected: "EMPTY_DATA"},
		{name: "missing column", errType: ErrTypeMissingColumn, expected: "MISSING_COLUMN"},
		{name: "transform parse", errType: ErrTypeTransformParse, expected: "TRANSFORM_PARSE"},
		{name: "asset missing", errType: ErrTypeAssetMissing, expected: "ASSET_MISSING"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    &AppError{Type: ErrTypeParsing, Message: "bad header"},
			wantMessage: "[PARSING] bad header",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "failed to write report",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[STORAGE] failed to write report: disk full",
		},
		{
			name:        "not found carries pattern",
			appError:    NewNotFoundError("ALARM", "/data"),
			wantMessage: `[NOT_FOUND] no file matching "ALARM" in /data`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_IsMatchesType(t *testing.T) {
	err := fmt.Errorf("locate: %w", NewNotFoundError("BATCH", "data"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrEmptyData))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "BATCH", appErr.Context["pattern"])
	assert.Equal(t, "data", appErr.Context["directory"])
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewStorageError("cannot open", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{name: "nil", err: nil, fatal: false},
		{name: "not found", err: NewNotFoundError("x", "y"), fatal: true},
		{name: "empty data", err: NewEmptyDataError("a.csv"), fatal: false},
		{name: "wrapped empty data", err: fmt.Errorf("ingest: %w", NewEmptyDataError("a.csv")), fatal: false},
		{name: "plain error", err: errors.New("boom"), fatal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}

func TestMissingColumnsNote(t *testing.T) {
	assert.Equal(t, "", MissingColumnsNote(nil))
	assert.Equal(t, "Note: missing column: Alarm Status", MissingColumnsNote([]string{"Alarm Status"}))
	assert.Equal(t, "Note: missing columns: User, Trigger", MissingColumnsNote([]string{"User", "Trigger"}))
}

func TestWarningConstructors(t *testing.T) {
	w := MissingColumnWarning("Alarm Status")
	assert.Equal(t, ErrTypeMissingColumn, w.Kind)
	assert.Equal(t, "[MISSING_COLUMN] missing column: Alarm Status", w.String())

	w = AssetMissingWarning("logo.png", errors.New("no such file"))
	assert.Equal(t, ErrTypeAssetMissing, w.Kind)
	assert.Contains(t, w.Message, "logo.png")
	assert.Contains(t, w.Message, "no such file")

	w = TransformParseWarning("Date", 2)
	assert.Equal(t, "2 value(s) in Date kept as-is", w.Message)
}

func TestRecoveredWarning(t *testing.T) {
	w := RecoveredWarning(fmt.Errorf("ingest: %w", NewEmptyDataError("ALARM_1.csv")))
	assert.Equal(t, ErrTypeEmptyData, w.Kind)
	assert.Equal(t, "ALARM_1.csv contains no data rows", w.Message)

	w = RecoveredWarning(errors.New("plain"))
	assert.Equal(t, ErrTypeParsing, w.Kind)
	assert.Equal(t, "plain", w.Message)
}

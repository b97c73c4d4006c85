package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
)

// As and Is re-export the standard helpers so callers importing this
// package under the name errors keep them.
var (
	As = stderrors.As
	Is = stderrors.Is
)

// Warning is a recovered condition attached to a report run.
type Warning struct {
	Kind    ErrorType `json:"kind"`
	Message string    `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// LogValue lets warnings be logged as structured groups.
func (w Warning) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(w.Kind)),
		slog.String("message", w.Message),
	)
}

// MissingColumnWarning records a required column absent from the source.
func MissingColumnWarning(column string) Warning {
	return Warning{Kind: ErrTypeMissingColumn, Message: "missing column: " + column}
}

// TransformParseWarning records cells of a column left verbatim because
// they did not parse.
func TransformParseWarning(column string, count int) Warning {
	return Warning{Kind: ErrTypeTransformParse, Message: fmt.Sprintf("%d value(s) in %s kept as-is", count, column)}
}

// AssetMissingWarning records an optional asset that could not be used.
func AssetMissingWarning(path string, cause error) Warning {
	msg := "asset not available: " + path
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return Warning{Kind: ErrTypeAssetMissing, Message: msg}
}

// RecoveredWarning turns a non-fatal error into a warning of the same kind.
// Errors that are not AppErrors are reported as parsing warnings.
func RecoveredWarning(err error) Warning {
	var appErr *AppError
	if As(err, &appErr) {
		return Warning{Kind: appErr.Type, Message: appErr.Message}
	}
	return Warning{Kind: ErrTypeParsing, Message: err.Error()}
}

// MissingColumnsNote renders the note printed under a report title.
func MissingColumnsNote(columns []string) string {
	switch len(columns) {
	case 0:
		return ""
	case 1:
		return "Note: missing column: " + columns[0]
	default:
		return "Note: missing columns: " + strings.Join(columns, ", ")
	}
}

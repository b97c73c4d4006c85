package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound       ErrorType = "NOT_FOUND"
	ErrTypeEmptyData      ErrorType = "EMPTY_DATA"
	ErrTypeMissingColumn  ErrorType = "MISSING_COLUMN"
	ErrTypeTransformParse ErrorType = "TRANSFORM_PARSE"
	ErrTypeAssetMissing   ErrorType = "ASSET_MISSING"
	ErrTypeParsing        ErrorType = "PARSING"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeValidation     ErrorType = "VALIDATION"
	ErrTypeConfig         ErrorType = "CONFIG"
)

// Sentinels for errors.Is checks. They match any AppError of the same type.
var (
	ErrNotFound  = &AppError{Type: ErrTypeNotFound, Message: "input not found"}
	ErrEmptyData = &AppError{Type: ErrTypeEmptyData, Message: "no data rows"}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on error type so sentinels compare equal to specific instances.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewNotFoundError reports that no input matched the search. It is fatal
// for a single report run.
func NewNotFoundError(pattern, dir string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("no file matching %q in %s", pattern, dir), nil).
		WithContext("pattern", pattern).
		WithContext("directory", dir)
}

// NewEmptyDataError reports that an input had a header but no data rows.
func NewEmptyDataError(source string) *AppError {
	return NewAppError(ErrTypeEmptyData, fmt.Sprintf("%s contains no data rows", source), nil).
		WithContext("source", source)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsFatal reports whether err must stop a report run. Only recovered
// conditions are non-fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeEmptyData, ErrTypeMissingColumn, ErrTypeTransformParse, ErrTypeAssetMissing:
			return false
		}
	}
	return true
}

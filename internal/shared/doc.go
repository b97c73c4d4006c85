// Package shared holds helpers used by several packages.
//
// The testutil subpackage provides a capturing slog handler for asserting
// on structured log output and builders for ALARM, OPERLOG and BATCH export
// fixtures. Nothing in it is imported by production code.
package shared

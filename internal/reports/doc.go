// Package reports assembles the ALARM, OPERLOG and BATCH documents.
//
// A Generator runs the pipeline for one kind: it locates the newest export,
// ingests and normalizes it, lays the table out, builds the temperature chart
// where the kind has one and renders the PDF. Dry runs stop after
// normalization and return a Summary instead. RunAll processes every kind
// from one data directory in turn.
//
// Each stage runs inside an OpenTelemetry span and reports its duration to
// the run metrics.
package reports

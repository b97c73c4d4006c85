// Package dataprocessing turns HMI/SCADA export files into display-ready
// tables.
//
// # Architecture
//
// The package is organized into two stages:
//
// 1. Ingestor: reads a CSV-like export (or an .xlsx workbook) of unknown
// encoding and delimiter, skips the preamble above the header and returns a
// rectangular RawTable.
// 2. Normalizer: maps the raw header onto the logical columns a report
// declares and applies per-column transforms.
//
// # Usage
//
//	ingestor := dataprocessing.NewIngestor(dataprocessing.DefaultIngestOptions(), logger)
//	raw, err := ingestor.ParseFile("data/ALARM_250625.csv")
//	if err != nil && apperrors.IsFatal(err) {
//	    return err
//	}
//	result := dataprocessing.NewNormalizer(logger).Normalize(raw, specs, nil)
//
// # Data Flow
//
//	bytes → decode (UTF-8, UTF-16, Windows-1252) → delimiter → header → RawTable
//	RawTable → column matching → transforms → NormalizedTable
//
// # Error Handling
//
// Nothing below a fatal read error aborts. Short rows are padded, long rows
// truncated with a warning, a missing column is recorded on the table and a
// value a transform cannot parse is kept verbatim. A header without rows is
// returned together with an EMPTY_DATA error.
//
// # Testing
//
// Use table-driven tests when adding new transforms or export quirks.
package dataprocessing

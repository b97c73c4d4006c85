// Package exporter writes normalized report tables as CSV files.
//
// CSVWriter resolves relative paths against the output directory and can
// prefix the file with a UTF-8 BOM so Excel detects the encoding.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(outputDir, logger)
//	path, err := writer.WriteTable("ALARM_250625_normalized.csv", table)
package exporter

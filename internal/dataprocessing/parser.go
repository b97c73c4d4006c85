package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"hmireport/internal/config"
	apperrors "hmireport/internal/errors"
	"hmireport/pkg/contracts/domain"
)

// maxRowWarnings caps the per-row warnings kept on a RawTable
const maxRowWarnings = 20

// IngestOptions tunes the tolerant reader
type IngestOptions struct {
	// RowLimit keeps at most this many data rows; zero means all.
	RowLimit int
	// HeaderHint marks the header line by the prefix of its first cell.
	HeaderHint string
}

// DefaultIngestOptions returns the options used by the report front-ends
func DefaultIngestOptions() IngestOptions {
	return IngestOptions{HeaderHint: "Date"}
}

// Ingestor reads loosely formatted HMI exports into rectangular tables.
type Ingestor struct {
	opts   IngestOptions
	logger *slog.Logger
}

// NewIngestor creates an ingestor
func NewIngestor(opts IngestOptions, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{opts: opts, logger: logger}
}

// ParseFile reads a CSV-like export or an .xlsx workbook. When the file has a
// header but no data rows, the header-only table is returned together with
// an EMPTY_DATA error so callers can still render a placeholder.
func (in *Ingestor) ParseFile(path string) (domain.RawTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return in.parseWorkbook(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RawTable{}, apperrors.NewStorageError("failed to read input", err).WithContext("path", path)
	}
	return in.Parse(path, data)
}

// Parse ingests CSV-like bytes. source names the input in messages.
func (in *Ingestor) Parse(source string, data []byte) (domain.RawTable, error) {
	text, encoding := decodeText(data)
	delim := detectDelimiter(nonEmptyLines(text, config.DelimiterSampleLines))

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var records [][]string
	var lines []int
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.RawTable{}, apperrors.NewParsingError("failed to read "+source, err)
		}
		line, _ := r.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	table := in.build(source, records, lines)
	table.Delimiter = delim
	table.Encoding = encoding
	return in.finish(table)
}

// parseWorkbook reads the first sheet of an .xlsx export
func (in *Ingestor) parseWorkbook(path string) (domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.RawTable{}, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return in.finish(domain.RawTable{Source: path, Encoding: EncodingWorkbook})
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.RawTable{}, apperrors.NewParsingError("failed to read sheet "+sheets[0], err)
	}

	// GetRows keeps blank rows, so sheet row numbers are the indexes
	var records [][]string
	var lines []int
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		records = append(records, row)
		lines = append(lines, i+1)
	}

	in.logger.Debug("Read workbook sheet",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(records)))

	table := in.build(path, records, lines)
	table.Encoding = EncodingWorkbook
	return in.finish(table)
}

// build locates the header and rectangularizes the rows below it
func (in *Ingestor) build(source string, records [][]string, lines []int) domain.RawTable {
	table := domain.RawTable{Source: source}
	if len(records) == 0 {
		return table
	}

	h := findHeader(records, in.opts.HeaderHint, config.HeaderScanLines)
	header := records[h][:recordWidth(records[h])]
	table.Header = make([]string, len(header))
	for i, cell := range header {
		table.Header[i] = cleanCell(cell)
	}
	table.HeaderLine = lines[h] - 1

	width := len(table.Header)
	if width == 0 {
		return table
	}
	dropped := 0
	for k := h + 1; k < len(records); k++ {
		rec := records[k]
		if isBlank(rec) {
			continue
		}
		if in.opts.RowLimit > 0 && len(table.Rows) >= in.opts.RowLimit {
			break
		}

		row := make([]string, width)
		for i := 0; i < width && i < len(rec); i++ {
			row[i] = cleanCell(rec[i])
		}
		if len(rec) > width && !isBlank(rec[width:]) {
			dropped++
			if len(table.Warnings) < maxRowWarnings {
				table.Warnings = append(table.Warnings,
					fmt.Sprintf("line %d: %d extra field(s) dropped", lines[k], len(rec)-width))
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if dropped > maxRowWarnings {
		table.Warnings = append(table.Warnings,
			fmt.Sprintf("%d more row(s) had extra fields", dropped-maxRowWarnings))
	}

	return table
}

// finish logs the result and flags tables without data
func (in *Ingestor) finish(table domain.RawTable) (domain.RawTable, error) {
	for _, w := range table.Warnings {
		in.logger.Warn("Row truncated", slog.String("source", table.Source), slog.String("detail", w))
	}

	in.logger.Info("Ingested export",
		slog.String("source", table.Source),
		slog.String("encoding", table.Encoding),
		slog.String("delimiter", DelimiterName(table.Delimiter)),
		slog.Int("header_line", table.HeaderLine),
		slog.Int("columns", len(table.Header)),
		slog.Int("rows", len(table.Rows)))

	if len(table.Rows) == 0 {
		return table, apperrors.NewEmptyDataError(table.Source)
	}
	return table, nil
}

// cleanCell trims whitespace and surrounding quotes and blanks out the
// placeholders some exporters write for empty values.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	switch strings.ToLower(s) {
	case "nan", "'-", "'":
		return ""
	}
	return s
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

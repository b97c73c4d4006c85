package reports

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"hmireport/internal/dataprocessing"
	"hmireport/internal/files"
	"hmireport/pkg/contracts/domain"
)

// previewRows is the number of rows a dry run shows
const previewRows = 5

// Summary is what a dry run reports about an input without rendering it
type Summary struct {
	Kind       domain.ReportKind
	Source     files.FileInfo
	Encoding   string
	Delimiter  string
	HeaderLine int
	Rows       int
	Columns    []domain.Column
	Missing    []string
	Period     string
	Preview    [][]string
}

func summarize(src files.FileInfo, raw domain.RawTable, table domain.NormalizedTable, kind Kind) *Summary {
	s := &Summary{
		Kind:       kind.ID,
		Source:     src,
		Encoding:   raw.Encoding,
		Delimiter:  dataprocessing.DelimiterName(raw.Delimiter),
		HeaderLine: raw.HeaderLine + 1,
		Rows:       len(table.Rows),
		Columns:    table.Columns,
		Missing:    table.Missing,
		Period:     PeriodSubtitle(table),
	}
	records := table.Records()
	if len(records) > previewRows {
		records = records[:previewRows]
	}
	s.Preview = records
	return s
}

// PrintSummary writes a dry-run summary as aligned text
func PrintSummary(w io.Writer, s *Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Kind:\t%s\n", s.Kind)
	fmt.Fprintf(tw, "File:\t%s\n", s.Source.Path)
	fmt.Fprintf(tw, "Size:\t%s\n", humanize.Bytes(uint64(s.Source.Size)))
	if !s.Source.ModTime.IsZero() {
		fmt.Fprintf(tw, "Modified:\t%s (%s)\n", s.Source.ModTime.Format("2006-01-02 15:04"), humanize.Time(s.Source.ModTime))
	}
	fmt.Fprintf(tw, "Encoding:\t%s\n", orNone(s.Encoding))
	fmt.Fprintf(tw, "Delimiter:\t%s\n", orNone(s.Delimiter))
	fmt.Fprintf(tw, "Header line:\t%d\n", s.HeaderLine)
	fmt.Fprintf(tw, "Rows:\t%s\n", humanize.Comma(int64(s.Rows)))

	labels := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		labels[i] = c.Label
	}
	fmt.Fprintf(tw, "Columns:\t%s\n", orNone(strings.Join(labels, ", ")))
	fmt.Fprintf(tw, "Missing:\t%s\n", orNone(strings.Join(s.Missing, ", ")))
	fmt.Fprintf(tw, "Period:\t%s\n", s.Period)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Preview) == 0 || len(labels) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nFirst %d row(s):\n", len(s.Preview))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(labels, "\t"))
	for _, record := range s.Preview {
		fmt.Fprintln(tw, strings.Join(record, "\t"))
	}
	return tw.Flush()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package reports

import (
	"fmt"
	"strings"

	"hmireport/internal/dataprocessing"
	"hmireport/pkg/contracts/domain"
)

const (
	periodLayout   = "02/01/2006 15:04"
	periodFormat   = "Starting time: %s - Ending time: %s"
	periodFallback = "Period not determinable"
)

// PeriodSubtitle describes the time span a table covers. It uses the
// earliest and latest parseable timestamps and falls back to the raw
// Date and Time text of the first and last rows.
func PeriodSubtitle(table domain.NormalizedTable) string {
	if start, end, ok := dataprocessing.Period(table); ok {
		return fmt.Sprintf(periodFormat, start.Format(periodLayout), end.Format(periodLayout))
	}
	if len(table.Rows) == 0 {
		return periodFallback
	}
	first := rawStamp(table.Rows[0])
	last := rawStamp(table.Rows[len(table.Rows)-1])
	if first == "" || last == "" {
		return periodFallback
	}
	return fmt.Sprintf(periodFormat, first, last)
}

func rawStamp(row domain.Row) string {
	return strings.TrimSpace(row[dataprocessing.ColumnDate] + " " + row[dataprocessing.ColumnTime])
}

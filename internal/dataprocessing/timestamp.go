package dataprocessing

import (
	"strings"
	"time"

	"hmireport/pkg/contracts/domain"
)

// Logical column names shared by every export family
const (
	ColumnDate = "Date"
	ColumnTime = "Time"
)

var timestampLayouts = []string{
	DisplayDateLayout + " 15:04:05",
	DisplayDateLayout + " 15:04",
	sourceDateLayout + " 15:04:05",
	sourceDateLayout + " 15:04",
	sourceDateLayout + " 3:04:05 PM",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
}

// ParseTimestamp combines a date cell and a time cell. The date may be in
// display form (DD/MM/YY) or one of the source forms it was converted from.
func ParseTimestamp(date, clock string) (time.Time, bool) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	value := date + " " + clock
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Period returns the earliest and latest parseable timestamps of the table
func Period(table domain.NormalizedTable) (time.Time, time.Time, bool) {
	var start, end time.Time
	found := false
	for _, row := range table.Rows {
		t, ok := ParseTimestamp(row[ColumnDate], row[ColumnTime])
		if !ok {
			continue
		}
		if !found || t.Before(start) {
			start = t
		}
		if !found || t.After(end) {
			end = t
		}
		found = true
	}
	return start, end, found
}

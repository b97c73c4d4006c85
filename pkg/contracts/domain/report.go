package domain

import "strings"

// ReportKind identifies one of the export families.
type ReportKind string

const (
	ReportKindAlarm   ReportKind = "alarm"
	ReportKindOperlog ReportKind = "operlog"
	ReportKindBatch   ReportKind = "batch"
)

// AllReportKinds lists the kinds in the order a full run processes them.
var AllReportKinds = []ReportKind{ReportKindBatch, ReportKindAlarm, ReportKindOperlog}

// ParseReportKind parses a kind name case-insensitively.
func ParseReportKind(s string) (ReportKind, bool) {
	k := ReportKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllReportKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Report is everything the renderer needs for one document. A nil Layout
// means the document has no table; an empty Chart means it has no chart.
type Report struct {
	Title     string        `json:"title"`
	Subtitle  string        `json:"subtitle,omitempty"`
	Note      string        `json:"note,omitempty"`
	Layout    *LayoutPlan   `json:"layout,omitempty"`
	Chart     []ChartSeries `json:"chart,omitempty"`
	ChartName string        `json:"chart_title,omitempty"`
	// ChartImage is the painted chart when it was drawn ahead of layout.
	ChartImage []byte         `json:"-"`
	Placement  ChartPlacement `json:"placement"`
	LogoPath   string         `json:"logo_path,omitempty"`
	NoData     bool           `json:"no_data"`
	Landscape  bool           `json:"landscape"`
}

// HasTable reports whether the document carries a table.
func (r Report) HasTable() bool {
	return r.Layout != nil && len(r.Layout.Rows) > 0
}

// HasChart reports whether the document carries a chart.
func (r Report) HasChart() bool {
	return len(r.Chart) > 0
}

package render

import "hmireport/pkg/contracts/domain"

// PageKind is what a document page carries.
type PageKind int

const (
	PageTable PageKind = iota
	PageChart
	PageNoData
)

func (k PageKind) String() string {
	switch k {
	case PageTable:
		return "table"
	case PageChart:
		return "chart"
	case PageNoData:
		return "no-data"
	default:
		return "unknown"
	}
}

// PlannedPage is one page of the document. Rows is set for table pages.
type PlannedPage struct {
	Kind   PageKind
	Number int
	Rows   domain.PageSlice
}

// DocumentPlan is the ordered page list produced before anything is drawn,
// so every footer can print the final page count.
type DocumentPlan struct {
	Pages []PlannedPage
}

// Total returns the number of pages.
func (p DocumentPlan) Total() int {
	return len(p.Pages)
}

// Paginate decides the page sequence of a report. A report without rows and
// without a chart becomes a single no-data page.
func Paginate(report domain.Report) DocumentPlan {
	var pages []PlannedPage
	if report.NoData || (!report.HasTable() && !report.HasChart()) {
		pages = append(pages, PlannedPage{Kind: PageNoData})
		return number(pages)
	}

	chartFirst := report.HasChart() && report.Placement != domain.ChartAfterTable
	if chartFirst {
		pages = append(pages, PlannedPage{Kind: PageChart})
	}
	if report.HasTable() {
		for _, slice := range report.Layout.Pages {
			pages = append(pages, PlannedPage{Kind: PageTable, Rows: slice})
		}
	}
	if report.HasChart() && !chartFirst {
		pages = append(pages, PlannedPage{Kind: PageChart})
	}
	return number(pages)
}

func number(pages []PlannedPage) DocumentPlan {
	for i := range pages {
		pages[i].Number = i + 1
	}
	return DocumentPlan{Pages: pages}
}

package domain

// PlannedColumn is a column with its final width.
type PlannedColumn struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Width float64 `json:"width"`
}

// PlannedRow holds the wrapped lines of every cell of one table row.
// Index is the absolute data row index; the header row uses -1.
type PlannedRow struct {
	Index  int        `json:"index"`
	Cells  [][]string `json:"cells"`
	Height float64    `json:"height"`
}

// Shaded reports whether the row gets the alternate fill. Shading follows
// the absolute row index, so it does not restart on a new page.
func (r PlannedRow) Shaded() bool {
	return r.Index >= 0 && r.Index%2 == 1
}

// LineCount is the number of lines of the tallest cell.
func (r PlannedRow) LineCount() int {
	n := 1
	for _, c := range r.Cells {
		if len(c) > n {
			n = len(c)
		}
	}
	return n
}

// PageSlice is the half-open range of rows [Start, End) placed on one page.
// Height includes the repeated header row.
type PageSlice struct {
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Height float64 `json:"height"`
}

// LayoutPlan is the deterministic result of table layout.
type LayoutPlan struct {
	Columns     []PlannedColumn `json:"columns"`
	Header      PlannedRow      `json:"header"`
	Rows        []PlannedRow    `json:"rows"`
	Pages       []PageSlice     `json:"pages"`
	LineHeight  float64         `json:"line_height"`
	HeaderLine  float64         `json:"header_line_height"`
	CellPadding float64         `json:"cell_padding"`
}

// PageCount returns the number of table pages.
func (p LayoutPlan) PageCount() int {
	return len(p.Pages)
}

// TotalWidth sums the column widths.
func (p LayoutPlan) TotalWidth() float64 {
	var w float64
	for _, c := range p.Columns {
		w += c.Width
	}
	return w
}

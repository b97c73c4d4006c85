package layout

import (
	"hmireport/pkg/contracts/domain"
)

// Geometry describes the table area of a page.
type Geometry struct {
	// ContentWidth is the page width between the margins.
	ContentWidth float64
	// BodyHeight is the height available to the table on every page, below
	// the page header and above the footer.
	BodyHeight float64
	// FirstPageReserve is taken from BodyHeight on the first page only
	// (subtitle and note).
	FirstPageReserve float64
	CellPadding      float64
}

// Engine plans column widths, wrapping and page breaks for a table. It is
// pure: the same table and settings always produce the same plan.
type Engine struct {
	geometry Geometry
	policy   WidthPolicy
	cell     FontMetrics
	header   FontMetrics
}

// NewEngine creates a layout engine. header may be nil to measure header
// cells with the cell metrics.
func NewEngine(geometry Geometry, policy WidthPolicy, cell, header FontMetrics) *Engine {
	if header == nil {
		header = cell
	}
	return &Engine{geometry: geometry, policy: policy, cell: cell, header: header}
}

// Plan lays out the table. A table without rows yields a plan with columns
// and a header but no pages.
func (e *Engine) Plan(table domain.NormalizedTable) domain.LayoutPlan {
	labels := table.Labels()
	records := table.Records()
	pad := e.geometry.CellPadding

	natural := naturalWidths(labels, records, e.policy, pad, e.cell, e.header)
	widths := distribute(natural, e.geometry.ContentWidth, e.policy.Min)

	plan := domain.LayoutPlan{
		Columns:     make([]domain.PlannedColumn, len(table.Columns)),
		LineHeight:  e.cell.LineHeight(),
		HeaderLine:  e.header.LineHeight(),
		CellPadding: pad,
	}
	for i, c := range table.Columns {
		plan.Columns[i] = domain.PlannedColumn{Name: c.Name, Label: c.Label, Width: widths[i]}
	}

	plan.Header = e.planRow(-1, labels, widths, e.header)
	plan.Rows = make([]domain.PlannedRow, len(records))
	for i, rec := range records {
		plan.Rows[i] = e.planRow(i, rec, widths, e.cell)
	}
	plan.Pages = paginate(plan.Header.Height, plan.Rows, e.geometry)
	return plan
}

// Repaginate slices the planned rows again for geometry. Widths and
// wrapping are kept, so geometry must have the content width the plan was
// made with.
func Repaginate(plan domain.LayoutPlan, geometry Geometry) domain.LayoutPlan {
	plan.Pages = paginate(plan.Header.Height, plan.Rows, geometry)
	return plan
}

func (e *Engine) planRow(index int, cells []string, widths []float64, m FontMetrics) domain.PlannedRow {
	row := domain.PlannedRow{Index: index, Cells: make([][]string, len(widths))}
	for i, w := range widths {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		inner := w - 2*e.geometry.CellPadding
		if inner <= 0 {
			inner = w
		}
		row.Cells[i] = Wrap(text, inner, m)
	}
	row.Height = float64(row.LineCount())*m.LineHeight() + 2*e.geometry.CellPadding
	return row
}

// paginate slices rows into pages by height. Each page starts with the
// repeated header. A row that does not fit closes the page; a row that does
// not fit even an empty page is placed alone.
func paginate(headerHeight float64, rows []domain.PlannedRow, g Geometry) []domain.PageSlice {
	var pages []domain.PageSlice
	capacity := g.BodyHeight - g.FirstPageReserve
	page := domain.PageSlice{Start: 0, End: 0, Height: headerHeight}

	for i, row := range rows {
		if page.End > page.Start && page.Height+row.Height > capacity {
			pages = append(pages, page)
			capacity = g.BodyHeight
			page = domain.PageSlice{Start: i, End: i, Height: headerHeight}
		}
		page.End = i + 1
		page.Height += row.Height
	}
	if page.End > page.Start {
		pages = append(pages, page)
	}
	return pages
}

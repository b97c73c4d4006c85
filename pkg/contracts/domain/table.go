package domain

// RawTable is the rectangular result of ingesting one export file.
// Every row has exactly len(Header) cells.
type RawTable struct {
	Source     string     `json:"source"`
	Header     []string   `json:"header"`
	Rows       [][]string `json:"rows"`
	Delimiter  rune       `json:"delimiter"`
	Encoding   string     `json:"encoding"`
	HeaderLine int        `json:"header_line"` // zero-based line (or sheet row) of the header
	Warnings   []string   `json:"warnings,omitempty"`
}

// TransformResult is the tagged outcome of a cell transform. A value that
// could not be parsed is carried through verbatim with Changed set to false.
type TransformResult struct {
	Value   string
	Changed bool
}

// Transformed wraps a successfully converted value.
func Transformed(v string) TransformResult { return TransformResult{Value: v, Changed: true} }

// Unchanged wraps the original cell when the transform does not apply.
func Unchanged(raw string) TransformResult { return TransformResult{Value: raw} }

// TransformFunc converts one raw cell into its display form.
type TransformFunc func(raw string) TransformResult

// ColumnSpec declares one logical column a report expects.
type ColumnSpec struct {
	Name      string        `json:"name" validate:"required"`
	Label     string        `json:"label,omitempty"` // display header, defaults to Name
	Aliases   []string      `json:"aliases,omitempty"`
	Required  bool          `json:"required"`
	Transform TransformFunc `json:"-"`
}

// DisplayLabel returns the header text printed for the column.
func (c ColumnSpec) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// Column is a logical column that was found in the source.
type Column struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Source string `json:"source"` // header text it was matched against
}

// Row maps logical column name to display string.
type Row map[string]string

// NormalizedTable holds display-ready cells for the columns that were found.
// Rows keep source order.
type NormalizedTable struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Missing []string `json:"missing,omitempty"`
}

// HasColumn reports whether the logical column is present.
func (t NormalizedTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Labels returns the display headers in column order.
func (t NormalizedTable) Labels() []string {
	labels := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		labels[i] = c.Label
	}
	return labels
}

// Records returns the cell values row by row in column order.
func (t NormalizedTable) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			record[j] = row[c.Name]
		}
		records[i] = record
	}
	return records
}

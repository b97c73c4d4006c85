package domain

import "time"

// ChartPoint is one sample on the shared time axis.
type ChartPoint struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// ChartSeries is one temperature channel.
type ChartSeries struct {
	Channel string       `json:"channel"`
	Name    string       `json:"name"` // legend label
	Color   string       `json:"color"`
	Points  []ChartPoint `json:"points"`
}

// ChartPlacement decides where the chart goes relative to the table.
type ChartPlacement string

const (
	ChartBeforeTable ChartPlacement = "before"
	ChartAfterTable  ChartPlacement = "after"
)

// Valid reports whether p is a known placement.
func (p ChartPlacement) Valid() bool {
	return p == ChartBeforeTable || p == ChartAfterTable
}

// Package chart extracts temperature series from batch tables and draws them
// as PNG line charts.
package chart

import (
	"sort"

	"hmireport/internal/dataprocessing"
	"hmireport/pkg/contracts/domain"
)

// Channel binds a table column to a plotted line.
type Channel struct {
	Column string
	Name   string
	Color  string // hex, without '#'
}

// TemperatureChannels are the batch temperature probes in legend order.
var TemperatureChannels = []Channel{
	{Column: "TEMP_AIR_IN", Name: "Air Inlet Temperature", Color: "2CA02C"},
	{Column: "TEMP_PRODUCT_1", Name: "Product 1 Temperature", Color: "D62728"},
	{Column: "TEMP_PRODUCT_2", Name: "Product 2 Temperature", Color: "E6B800"},
	{Column: "TEMP_PRODUCT_3", Name: "Product 3 Temperature", Color: "1F77B4"},
}

// minPoints is the smallest series go-chart can scale an axis for
const minPoints = 2

// BuildSeries extracts one series per channel present in the table. Rows
// whose Date and Time do not parse are left out of the chart; a value that
// does not parse drops only that point. Points are ordered by time and
// series that do not span two distinct instants are omitted.
func BuildSeries(table domain.NormalizedTable, channels []Channel) []domain.ChartSeries {
	var present []Channel
	for _, ch := range channels {
		if table.HasColumn(ch.Column) {
			present = append(present, ch)
		}
	}
	if len(present) == 0 {
		return nil
	}

	points := make([][]domain.ChartPoint, len(present))
	for _, row := range table.Rows {
		at, ok := dataprocessing.ParseTimestamp(row[dataprocessing.ColumnDate], row[dataprocessing.ColumnTime])
		if !ok {
			continue
		}
		for i, ch := range present {
			if v, ok := dataprocessing.ParseNumber(row[ch.Column]); ok {
				points[i] = append(points[i], domain.ChartPoint{At: at, Value: v})
			}
		}
	}

	var series []domain.ChartSeries
	for i, ch := range present {
		if len(points[i]) < minPoints {
			continue
		}
		sort.SliceStable(points[i], func(a, b int) bool {
			return points[i][a].At.Before(points[i][b].At)
		})
		if !points[i][len(points[i])-1].At.After(points[i][0].At) {
			continue
		}
		series = append(series, domain.ChartSeries{
			Channel: ch.Column,
			Name:    ch.Name,
			Color:   ch.Color,
			Points:  points[i],
		})
	}
	return series
}

package chart

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hmireport/pkg/contracts/domain"
)

func batchTable(rows ...domain.Row) domain.NormalizedTable {
	cols := []string{"Date", "Time", "TEMP_AIR_IN", "TEMP_PRODUCT_1"}
	table := domain.NormalizedTable{Rows: rows}
	for _, c := range cols {
		table.Columns = append(table.Columns, domain.Column{Name: c, Label: c, Source: c})
	}
	return table
}

func TestBuildSeries(t *testing.T) {
	table := batchTable(
		domain.Row{"Date": "25/06/25", "Time": "10:02:00", "TEMP_AIR_IN": "22.0", "TEMP_PRODUCT_1": "5.0"},
		domain.Row{"Date": "25/06/25", "Time": "10:00:00", "TEMP_AIR_IN": "21.5", "TEMP_PRODUCT_1": "4.0"},
		domain.Row{"Date": "??", "Time": "10:01:00", "TEMP_AIR_IN": "99", "TEMP_PRODUCT_1": "99"},
		domain.Row{"Date": "25/06/25", "Time": "10:01:00", "TEMP_AIR_IN": "21.8", "TEMP_PRODUCT_1": "n/a"},
	)

	series := BuildSeries(table, TemperatureChannels)

	require.Len(t, series, 2, "only channels present in the table")
	air := series[0]
	assert.Equal(t, "TEMP_AIR_IN", air.Channel)
	assert.Equal(t, "Air Inlet Temperature", air.Name)
	require.Len(t, air.Points, 3)
	assert.Equal(t, []float64{21.5, 21.8, 22.0}, []float64{air.Points[0].Value, air.Points[1].Value, air.Points[2].Value})
	for i := 1; i < len(air.Points); i++ {
		assert.True(t, air.Points[i].At.After(air.Points[i-1].At))
	}

	p1 := series[1]
	assert.Equal(t, "Product 1 Temperature", p1.Name)
	assert.Len(t, p1.Points, 2, "unparsable value drops only that point")
}

func TestBuildSeries_NotPlottable(t *testing.T) {
	single := batchTable(domain.Row{"Date": "25/06/25", "Time": "10:00:00", "TEMP_AIR_IN": "1", "TEMP_PRODUCT_1": "2"})
	assert.Empty(t, BuildSeries(single, TemperatureChannels))

	sameInstant := batchTable(
		domain.Row{"Date": "25/06/25", "Time": "10:00:00", "TEMP_AIR_IN": "1"},
		domain.Row{"Date": "25/06/25", "Time": "10:00:00", "TEMP_AIR_IN": "2"},
	)
	assert.Empty(t, BuildSeries(sameInstant, TemperatureChannels))

	assert.Empty(t, BuildSeries(domain.NormalizedTable{}, TemperatureChannels))
}

func TestPainter_PNG(t *testing.T) {
	start := time.Date(2025, 6, 25, 10, 0, 0, 0, time.UTC)
	series := []domain.ChartSeries{
		{Channel: "TEMP_AIR_IN", Name: "Air Inlet Temperature", Color: "2CA02C", Points: []domain.ChartPoint{
			{At: start, Value: 21.5}, {At: start.Add(time.Minute), Value: 21.9}, {At: start.Add(2 * time.Minute), Value: 22.4},
		}},
		{Channel: "TEMP_PRODUCT_1", Name: "Product 1 Temperature", Color: "#D62728", Points: []domain.ChartPoint{
			{At: start, Value: 4}, {At: start.Add(2 * time.Minute), Value: 4},
		}},
	}

	data, err := NewPainter().PNG(series, DefaultTitle, 800, 500)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
}

func TestPainter_NoSeries(t *testing.T) {
	_, err := NewPainter().PNG(nil, DefaultTitle, 100, 100)
	assert.Error(t, err)
}

func TestValueRange(t *testing.T) {
	flat := []domain.ChartSeries{{Points: []domain.ChartPoint{{Value: 5}, {Value: 5}}}}
	r := valueRange(flat)
	assert.Equal(t, 4.0, r.Min)
	assert.Equal(t, 6.0, r.Max)
}

package chart

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"hmireport/pkg/contracts/domain"
)

const (
	// DefaultTitle is printed above the batch temperature chart
	DefaultTitle = "Temperature Trend Over Time"
	axisNameX    = "Time"
	axisNameY    = "Temperature (°C)"
	timeFormat   = "15:04"
)

// Painter renders series as a PNG line chart with go-chart.
type Painter struct{}

// NewPainter creates a chart painter
func NewPainter() *Painter {
	return &Painter{}
}

// PNG draws the series on a shared time axis. width and height are in
// pixels.
func (p *Painter) PNG(series []domain.ChartSeries, title string, width, height int) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to plot")
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           axisNameX,
			ValueFormatter: gochart.TimeValueFormatterWithFormat(timeFormat),
		},
		YAxis: gochart.YAxis{
			Name:  axisNameY,
			Range: valueRange(series),
		},
	}

	for _, s := range series {
		col := drawing.ColorFromHex(strings.TrimPrefix(s.Color, "#"))
		xs := make([]time.Time, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, pt := range s.Points {
			xs[i] = pt.At
			ys[i] = pt.Value
		}
		graph.Series = append(graph.Series, gochart.TimeSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    2,
			},
		})
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// valueRange pads the y extent so flat lines stay visible
func valueRange(series []domain.ChartSeries) *gochart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, pt := range s.Points {
			lo = math.Min(lo, pt.Value)
			hi = math.Max(hi, pt.Value)
		}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

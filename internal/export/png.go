package export

import (
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/pyramid/internal/dataset"
)

const (
	pngHeight     = 512
	pngBarWidth   = 16
	pngBarSpacing = 4
)

// FrameChart builds a bar chart of one frame: for every group a left bar
// below the axis and a right bar above it.
func FrameChart(ds *dataset.Dataset, frame int) (*chart.BarChart, error) {
	if err := checkFrame(ds, frame); err != nil {
		return nil, err
	}

	leftStyle := chart.Style{FillColor: drawing.ColorFromHex(LeftColor[1:]), StrokeColor: drawing.ColorFromHex(LeftColor[1:]), StrokeWidth: 1}
	rightStyle := chart.Style{FillColor: drawing.ColorFromHex(RightColor[1:]), StrokeColor: drawing.ColorFromHex(RightColor[1:]), StrokeWidth: 1}

	groups := ds.Groups()
	bars := make([]chart.Value, 0, 2*len(groups))
	for i, g := range groups {
		if i < len(ds.Left) {
			bars = append(bars, chart.Value{Value: ds.Scaled(ds.Left[i].Values[frame]), Label: g, Style: leftStyle})
		}
		if i < len(ds.Right) {
			bars = append(bars, chart.Value{Value: ds.Scaled(ds.Right[i].Values[frame]), Label: g, Style: rightStyle})
		}
	}

	limit := ds.Scaled(ds.MaxValue)
	if limit <= 0 {
		limit = 1
	}

	return &chart.BarChart{
		Title:        ds.Title + " " + caption(ds, frame),
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		Width:        max(512, len(bars)*(pngBarWidth+pngBarSpacing)+120),
		Height:       pngHeight,
		BarWidth:     pngBarWidth,
		BarSpacing:   pngBarSpacing,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Name:  ds.Label,
			Range: &chart.ContinuousRange{Min: -limit, Max: limit},
		},
		Bars: bars,
	}, nil
}

// WritePNG renders FrameChart as PNG to w.
func WritePNG(w io.Writer, ds *dataset.Dataset, frame int) error {
	bc, err := FrameChart(ds, frame)
	if err != nil {
		return err
	}
	return bc.Render(chart.PNG, w)
}

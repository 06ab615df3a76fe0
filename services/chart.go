package services

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"house-prices/models"
)

var barColor = drawing.ColorFromHex("636efa")

// RenderHistogramSVG draws the price histogram as an SVG document.
func RenderHistogramSVG(bins []models.HistogramBin) ([]byte, error) {
	if len(bins) == 0 {
		return nil, errors.New("chart: no histogram bins")
	}

	maxCount := 0
	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		bars[i] = chart.Value{
			Label: binLabel(b),
			Value: float64(b.Count),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor, StrokeWidth: 1},
		}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	ch := chart.BarChart{
		Width:      1000,
		Height:     420,
		BarWidth:   32,
		BarSpacing: 8,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Name:  "count",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			Style: chart.Style{FontSize: 8},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("chart: render histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// binLabel prints the lower edge of a bin in thousands.
func binLabel(b models.HistogramBin) string {
	return fmt.Sprintf("%.0fk", b.Low/1000)
}

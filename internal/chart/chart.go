// Package chart renders the keyword ranking overview as a PNG bar chart.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/AniruddhGohil/serp-checker/internal/models"
)

// ErrNoData is returned when there are no results to plot.
var ErrNoData = errors.New("no results to chart")

var (
	colorImproved = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	colorDropped  = color.RGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
	colorNone     = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	colorNew      = color.RGBA{R: 0x15, G: 0x65, B: 0xc0, A: 0xff}
)

const (
	chartWidth   = 10 * vg.Inch
	rowHeight    = 0.6 * vg.Inch
	minHeight    = 2.5 * vg.Inch
	barThickness = 18 // points
)

// ColorFor maps a change category to its bar colour. Unknown or empty
// categories (failed lookups) are gray.
func ColorFor(change models.Change) color.Color {
	switch change {
	case models.ChangeImproved:
		return colorImproved
	case models.ChangeDropped:
		return colorDropped
	case models.ChangeNew:
		return colorNew
	default:
		return colorNone
	}
}

// SortForChart returns a copy of results ordered by rank, highest number
// first and not-found (rank 0) last. Bars are drawn in this order from the
// bottom of the chart up, so not-found keywords sit at the top.
func SortForChart(results []models.KeywordResult) []models.KeywordResult {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b models.KeywordResult) int {
		return b.Rank - a.Rank
	})
	return sorted
}

// Render draws one horizontal bar per keyword and returns PNG bytes.
func Render(results []models.KeywordResult) ([]byte, error) {
	if len(results) == 0 {
		return nil, ErrNoData
	}

	sorted := SortForChart(results)

	p := plot.New()
	p.Title.Text = "Keyword Ranking Overview"
	p.X.Label.Text = "Google Rank (lower is better)"
	p.X.Min = 0
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	grid.Vertical.Color = color.Gray{Y: 0xb0}
	p.Add(grid)

	names := make([]string, len(sorted))
	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(sorted)),
		Labels: make([]string, len(sorted)),
	}

	for i, res := range sorted {
		bar, err := plotter.NewBarChart(plotter.Values{float64(res.Rank)}, vg.Points(barThickness))
		if err != nil {
			return nil, fmt.Errorf("failed to build bar for %q: %w", res.Keyword, err)
		}
		bar.Horizontal = true
		bar.XMin = float64(i)
		bar.Color = ColorFor(res.Change)
		bar.LineStyle.Width = 0
		p.Add(bar)

		names[i] = res.Keyword
		labels.XYs[i] = plotter.XY{X: float64(res.Rank) + 1, Y: float64(i)}
		labels.Labels[i] = fmt.Sprintf("Rank %d", res.Rank)
	}

	rankLabels, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, fmt.Errorf("failed to build labels: %w", err)
	}
	for i := range rankLabels.TextStyle {
		rankLabels.TextStyle[i].Font.Size = vg.Points(9)
		rankLabels.TextStyle[i].XAlign = draw.XRight
		rankLabels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(rankLabels)
	p.NominalY(names...)

	height := vg.Length(len(sorted)) * rowHeight
	if height < minHeight {
		height = minHeight
	}

	w, err := p.WriterTo(chartWidth, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI encodes PNG bytes for inline use in an <img> tag.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// Package chart renders a filtered view as a static scatter plot.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/likertlens/internal/dataset"
	"github.com/KaramelBytes/likertlens/internal/filter"
	"github.com/KaramelBytes/likertlens/internal/utils"
)

// ErrEmptyView is returned when there are no points to plot.
var ErrEmptyView = errors.New("no rows to plot")

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q (use .png or .svg)", filepath.Ext(path))
}

// Scatter describes the plot of one numeric column against another.
type Scatter struct {
	X      string
	Y      string
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	// DotWidth is the marker radius in pixels.
	DotWidth float64
	Color    drawing.Color
}

// DefaultScatter plots daily stress against loneliness.
func DefaultScatter() Scatter {
	return Scatter{
		X:        "stress_daglig_likert",
		Y:        "ensom_likert",
		Title:    "Stress vs Loneliness by Educational Program",
		XLabel:   "Daily Stress (Likert)",
		YLabel:   "Loneliness (Likert)",
		Width:    900,
		Height:   500,
		DotWidth: 5,
		Color:    chart.ColorBlue,
	}
}

// pointStyle draws markers without connecting lines.
func pointStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    width,
		DotColor:    col,
	}
}

// Render draws the view's rows. Axis ranges come from the whole dataset so
// the axes stay put while the filter changes.
func (s Scatter) Render(view *filter.View, format Format, w io.Writer) error {
	if view.Len() == 0 {
		return ErrEmptyView
	}
	ds := view.Dataset()
	for _, col := range []string{s.X, s.Y} {
		if !ds.IsNumeric(col) {
			return &filter.InvalidColumnError{Column: col, Reason: "cannot plot a non-numeric or missing column"}
		}
	}
	xs, ys := view.Floats(s.X), view.Floats(s.Y)
	if len(xs) == 1 {
		xs, ys = append(xs, xs[0]), append(ys, ys[0])
	}
	xr := dataset.EstimateRange(ds, s.X).Pad(0.5)
	yr := dataset.EstimateRange(ds, s.Y).Pad(0.5)

	ch := chart.Chart{
		Title:      s.Title,
		Width:      s.Width,
		Height:     s.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: s.XLabel, Range: &chart.ContinuousRange{Min: xr.Lo, Max: xr.Hi}},
		YAxis:      chart.YAxis{Name: s.YLabel, Range: &chart.ContinuousRange{Min: yr.Lo, Max: yr.Hi}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("%d programs", view.Len()),
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(s.Color, s.DotWidth),
			},
		},
	}

	var provider chart.RendererProvider
	switch format {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// RenderFile renders to path, choosing the format from its extension.
func (s Scatter) RenderFile(view *filter.View, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := s.Render(view, format, &buf); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

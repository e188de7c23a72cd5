// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultDPI is the resolution used when a Renderer's DPI is zero.
const DefaultDPI = 200

// A Renderer draws projected charts as PNG images.
type Renderer struct {
	// DPI is the output resolution. Zero means DefaultDPI.
	DPI int
}

func (r Renderer) dpi() int {
	if r.DPI <= 0 {
		return DefaultDPI
	}
	return r.DPI
}

// writePNG draws onto a width × height inch canvas and encodes it to w.
func (r Renderer) writePNG(w io.Writer, width, height float64, drawTo func(draw.Canvas)) error {
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch),
		vgimg.UseDPI(r.dpi()),
		vgimg.UseBackgroundColor(color.White))}
	drawTo(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}

var dotted = []vg.Length{vg.Points(1), vg.Points(2)}

func newGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	grid.Vertical.Width = vg.Points(0.5)
	grid.Vertical.Dashes = dotted
	grid.Horizontal.Width = vg.Points(0.5)
	grid.Horizontal.Dashes = dotted
	return grid
}

// Scatter draws c as a labeled scatter plot.
func (r Renderer) Scatter(w io.Writer, c *ScatterChart) error {
	if len(c.Points) == 0 {
		return fmt.Errorf("scatter chart %q has no points", c.Title)
	}
	xys := make(plotter.XYs, len(c.Points))
	labels := make([]string, len(c.Points))
	for i, p := range c.Points {
		xys[i] = plotter.XY{X: p.X, Y: p.Y}
		labels[i] = p.Label
	}

	pl := plot.New()
	pl.Title.Text = c.Title
	pl.X.Label.Text = c.XLabel
	pl.Y.Label.Text = c.YLabel
	pl.Add(newGrid())

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = plotutil.Color(2)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(3)

	lb, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	lb.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(5)}
	pl.Add(sc, lb)

	return r.writePNG(w, c.Width, c.Height, pl.Draw)
}

// barSeries draws one BarSeries in data coordinates.
type barSeries struct {
	BarSeries
	color color.Color
}

func (b *barSeries) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, v := range b.Values {
		center := float64(i) + b.Offset
		x0, x1 := trX(center-b.Width/2), trX(center+b.Width/2)
		y0, y1 := trY(0), trY(v)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
		c.FillPolygon(b.color, c.ClipPolygonXY(pts))
	}
}

func (b *barSeries) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin = b.Offset - b.Width/2
	xmax = float64(len(b.Values)-1) + b.Offset + b.Width/2
	ymin, ymax = stats.Bounds(b.Values)
	return xmin, xmax, math.Min(0, ymin), math.Max(0, ymax)
}

func (b *barSeries) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.color, c.ClipPolygonY(pts))
}

// secondaryRange returns the value axis range for the line series:
// it always includes zero and leaves headroom above the largest value.
func secondaryRange(lines []LineSeries) (min, max float64) {
	var all []float64
	for _, l := range lines {
		all = append(all, l.Values...)
	}
	lo, hi := stats.Bounds(all)
	min, max = math.Min(0, lo), math.Max(0, hi)*1.1
	if !(max > min) {
		max = min + 1
	}
	return min, max
}

// BarLine draws c as two panels sharing the category axis: the bar
// series against the primary axis above, and the line series against
// the secondary axis below.
func (r Renderer) BarLine(w io.Writer, c *BarLineChart) error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("chart %q has no categories", c.Title)
	}
	xmin, xmax := -0.5, float64(len(c.Categories))-0.5

	top := plot.New()
	top.Title.Text = c.Title
	top.Y.Label.Text = c.YLabel
	top.Legend.Top = true
	top.Add(newGrid())
	for i, s := range c.Bars {
		b := &barSeries{BarSeries: s, color: plotutil.Color(i)}
		top.Add(b)
		top.Legend.Add(s.Name, b)
	}
	top.NominalX(c.Categories...)
	top.X.Min, top.X.Max = xmin, xmax
	top.Y.Min, top.Y.Max = c.YMin, c.YMax

	bottom := plot.New()
	bottom.X.Label.Text = c.XLabel
	bottom.Y.Label.Text = c.Y2Label
	bottom.Legend.Top = true
	bottom.Add(newGrid())
	for i, s := range c.Lines {
		xys := make(plotter.XYs, len(s.Values))
		for j, v := range s.Values {
			xys[j] = plotter.XY{X: float64(j), Y: v}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = dotted
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}
		bottom.Add(line, points)
		bottom.Legend.Add(s.Name, line, points)
	}
	bottom.NominalX(c.Categories...)
	bottom.X.Min, bottom.X.Max = xmin, xmax
	bottom.Y.Min, bottom.Y.Max = secondaryRange(c.Lines)

	plots := [][]*plot.Plot{{top}, {bottom}}
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Points(8)}
	return r.writePNG(w, c.Width, c.Height, func(dc draw.Canvas) {
		canvases := plot.Align(plots, tiles, dc)
		top.Draw(canvases[0][0])
		bottom.Draw(canvases[1][0])
	})
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart shapes aggregated bench results into chart data
// and renders that data as PNG images.
//
// The projection types carry everything a plotting backend needs:
// series, point labels, axis titles, and a suggested figure size in
// inches. They marshal to JSON unchanged.
package benchchart

import (
	"math"

	"github.com/samber/lo"

	"github.com/3dcf-labs/dcfbench/benchagg"
)

// Titles used by the projections.
const (
	RunsTitle   = "Accuracy vs macro tokens"
	RunsXLabel  = "Average 3DCF tokens per page"
	BudgetTitle = "Precision vs compression per budget"
	BinXLabel   = "Gold tokens per page (bin)"
	PrecYLabel  = "Mean precision"
	CompYLabel  = "Mean compression ratio"
)

// GroupWidth is the fraction of a bin category shared by all bars in
// that category.
const GroupWidth = 0.8

// A Point is one labeled scatter point.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// A ScatterChart is a single labeled scatter series.
type ScatterChart struct {
	Title  string  `json:"title"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
	Width  float64 `json:"width_in"`
	Height float64 `json:"height_in"`
}

// ProjectRuns returns the accuracy scatter chart for runs: one point
// per run at (tokens per page, selected metric), labeled by run ID.
func ProjectRuns(runs []benchagg.RunSummary, metric benchagg.Metric) *ScatterChart {
	return &ScatterChart{
		Title:  RunsTitle,
		XLabel: RunsXLabel,
		YLabel: "Mean " + metric.Name(),
		Points: lo.Map(runs, func(r benchagg.RunSummary, _ int) Point {
			return Point{X: r.TokensPerPage, Y: r.Selected, Label: r.RunID}
		}),
		Width:  6,
		Height: 4,
	}
}

// A BarSeries is one bar per category. Bar i is centered at
// category index i plus Offset, in category units.
type BarSeries struct {
	Name   string    `json:"name"`
	Offset float64   `json:"offset"`
	Width  float64   `json:"width"`
	Values []float64 `json:"values"`
}

// A LineSeries is one value per category, drawn against the
// secondary axis at the category centers.
type LineSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// A BarLineChart shares one categorical axis between bar series on a
// primary axis and line series on a secondary axis.
type BarLineChart struct {
	Title      string       `json:"title"`
	XLabel     string       `json:"x_label"`
	YLabel     string       `json:"y_label"`
	Y2Label    string       `json:"y2_label"`
	Categories []string     `json:"categories"`
	YMin       float64      `json:"y_min"`
	YMax       float64      `json:"y_max"`
	Bars       []BarSeries  `json:"bars"`
	Lines      []LineSeries `json:"lines"`
	Width      float64      `json:"width_in"`
	Height     float64      `json:"height_in"`
}

// BarLayout returns the bar width and the offset of bar i among n
// bars sharing a category.
func BarLayout(i, n int) (offset, width float64) {
	width = GroupWidth / float64(max(1, n))
	offset = (float64(i) - float64(n-1)/2) * width
	return offset, width
}

// ProjectBudgets returns the precision/compression chart for t: per
// budget, a precision bar series and a compression line series across
// every bin.
func ProjectBudgets(t *benchagg.BudgetTable) *BarLineChart {
	n := len(t.Budgets)
	c := &BarLineChart{
		Title:      BudgetTitle,
		XLabel:     BinXLabel,
		YLabel:     PrecYLabel,
		Y2Label:    CompYLabel,
		Categories: append([]string(nil), t.Bins...),
		YMin:       0,
		YMax:       1,
		Width:      math.Max(6, float64(len(t.Bins))*1.2),
		Height:     4 + float64(n),
	}
	c.Bars = lo.Map(t.Budgets, func(budget string, i int) BarSeries {
		offset, width := BarLayout(i, n)
		return BarSeries{
			Name:   budget + " precision",
			Offset: offset,
			Width:  width,
			Values: t.Precision(i),
		}
	})
	c.Lines = lo.Map(t.Budgets, func(budget string, i int) LineSeries {
		return LineSeries{Name: budget + " compression", Values: t.Compression(i)}
	})
	return c
}

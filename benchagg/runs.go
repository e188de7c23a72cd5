// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"
	"math"

	"github.com/3dcf-labs/dcfbench/benchlog"
)

// A RunAccumulator holds the running totals for one run. It is a
// value type: Add and Merge return a new accumulator and leave the
// receiver unchanged.
type RunAccumulator struct {
	// Preset, Mode, and Budget come from the first record of the run.
	Preset string
	Mode   string
	Budget string

	Documents int
	Pages     int
	Tokens    float64
	// CellsWeighted is the sum of avg_cells_kept_per_page weighted
	// by each record's page count.
	CellsWeighted float64

	CER Mean
	WER Mean
}

// DocPages returns the page count a document record contributes:
// its floored "pages" field, but never less than 1.
func DocPages(row *benchlog.DocRow) int {
	if row.Pages == nil {
		return 1
	}
	p := math.Floor(*row.Pages)
	if !(p >= 1) {
		return 1
	}
	if p > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(p)
}

// Add returns a with row folded in.
//
// Missing tokens_3dcf and avg_cells_kept_per_page count as 0. CER and
// WER are averaged independently over the records that carry them.
func (a RunAccumulator) Add(row *benchlog.DocRow) RunAccumulator {
	if a.Documents == 0 {
		a.Preset = row.Preset
		a.Mode = row.Mode
		a.Budget = row.Budget.String()
	}
	pages := DocPages(row)
	a.Documents++
	a.Pages += pages
	if row.Tokens3DCF != nil {
		a.Tokens += *row.Tokens3DCF
	}
	if row.AvgCellsKeptPerPage != nil {
		a.CellsWeighted += *row.AvgCellsKeptPerPage * float64(pages)
	}
	if row.CER != nil {
		a.CER = a.CER.Add(*row.CER)
	}
	if row.WER != nil {
		a.WER = a.WER.Add(*row.WER)
	}
	return a
}

// Merge returns the accumulator for the records of a followed by the
// records of b.
func (a RunAccumulator) Merge(b RunAccumulator) RunAccumulator {
	if a.Documents == 0 {
		return b
	}
	if b.Documents == 0 {
		return a
	}
	a.Documents += b.Documents
	a.Pages += b.Pages
	a.Tokens += b.Tokens
	a.CellsWeighted += b.CellsWeighted
	a.CER = a.CER.Merge(b.CER)
	a.WER = a.WER.Merge(b.WER)
	return a
}

// A RunSummary is the derived result for one run.
type RunSummary struct {
	RunID  string
	Preset string
	Mode   string
	Budget string

	Documents     int
	Pages         int
	TokensPerPage float64
	CellsPerPage  float64

	CER Mean
	WER Mean

	// Selected is the value plotted for the requested metric.
	Selected float64
}

// A NoMetricDataError reports that no run carried the requested
// metric, or a fallback for it.
type NoMetricDataError struct {
	Metric Metric
}

func (e *NoMetricDataError) Error() string {
	return fmt.Sprintf("no rows contained the requested metric (%s)", e.Metric.Name())
}

// Runs groups document records by run ID.
//
// The zero Runs is ready to use.
type Runs struct {
	order  []string
	groups map[string]RunAccumulator
}

// Add folds row into the group for its run ID. A missing or empty run
// ID is grouped under UnknownRun.
func (r *Runs) Add(row *benchlog.DocRow) {
	if r.groups == nil {
		r.groups = make(map[string]RunAccumulator)
	}
	id := runKey(row.RunID).Label(UnknownRun)
	acc, ok := r.groups[id]
	if !ok {
		r.order = append(r.order, id)
	}
	r.groups[id] = acc.Add(row)
}

// AddAll folds every row in rows, in order.
func (r *Runs) AddAll(rows []benchlog.DocRow) {
	for i := range rows {
		r.Add(&rows[i])
	}
}

// Merge folds the groups of o into r. Groups new to r are appended in
// o's discovery order.
func (r *Runs) Merge(o *Runs) {
	if r.groups == nil {
		r.groups = make(map[string]RunAccumulator)
	}
	for _, id := range o.order {
		acc, ok := r.groups[id]
		if !ok {
			r.order = append(r.order, id)
		}
		r.groups[id] = acc.Merge(o.groups[id])
	}
}

// IDs returns the run IDs in the order they were first seen.
func (r *Runs) IDs() []string {
	return append([]string(nil), r.order...)
}

// Get returns the accumulator for run id.
func (r *Runs) Get(id string) (RunAccumulator, bool) {
	acc, ok := r.groups[id]
	return acc, ok
}

// Summaries derives one RunSummary per run, in discovery order.
//
// Runs without pages are dropped. The selected value is the mean CER
// if metric is CER and some record carried CER, and otherwise the mean
// WER; a run with neither is dropped. If every run is dropped,
// Summaries returns a *NoMetricDataError.
func (r *Runs) Summaries(metric Metric) ([]RunSummary, error) {
	var out []RunSummary
	for _, id := range r.order {
		acc := r.groups[id]
		if acc.Pages == 0 {
			continue
		}
		var sel Mean
		switch {
		case metric == CER && acc.CER.Defined():
			sel = acc.CER
		case acc.WER.Defined():
			sel = acc.WER
		default:
			continue
		}
		pages := float64(acc.Pages)
		out = append(out, RunSummary{
			RunID:         id,
			Preset:        acc.Preset,
			Mode:          acc.Mode,
			Budget:        acc.Budget,
			Documents:     acc.Documents,
			Pages:         acc.Pages,
			TokensPerPage: acc.Tokens / pages,
			CellsPerPage:  acc.CellsWeighted / pages,
			CER:           acc.CER,
			WER:           acc.WER,
			Selected:      sel.Value(),
		})
	}
	if len(out) == 0 {
		return nil, &NoMetricDataError{metric}
	}
	return out, nil
}

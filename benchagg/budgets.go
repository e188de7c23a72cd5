// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"errors"
	"sort"

	"github.com/samber/lo"

	"github.com/3dcf-labs/dcfbench/benchlog"
	"github.com/3dcf-labs/dcfbench/binning"
)

// ErrNoUsableRows is returned by BudgetBins.Table when no page record
// carried all measures and fell in a bin.
var ErrNoUsableRows = errors.New("no usable page rows after filtering")

// A BinAccumulator holds the running totals for one (budget, bin)
// cell. Like RunAccumulator it is a value type.
type BinAccumulator struct {
	Count          int
	PrecisionSum   float64
	CompressionSum float64
}

// Add returns a with one page folded in.
func (a BinAccumulator) Add(precision, compression float64) BinAccumulator {
	a.Count++
	a.PrecisionSum += precision
	a.CompressionSum += compression
	return a
}

// Merge returns the accumulator for the pages of both a and b.
func (a BinAccumulator) Merge(b BinAccumulator) BinAccumulator {
	a.Count += b.Count
	a.PrecisionSum += b.PrecisionSum
	a.CompressionSum += b.CompressionSum
	return a
}

// PrecisionMean returns the mean precision, or 0 for an empty cell.
func (a BinAccumulator) PrecisionMean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.PrecisionSum / float64(a.Count)
}

// CompressionMean returns the mean compression ratio, or 0 for an
// empty cell.
func (a BinAccumulator) CompressionMean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.CompressionSum / float64(a.Count)
}

type cellKey struct {
	budget string
	bin    int
}

// BudgetBins groups page records by (budget, bin of tokens_gold_page).
type BudgetBins struct {
	scheme *binning.Scheme
	cells  map[cellKey]BinAccumulator

	missing int
	below   int
}

// NewBudgetBins returns an empty BudgetBins over the bins of s.
func NewBudgetBins(s *binning.Scheme) *BudgetBins {
	return &BudgetBins{scheme: s, cells: make(map[cellKey]BinAccumulator)}
}

// Add folds row into its cell. Rows missing tokens_gold_page,
// precision_page, or compression_ratio are skipped, as are rows whose
// tokens_gold_page is below the first bin. A missing budget is
// grouped under AutoBudget.
func (b *BudgetBins) Add(row *benchlog.PageRow) {
	if row.TokensGoldPage == nil || row.PrecisionPage == nil || row.CompressionRatio == nil {
		b.missing++
		return
	}
	bin, ok := b.scheme.Lookup(*row.TokensGoldPage)
	if !ok {
		b.below++
		return
	}
	k := cellKey{budgetKey(row.Budget).Label(AutoBudget), bin}
	b.cells[k] = b.cells[k].Add(*row.PrecisionPage, *row.CompressionRatio)
}

// AddAll folds every row in rows.
func (b *BudgetBins) AddAll(rows []benchlog.PageRow) {
	for i := range rows {
		b.Add(&rows[i])
	}
}

// Merge folds the cells of o into b. Both must use the same Scheme.
func (b *BudgetBins) Merge(o *BudgetBins) {
	for k, acc := range o.cells {
		b.cells[k] = b.cells[k].Merge(acc)
	}
	b.missing += o.missing
	b.below += o.below
}

// Skipped returns the number of rows dropped for missing measures and
// for falling below the first bin.
func (b *BudgetBins) Skipped() (missing, below int) {
	return b.missing, b.below
}

func budgetKey(s benchlog.Scalar) Key {
	if !s.Valid {
		return Unspecified
	}
	return Known(s.Text)
}

// A BinSummary is one row of a BudgetTable.
type BinSummary struct {
	Budget string
	Bin    int
	Label  string
	BinAccumulator
}

// A BudgetTable is the dense budget × bin result. Every observed
// budget has exactly one row per declared bin.
type BudgetTable struct {
	// Budgets lists the observed budget labels, AutoBudget first and
	// the rest in ascending string order.
	Budgets []string
	// Bins lists the labels of every declared bin.
	Bins []string
	// Rows holds len(Budgets)*len(Bins) rows, grouped by budget and
	// then ordered by bin.
	Rows []BinSummary
}

// Table builds the dense table from the cells seen so far. Cells with
// no pages are zero-filled. It returns ErrNoUsableRows if no cell has
// any pages.
func (b *BudgetBins) Table() (*BudgetTable, error) {
	if len(b.cells) == 0 {
		return nil, ErrNoUsableRows
	}
	budgets := lo.Uniq(lo.Map(lo.Keys(b.cells), func(k cellKey, _ int) string {
		return k.budget
	}))
	sortBudgets(budgets)

	t := &BudgetTable{
		Budgets: budgets,
		Bins:    b.scheme.Labels(),
		Rows:    make([]BinSummary, 0, len(budgets)*b.scheme.Len()),
	}
	for _, budget := range budgets {
		for bin, label := range t.Bins {
			t.Rows = append(t.Rows, BinSummary{
				Budget:         budget,
				Bin:            bin,
				Label:          label,
				BinAccumulator: b.cells[cellKey{budget, bin}],
			})
		}
	}
	return t, nil
}

// sortBudgets orders AutoBudget first, then the rest as strings.
func sortBudgets(budgets []string) {
	sort.Slice(budgets, func(i, j int) bool {
		ai, aj := budgets[i] != AutoBudget, budgets[j] != AutoBudget
		if ai != aj {
			return !ai
		}
		return budgets[i] < budgets[j]
	})
}

// Row returns the summary for budget index i and bin index j.
func (t *BudgetTable) Row(i, j int) BinSummary {
	return t.Rows[i*len(t.Bins)+j]
}

// Precision returns the mean precision of budget index i for every
// bin, in bin order.
func (t *BudgetTable) Precision(i int) []float64 {
	out := make([]float64, len(t.Bins))
	for j := range out {
		out[j] = t.Row(i, j).PrecisionMean()
	}
	return out
}

// Compression returns the mean compression ratio of budget index i for
// every bin, in bin order.
func (t *BudgetTable) Compression(i int) []float64 {
	out := make([]float64, len(t.Bins))
	for j := range out {
		out[j] = t.Row(i, j).CompressionMean()
	}
	return out
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport writes aggregated 3DCF bench results as tables.
//
// The run-level table renders an undefined mean as an empty field.
// The budget × bin table is zero-filled and never has empty fields.
// Every derived decimal is rounded to Places digits.
package benchreport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/3dcf-labs/dcfbench/benchagg"
)

// Places is the number of decimal places kept in derived values.
const Places = 6

// RunsHeader is the column header of the run-level table.
var RunsHeader = []string{
	"run_id", "preset", "mode", "budget", "documents", "pages",
	"tokens_per_page", "cells_per_page", "mean_cer", "mean_wer",
}

// BudgetsHeader is the column header of the budget × bin table.
var BudgetsHeader = []string{"budget", "bin", "count", "precision_mean", "compression_mean"}

// Round rounds x to Places decimal places.
func Round(x float64) float64 {
	// FormatFloat rounds the exact binary value, unlike scaling by 1e6.
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', Places, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// formatDecimal formats x rounded to Places, in its shortest form but
// always with a decimal point, so 10 prints as "10.0".
func formatDecimal(x float64) string {
	s := strconv.FormatFloat(Round(x), 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

func formatMean(m benchagg.Mean) string {
	if !m.Defined() {
		return ""
	}
	return formatDecimal(m.Value())
}

// RunRecord returns the table cells for one run summary.
func RunRecord(r *benchagg.RunSummary) []string {
	return []string{
		r.RunID,
		r.Preset,
		r.Mode,
		r.Budget,
		strconv.Itoa(r.Documents),
		strconv.Itoa(r.Pages),
		formatDecimal(r.TokensPerPage),
		formatDecimal(r.CellsPerPage),
		formatMean(r.CER),
		formatMean(r.WER),
	}
}

// BudgetRecord returns the table cells for one budget × bin row.
func BudgetRecord(r *benchagg.BinSummary) []string {
	return []string{
		r.Budget,
		r.Label,
		strconv.Itoa(r.Count),
		formatDecimal(r.PrecisionMean()),
		formatDecimal(r.CompressionMean()),
	}
}

// RunsTable returns the header and every row of the run-level table.
func RunsTable(runs []benchagg.RunSummary) [][]string {
	tab := [][]string{RunsHeader}
	for i := range runs {
		tab = append(tab, RunRecord(&runs[i]))
	}
	return tab
}

// BudgetsTable returns the header and every row of the budget × bin
// table.
func BudgetsTable(t *benchagg.BudgetTable) [][]string {
	tab := [][]string{BudgetsHeader}
	for i := range t.Rows {
		tab = append(tab, BudgetRecord(&t.Rows[i]))
	}
	return tab
}

// WriteRunsCSV writes the run-level table to w as CSV.
func WriteRunsCSV(w io.Writer, runs []benchagg.RunSummary) error {
	return writeCSV(w, RunsTable(runs))
}

// WriteBudgetsCSV writes the budget × bin table to w as CSV.
func WriteBudgetsCSV(w io.Writer, t *benchagg.BudgetTable) error {
	return writeCSV(w, BudgetsTable(t))
}

func writeCSV(w io.Writer, tab [][]string) error {
	csvw := csv.NewWriter(w)
	return csvw.WriteAll(tab)
}

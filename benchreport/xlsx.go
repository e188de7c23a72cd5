// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/3dcf-labs/dcfbench/benchagg"
)

// Sheet names used by the workbook writers.
const (
	RunsSheet    = "runs"
	BudgetsSheet = "budgets"
)

// meanCell returns the cell value for m, or nil for an undefined mean.
func meanCell(m benchagg.Mean) any {
	if !m.Defined() {
		return nil
	}
	return Round(m.Value())
}

// WriteRunsXLSX writes the run-level table to w as a single-sheet
// workbook. Numeric columns are stored as numbers. An undefined mean
// leaves its cell empty.
func WriteRunsXLSX(w io.Writer, runs []benchagg.RunSummary) error {
	rows := make([][]any, len(runs))
	for i, r := range runs {
		rows[i] = []any{
			r.RunID, r.Preset, r.Mode, r.Budget,
			r.Documents, r.Pages,
			Round(r.TokensPerPage), Round(r.CellsPerPage),
			meanCell(r.CER), meanCell(r.WER),
		}
	}
	return writeXLSX(w, RunsSheet, RunsHeader, rows)
}

// WriteBudgetsXLSX writes the budget × bin table to w as a single-sheet
// workbook.
func WriteBudgetsXLSX(w io.Writer, t *benchagg.BudgetTable) error {
	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = []any{
			r.Budget, r.Label, r.Count,
			Round(r.PrecisionMean()), Round(r.CompressionMean()),
		}
	}
	return writeXLSX(w, BudgetsSheet, BudgetsHeader, rows)
}

func writeXLSX(w io.Writer, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}
	for j, h := range header {
		if err := set(j+1, 1, h); err != nil {
			return err
		}
	}
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			if err := set(j+1, i+2, v); err != nil {
				return err
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/3dcf-labs/dcfbench/benchagg"
	"github.com/3dcf-labs/dcfbench/benchlog"
	"github.com/3dcf-labs/dcfbench/binning"
	"github.com/3dcf-labs/dcfbench/internal/diff"
)

func f(x float64) *float64 { return &x }
func s(x string) *string   { return &x }

func runs(t *testing.T) []benchagg.RunSummary {
	t.Helper()
	var r benchagg.Runs
	r.AddAll([]benchlog.DocRow{
		{RunID: s("r1"), Preset: "reports", Mode: "encode", Budget: benchlog.S("256"), Pages: f(1), Tokens3DCF: f(10), CER: f(0.1)},
		{RunID: s("r1"), Pages: f(2), Tokens3DCF: f(20)},
		{RunID: s("r2"), Preset: "a,b", Pages: f(4), Tokens3DCF: f(100), AvgCellsKeptPerPage: f(2.5), WER: f(0.25)},
	})
	sums, err := r.Summaries(benchagg.CER)
	if err != nil {
		t.Fatal(err)
	}
	return sums
}

func budgets(t *testing.T) *benchagg.BudgetTable {
	t.Helper()
	scheme, err := binning.Parse("0,200")
	if err != nil {
		t.Fatal(err)
	}
	b := benchagg.NewBudgetBins(scheme)
	b.AddAll([]benchlog.PageRow{
		{Budget: benchlog.S("256"), TokensGoldPage: f(50), PrecisionPage: f(0.8), CompressionRatio: f(4)},
		{Budget: benchlog.S("256"), TokensGoldPage: f(150), PrecisionPage: f(0.6), CompressionRatio: f(6)},
		{TokensGoldPage: f(300), PrecisionPage: f(1.0 / 3), CompressionRatio: f(2)},
	})
	tab, err := b.Table()
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestWriteRunsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRunsCSV(&buf, runs(t)); err != nil {
		t.Fatal(err)
	}
	want := `run_id,preset,mode,budget,documents,pages,tokens_per_page,cells_per_page,mean_cer,mean_wer
r1,reports,encode,256,2,3,10.0,0.0,0.1,
r2,"a,b",,,1,4,25.0,2.5,,0.25
`
	if d := diff.Diff(want, buf.String()); d != "" {
		t.Errorf("wrong CSV (-want +got):\n%s", d)
	}
}

func TestWriteBudgetsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBudgetsCSV(&buf, budgets(t)); err != nil {
		t.Fatal(err)
	}
	want := `budget,bin,count,precision_mean,compression_mean
auto,0-200,0,0.0,0.0
auto,200+,1,0.333333,2.0
256,0-200,2,0.7,5.0
256,200+,0,0.0,0.0
`
	if d := diff.Diff(want, buf.String()); d != "" {
		t.Errorf("wrong CSV (-want +got):\n%s", d)
	}
}

func TestFormatDecimal(t *testing.T) {
	for _, test := range []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{10, "10.0"},
		{0.1, "0.1"},
		{2.0 / 3, "0.666667"},
		{1.0000004, "1.0"},
		{123.4567891, "123.456789"},
		{-0.25, "-0.25"},
		{0.1234565, "0.123456"},
		{5e-7, "0.0"},
	} {
		if got := formatDecimal(test.in); got != test.want {
			t.Errorf("formatDecimal(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	sums := runs(t)
	sums[0].RunID = "<r1>"
	var buf bytes.Buffer
	if err := WriteRunsHTML(&buf, "Accuracy vs macro tokens", sums); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"<caption>Accuracy vs macro tokens</caption>",
		"<th>run_id<th>preset",
		"<td>&lt;r1&gt;<td>reports",
		"<td>10.0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML missing %q:\n%s", want, got)
		}
	}

	buf.Reset()
	if err := WriteBudgetsHTML(&buf, "budgets", budgets(t)); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "<tr><td>"); got != 4 {
		t.Errorf("got %d budget rows, want 4", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRunsXLSX(&buf, runs(t)); err != nil {
		t.Fatal(err)
	}
	wb, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()

	if got := wb.GetSheetList(); len(got) != 1 || got[0] != RunsSheet {
		t.Fatalf("sheets = %q, want [%q]", got, RunsSheet)
	}
	for cell, want := range map[string]string{
		"A1": "run_id",
		"J1": "mean_wer",
		"A2": "r1",
		"F2": "3",
		"I2": "0.1",
		"J2": "",
		"B3": "a,b",
		"I3": "",
		"J3": "0.25",
	} {
		got, err := wb.GetCellValue(RunsSheet, cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	buf.Reset()
	if err := WriteBudgetsXLSX(&buf, budgets(t)); err != nil {
		t.Fatal(err)
	}
	wb2, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer wb2.Close()
	rows, err := wb2.GetRows(BudgetsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if got := strings.Join(rows[3], " "); got != "256 0-200 2 0.7 5" {
		t.Errorf("row 3 = %q", got)
	}
}

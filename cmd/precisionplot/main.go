// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Precisionplot summarizes page-level precision and compression from
// 3DCF bench logs, per token budget and gold-token bin.
//
// Usage:
//
//	precisionplot [flags] bench.jsonl [more.jsonl ...]
//
// Precisionplot reads the "page" rows of every input and assigns each
// page to a bin by its tokens_gold_page. The -bins flag lists the bin
// edges (default 0,200,400,600,800,1000,1200). Edges are sorted and
// deduplicated; each bin runs from one edge up to the next, and the
// last bin has no upper bound. Pages below the first edge, and pages
// missing tokens_gold_page, precision_page, or compression_ratio, are
// skipped. Pages without a budget are grouped under "auto".
//
// The summary has one row for every budget and every bin, with zero
// counts and means for empty cells. Budgets are listed with "auto"
// first and the rest in string order. It is written as CSV to
// -csv-out (default precision_vs_compression.csv). A chart of mean
// precision bars and mean compression lines is written as PNG to
// -png-out (default precision_vs_compression.png).
//
// The remaining flags behave as for accuracyplot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/3dcf-labs/dcfbench/benchagg"
	"github.com/3dcf-labs/dcfbench/benchchart"
	"github.com/3dcf-labs/dcfbench/benchlog"
	"github.com/3dcf-labs/dcfbench/benchreport"
	"github.com/3dcf-labs/dcfbench/binning"
	"github.com/3dcf-labs/dcfbench/internal/cli"
	"github.com/3dcf-labs/dcfbench/internal/config"
	"github.com/3dcf-labs/dcfbench/storage/db"
)

func main() {
	log.SetPrefix("precisionplot: ")
	log.SetFlags(0)
	if err := precisionplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			os.Exit(0)
		case errors.Is(err, cli.ErrUsage):
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func precisionplot(stdout, stderr io.Writer, args []string) error {
	cmd := cli.New("precisionplot", "precision_vs_compression", stdout, stderr)
	cmd.Flags.String("bins", config.Default().Bins, "comma-separated gold-token bin `edges`")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	scheme, err := binning.Parse(cmd.Config.Bins)
	if err != nil {
		return err
	}

	pages, err := benchlog.LoadPages(cmd.Inputs())
	if err != nil {
		return err
	}
	bins := benchagg.NewBudgetBins(scheme)
	bins.AddAll(pages)
	missing, below := bins.Skipped()
	cmd.Log.Debug("aggregated page rows", "rows", len(pages), "missing_fields", missing, "below_first_bin", below)
	table, err := bins.Table()
	if err != nil {
		return err
	}

	chart := benchchart.ProjectBudgets(table)
	r := benchchart.Renderer{DPI: cmd.Config.DPI}
	err = cmd.WriteOutputs(
		cli.Output{Path: *cmd.CSVOut, Write: func(w io.Writer) error {
			return benchreport.WriteBudgetsCSV(w, table)
		}},
		cli.Output{Path: *cmd.PNGOut, Write: func(w io.Writer) error {
			return r.BarLine(w, chart)
		}},
		cli.Output{Path: *cmd.HTMLOut, Write: func(w io.Writer) error {
			return benchreport.WriteBudgetsHTML(w, chart.Title, table)
		}},
		cli.Output{Path: *cmd.XLSXOut, Write: func(w io.Writer) error {
			return benchreport.WriteBudgetsXLSX(w, table)
		}},
		cli.Output{Path: *cmd.JSONOut, Write: cli.WriteJSON(chart)},
	)
	if err != nil {
		return fmt.Errorf("writing outputs: %w", err)
	}

	return cmd.Record(context.Background(), func(ctx context.Context, d *db.DB) (string, error) {
		return d.RecordBudgets(ctx, cmd.Source(), table)
	})
}

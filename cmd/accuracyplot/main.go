// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Accuracyplot summarizes document-level accuracy from 3DCF bench logs.
//
// Usage:
//
//	accuracyplot [flags] bench.jsonl [more.jsonl ...]
//
// Each input is a newline-delimited JSON bench log. Accuracyplot reads
// the "doc" rows of every input, in order, and groups them by run_id.
// For each run it reports the number of documents and pages, the
// average 3DCF tokens and kept cells per page, and the mean CER and
// WER. Rows without a run_id are grouped under "unknown". An input
// named "-" is read from standard input.
//
// The summary is written as CSV to -csv-out (default
// accuracy_vs_macrotokens.csv), and a scatter plot of tokens per page
// against the chosen metric is written as PNG to -png-out (default
// accuracy_vs_macrotokens.png). Setting either path to the empty
// string skips that output.
//
// The -metric flag selects cer (the default) or wer. With cer, runs
// that carry no CER fall back to their WER. Runs with neither are
// left out.
//
// The -html-out, -xlsx-out, and -json-out flags write the summary as
// an HTML table, the summary as an XLSX workbook, and the chart data
// as JSON. A path of "-" writes to standard output.
//
// Settings may also come from a YAML file named by -config and from
// DCFBENCH_* environment variables. Flags set on the command line take
// precedence over both. With -dsn, the summary is also recorded in a
// SQLite or MySQL history database (see -db-driver).
//
// Outputs are written together: if any of them fails, none of the
// destination files change.
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
	"github.com/3dcf-labs/dcfbench/internal/cli"
	"github.com/3dcf-labs/dcfbench/internal/config"
	"github.com/3dcf-labs/dcfbench/storage/db"
)

func main() {
	log.SetPrefix("accuracyplot: ")
	log.SetFlags(0)
	if err := accuracyplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			os.Exit(0)
		case errors.Is(err, cli.ErrUsage):
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func accuracyplot(stdout, stderr io.Writer, args []string) error {
	cmd := cli.New("accuracyplot", "accuracy_vs_macrotokens", stdout, stderr)
	cmd.Flags.String("metric", config.Default().Metric, "plot `metric` on the Y axis: cer or wer")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	metric, err := benchagg.ParseMetric(cmd.Config.Metric)
	if err != nil {
		return err
	}

	docs, err := benchlog.LoadDocs(cmd.Inputs())
	if err != nil {
		return err
	}
	var runs benchagg.Runs
	runs.AddAll(docs)
	sums, err := runs.Summaries(metric)
	if err != nil {
		return err
	}
	cmd.Log.Debug("aggregated doc rows", "rows", len(docs), "runs", len(runs.IDs()), "reported", len(sums))
	if dropped := len(runs.IDs()) - len(sums); dropped > 0 {
		cmd.Log.Debug("dropped runs without pages or metric", "runs", dropped)
	}

	chart := benchchart.ProjectRuns(sums, metric)
	r := benchchart.Renderer{DPI: cmd.Config.DPI}
	err = cmd.WriteOutputs(
		cli.Output{Path: *cmd.CSVOut, Write: func(w io.Writer) error {
			return benchreport.WriteRunsCSV(w, sums)
		}},
		cli.Output{Path: *cmd.PNGOut, Write: func(w io.Writer) error {
			return r.Scatter(w, chart)
		}},
		cli.Output{Path: *cmd.HTMLOut, Write: func(w io.Writer) error {
			return benchreport.WriteRunsHTML(w, chart.Title, sums)
		}},
		cli.Output{Path: *cmd.XLSXOut, Write: func(w io.Writer) error {
			return benchreport.WriteRunsXLSX(w, sums)
		}},
		cli.Output{Path: *cmd.JSONOut, Write: cli.WriteJSON(chart)},
	)
	if err != nil {
		return fmt.Errorf("writing outputs: %w", err)
	}

	return cmd.Record(context.Background(), func(ctx context.Context, d *db.DB) (string, error) {
		return d.RecordRuns(ctx, cmd.Source(), metric, sums)
	})
}

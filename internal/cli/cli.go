// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli implements the flag handling and output plumbing shared
// by the report commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/3dcf-labs/dcfbench/benchlog"
	"github.com/3dcf-labs/dcfbench/internal/atomicfile"
	"github.com/3dcf-labs/dcfbench/internal/config"
	"github.com/3dcf-labs/dcfbench/internal/logging"
	"github.com/3dcf-labs/dcfbench/storage/db"
	_ "github.com/3dcf-labs/dcfbench/storage/db/sqlite3"
)

// ErrUsage is returned for invalid command lines, after the usage
// message has been printed.
var ErrUsage = errors.New("invalid usage")

// A Command is one invocation of a report command.
type Command struct {
	Name  string
	Flags *flag.FlagSet

	// Output paths. An empty path skips that artifact, and "-" writes
	// it to standard output.
	CSVOut, PNGOut, HTMLOut, XLSXOut, JSONOut *string

	configPath *string

	// Set by Parse.
	Config config.Config
	Log    *slog.Logger

	stdout, stderr io.Writer
}

// New returns a Command with the shared flags defined. base names the
// default CSV and PNG outputs. Callers add their own flags to
// c.Flags before calling Parse.
func New(name, base string, stdout, stderr io.Writer) *Command {
	def := config.Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	c := &Command{Name: name, Flags: fs, stdout: stdout, stderr: stderr}

	c.CSVOut = fs.String("csv-out", base+".csv", "write the summary table to `file`")
	c.PNGOut = fs.String("png-out", base+".png", "write the chart to `file`")
	c.HTMLOut = fs.String("html-out", "", "also write the summary table as HTML to `file`")
	c.XLSXOut = fs.String("xlsx-out", "", "also write the summary table as an XLSX workbook to `file`")
	c.JSONOut = fs.String("json-out", "", "also write the chart data as JSON to `file`")
	c.configPath = fs.String("config", "", "read settings from YAML `file`")
	fs.Int("dpi", def.DPI, "chart resolution in dots per inch")
	fs.String("dsn", def.DB.DSN, "record summaries in the database at `dsn`")
	fs.String("db-driver", def.DB.Driver, "database `driver` for -dsn: sqlite3 or mysql")
	fs.String("log-level", def.Log.Level, "log `level`: debug, info, warn, or error")
	fs.String("log-format", def.Log.Format, "log `format`: text or json")
	return c
}

// Parse parses args and loads the layered configuration.
func (c *Command) Parse(args []string) error {
	c.Flags.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: %s [flags] inputs.jsonl...\n", c.Name)
		c.Flags.PrintDefaults()
	}
	if err := c.Flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return ErrUsage
	}
	if c.Flags.NArg() < 1 {
		c.Flags.Usage()
		return ErrUsage
	}

	cfg, err := config.Load(*c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(c.Flags); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg

	c.Log, err = logging.New(c.stderr, c.Name, cfg.Log)
	return err
}

// Inputs returns the input files named on the command line.
func (c *Command) Inputs() *benchlog.Files {
	return &benchlog.Files{Paths: c.Flags.Args(), AllowStdin: true}
}

// Source describes the inputs for the history database.
func (c *Command) Source() string {
	return strings.Join(c.Flags.Args(), ",")
}

// An Output is one artifact to produce.
type Output struct {
	Path  string
	Write func(io.Writer) error
}

// WriteOutputs produces every output with a non-empty path. Files are
// staged and only replace their destinations once all of them were
// written successfully.
func (c *Command) WriteOutputs(outs ...Output) (err error) {
	var batch atomicfile.Batch
	defer batch.Abort()
	var toStdout []Output
	for _, o := range outs {
		switch o.Path {
		case "":
			continue
		case "-":
			toStdout = append(toStdout, o)
			continue
		}
		if err := batch.Write(o.Path, o.Write); err != nil {
			return err
		}
		c.Log.Debug("staged output", "path", o.Path)
	}
	// Standard output cannot be rolled back, so it waits until every
	// file has been staged.
	for _, o := range toStdout {
		if err := o.Write(c.stdout); err != nil {
			return err
		}
	}
	n := batch.Len()
	if err := batch.Commit(); err != nil {
		return err
	}
	c.Log.Debug("wrote outputs", "files", n)
	return nil
}

// WriteJSON returns an Output writer that encodes v as indented JSON.
func WriteJSON(v any) func(io.Writer) error {
	return func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(v)
	}
}

// Record opens the history database, if one is configured, and calls
// record with it. It logs the new batch ID.
func (c *Command) Record(ctx context.Context, record func(context.Context, *db.DB) (string, error)) error {
	if c.Config.DB.DSN == "" {
		return nil
	}
	d, err := db.OpenSQL(c.Config.DB.Driver, c.Config.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer d.Close()
	id, err := record(ctx, d)
	if err != nil {
		return fmt.Errorf("recording summaries: %w", err)
	}
	c.Log.Info("recorded summaries", "batch", id)
	return nil
}

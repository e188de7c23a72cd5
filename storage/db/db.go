// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db records aggregated bench summaries in a SQL database so
// that successive report runs can be compared.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/3dcf-labs/dcfbench/benchagg"
)

// DB is a high-level interface to a summary history database. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertBatch  *sql.Stmt
	insertRun    *sql.Stmt
	insertBudget *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to limit the pool to one connection.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Batches (
	BatchID VARCHAR(36) PRIMARY KEY,
	Kind VARCHAR(16) NOT NULL,
	Source {{if .sqlite3}}TEXT{{else}}VARCHAR(4096){{end}} NOT NULL,
	Metric VARCHAR(8) NOT NULL,
	Created BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS RunSummaries (
	BatchID VARCHAR(36),
	Seq INTEGER,
	RunID VARCHAR(255),
	Preset VARCHAR(255),
	Mode VARCHAR(255),
	Budget VARCHAR(255),
	Documents BIGINT,
	Pages BIGINT,
	TokensPerPage DOUBLE,
	CellsPerPage DOUBLE,
	CERSum DOUBLE,
	CERCount BIGINT,
	WERSum DOUBLE,
	WERCount BIGINT,
	Selected DOUBLE,
	PRIMARY KEY (BatchID, Seq),
	FOREIGN KEY (BatchID) REFERENCES Batches(BatchID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS BudgetBins (
	BatchID VARCHAR(36),
	Seq INTEGER,
	Budget VARCHAR(255),
	Bin INTEGER,
	Label VARCHAR(64),
	Count BIGINT,
	PrecisionSum DOUBLE,
	CompressionSum DOUBLE,
	PRIMARY KEY (BatchID, Seq),
{{if not .sqlite3}}
	Index (Budget(100), Bin),
{{end}}
	FOREIGN KEY (BatchID) REFERENCES Batches(BatchID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS BudgetBinsBudgetBin ON BudgetBins(Budget, Bin);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertBatch, err = db.sql.Prepare("INSERT INTO Batches(BatchID, Kind, Source, Metric, Created) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertRun, err = db.sql.Prepare(`INSERT INTO RunSummaries(BatchID, Seq, RunID, Preset, Mode, Budget, Documents, Pages,
		TokensPerPage, CellsPerPage, CERSum, CERCount, WERSum, WERCount, Selected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	db.insertBudget, err = db.sql.Prepare(`INSERT INTO BudgetBins(BatchID, Seq, Budget, Bin, Label, Count, PrecisionSum, CompressionSum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// newID is a hook for testing
var newID = uuid.NewString

// Batch kinds.
const (
	RunsKind    = "runs"
	BudgetsKind = "budgets"
)

// A Batch describes one recorded report.
type Batch struct {
	ID      string
	Kind    string
	Source  string
	Metric  string
	Created time.Time
}

// inTx runs fn inside a transaction, committing if fn succeeds.
func (db *DB) inTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	return fn(tx)
}

func (db *DB) newBatch(ctx context.Context, tx *sql.Tx, kind, source, metric string) (string, error) {
	id := newID()
	_, err := tx.StmtContext(ctx, db.insertBatch).ExecContext(ctx, id, kind, source, metric, now().UTC().Unix())
	return id, err
}

// RecordRuns stores one batch holding every run summary, in order. It
// returns the new batch ID. source describes where the input came
// from, typically the input file names.
func (db *DB) RecordRuns(ctx context.Context, source string, metric benchagg.Metric, runs []benchagg.RunSummary) (id string, err error) {
	err = db.inTx(ctx, func(tx *sql.Tx) error {
		id, err = db.newBatch(ctx, tx, RunsKind, source, metric.String())
		if err != nil {
			return err
		}
		stmt := tx.StmtContext(ctx, db.insertRun)
		for i, r := range runs {
			_, err := stmt.ExecContext(ctx, id, i, r.RunID, r.Preset, r.Mode, r.Budget, r.Documents, r.Pages,
				r.TokensPerPage, r.CellsPerPage, r.CER.Sum, r.CER.N, r.WER.Sum, r.WER.N, r.Selected)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// RecordBudgets stores one batch holding every row of t, in order.
func (db *DB) RecordBudgets(ctx context.Context, source string, t *benchagg.BudgetTable) (id string, err error) {
	err = db.inTx(ctx, func(tx *sql.Tx) error {
		id, err = db.newBatch(ctx, tx, BudgetsKind, source, "")
		if err != nil {
			return err
		}
		stmt := tx.StmtContext(ctx, db.insertBudget)
		for i, r := range t.Rows {
			_, err := stmt.ExecContext(ctx, id, i, r.Budget, r.Bin, r.Label, r.Count, r.PrecisionSum, r.CompressionSum)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ErrNotFound is returned by lookups of batches that do not exist.
var ErrNotFound = errors.New("batch not found")

// Batches returns every recorded batch, newest first.
func (db *DB) Batches(ctx context.Context) ([]Batch, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT BatchID, Kind, Source, Metric, Created FROM Batches ORDER BY Created DESC, BatchID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Batch
	for rows.Next() {
		var b Batch
		var created int64
		if err := rows.Scan(&b.ID, &b.Kind, &b.Source, &b.Metric, &created); err != nil {
			return nil, err
		}
		b.Created = time.Unix(created, 0).UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

// CountBatches returns the number of recorded batches.
func (db *DB) CountBatches(ctx context.Context) (int, error) {
	var count int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Batches").Scan(&count)
	return count, err
}

// Runs returns the run summaries recorded in batch id, in their
// original order.
func (db *DB) Runs(ctx context.Context, id string) ([]benchagg.RunSummary, error) {
	if err := db.checkBatch(ctx, id, RunsKind); err != nil {
		return nil, err
	}
	rows, err := db.sql.QueryContext(ctx, `SELECT RunID, Preset, Mode, Budget, Documents, Pages,
		TokensPerPage, CellsPerPage, CERSum, CERCount, WERSum, WERCount, Selected
		FROM RunSummaries WHERE BatchID = ? ORDER BY Seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []benchagg.RunSummary
	for rows.Next() {
		var r benchagg.RunSummary
		err := rows.Scan(&r.RunID, &r.Preset, &r.Mode, &r.Budget, &r.Documents, &r.Pages,
			&r.TokensPerPage, &r.CellsPerPage, &r.CER.Sum, &r.CER.N, &r.WER.Sum, &r.WER.N, &r.Selected)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Budgets returns the budget × bin rows recorded in batch id.
func (db *DB) Budgets(ctx context.Context, id string) ([]benchagg.BinSummary, error) {
	if err := db.checkBatch(ctx, id, BudgetsKind); err != nil {
		return nil, err
	}
	rows, err := db.sql.QueryContext(ctx, `SELECT Budget, Bin, Label, Count, PrecisionSum, CompressionSum
		FROM BudgetBins WHERE BatchID = ? ORDER BY Seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []benchagg.BinSummary
	for rows.Next() {
		var r benchagg.BinSummary
		if err := rows.Scan(&r.Budget, &r.Bin, &r.Label, &r.Count, &r.PrecisionSum, &r.CompressionSum); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (db *DB) checkBatch(ctx context.Context, id, kind string) error {
	var got string
	err := db.sql.QueryRowContext(ctx, "SELECT Kind FROM Batches WHERE BatchID = ?", id).Scan(&got)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if got != kind {
		return fmt.Errorf("batch %s holds %s, not %s", id, got, kind)
	}
	return nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertBatch, db.insertRun, db.insertBudget} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}

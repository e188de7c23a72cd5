// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbtest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/3dcf-labs/dcfbench/storage/db"
	_ "github.com/3dcf-labs/dcfbench/storage/db/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "connect to the MySQL server at this DSN instead of in-memory SQLite")

// createEmptyMySQLDB makes a new, empty database for the test.
func createEmptyMySQLDB(t *testing.T) (dsn string, cleanup func()) {
	cfg, err := mysql.ParseDSN(*mysqlDSN)
	if err != nil {
		t.Fatalf("parse -mysql: %v", err)
	}

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	name := "dcfbench_test_" + hex.EncodeToString(buf)

	cfg.DBName = ""
	admin, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := admin.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		admin.Close()
		t.Fatal(err)
	}

	t.Logf("Using database %q", name)

	cfg.DBName = name
	return cfg.FormatDSN(), func() {
		if _, err := admin.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		admin.Close()
	}
}

// NewDB makes a connection to a testing database, either sqlite3 or
// MySQL depending on the -mysql flag. The database is closed when the
// test finishes.
func NewDB(t *testing.T) *db.DB {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	if *mysqlDSN != "" {
		var cleanup func()
		driverName = "mysql"
		dataSourceName, cleanup = createEmptyMySQLDB(t)
		t.Cleanup(cleanup)
	}
	d, err := db.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	// Make sure the database really is empty.
	batches, err := d.CountBatches(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if batches != 0 {
		t.Fatalf("found %d row(s) in Batches, want 0", batches)
	}
	return d
}

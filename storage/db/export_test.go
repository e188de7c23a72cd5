// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"database/sql"
	"time"
)

func DBSQL(db *DB) *sql.DB {
	return db.sql
}

// SetNow overrides the clock used to stamp batches. The zero time
// restores time.Now.
func SetNow(t time.Time) {
	if t.IsZero() {
		now = time.Now
		return
	}
	now = func() time.Time { return t }
}

// SetNewID overrides batch ID generation. nil restores the default.
func SetNewID(f func() string) {
	if f == nil {
		f = defaultNewID
	}
	newID = f
}

var defaultNewID = newID

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
)

func TestFiles(t *testing.T) {
	dir := filepath.Join("testdata", "files")
	a, b := filepath.Join(dir, "a.jsonl"), filepath.Join(dir, "b.jsonl")

	check := func(f *Files, want ...string) {
		t.Helper()
		var got []string
		for f.Scan() {
			name, line := f.Row().Pos()
			got = append(got, filepath.Base(name)+":"+strconv.Itoa(line)+" "+string(f.Row().Type))
		}
		if err := f.Err(); err != nil {
			got = append(got, "err")
		}
		if len(got) != len(want) {
			t.Fatalf("got %q, want %q", got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("record %d: got %q, want %q", i, got[i], want[i])
			}
		}
	}

	check(&Files{Paths: []string{a, b}},
		"a.jsonl:1 doc", "a.jsonl:3 page", "b.jsonl:1 summary", "b.jsonl:2 doc")
	check(&Files{Paths: []string{b, a}},
		"b.jsonl:1 summary", "b.jsonl:2 doc", "a.jsonl:1 doc", "a.jsonl:3 page")
	check(&Files{Paths: []string{a, filepath.Join(dir, "bad.jsonl"), b}},
		"a.jsonl:1 doc", "a.jsonl:3 page", "bad.jsonl:1 doc", "err")
	check(&Files{Paths: []string{}})
}

func TestFilesMissing(t *testing.T) {
	f := &Files{Paths: []string{filepath.Join("testdata", "files", "a.jsonl"), "does-not-exist.jsonl"}}
	n := 0
	for f.Scan() {
		n++
	}
	if n != 2 {
		t.Errorf("got %d records before error, want 2", n)
	}
	if !errors.Is(f.Err(), syscall.ENOENT) {
		t.Errorf("got error %v, want ENOENT", f.Err())
	}
}

func TestFilesStdin(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	oldStdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = oldStdin }()
	go func() {
		w.Write([]byte(`{"row_type":"doc","run_id":"stdin"}` + "\n"))
		w.Close()
	}()

	docs, err := LoadDocs(&Files{AllowStdin: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].RunID == nil || *docs[0].RunID != "stdin" {
		t.Errorf("got %+v", docs)
	}
}

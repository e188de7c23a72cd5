// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDocs(t *testing.T) {
	dir := filepath.Join("testdata", "files")
	docs, err := LoadDocs(&Files{Paths: []string{filepath.Join(dir, "a.jsonl"), filepath.Join(dir, "b.jsonl")}})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d doc rows, want 2", len(docs))
	}
	if *docs[0].Pages != 1 || *docs[1].Pages != 2 {
		t.Errorf("rows out of order: %+v", docs)
	}
	if docs[0].CER == nil || docs[1].CER != nil {
		t.Errorf("CER presence not preserved: %v, %v", docs[0].CER, docs[1].CER)
	}
	if docs[0].Preset != "reports" || docs[0].Mode != "encode" {
		t.Errorf("got preset %q mode %q", docs[0].Preset, docs[0].Mode)
	}
}

func TestLoadPages(t *testing.T) {
	pages, err := LoadPages(&Files{Paths: []string{filepath.Join("testdata", "files", "a.jsonl")}})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d page rows, want 1", len(pages))
	}
	p := pages[0]
	if *p.TokensGoldPage != 120 || *p.PrecisionPage != 0.9 || *p.CompressionRatio != 4.5 {
		t.Errorf("got %+v", p)
	}
	if p.Budget != S("256") {
		t.Errorf("got budget %+v", p.Budget)
	}
}

func TestLoadEmpty(t *testing.T) {
	path := filepath.Join("testdata", "files", "b.jsonl")
	_, err := LoadPages(&Files{Paths: []string{path}})
	var ee *EmptyInputError
	if !errors.As(err, &ee) {
		t.Fatalf("got %v, want *EmptyInputError", err)
	}
	if ee.Type != PageRowType {
		t.Errorf("got type %q", ee.Type)
	}
	if want := "no page rows found in " + path; err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join("testdata", "files", "bad.jsonl")
	docs, err := LoadDocs(&Files{Paths: []string{path}})
	if docs != nil {
		t.Errorf("got partial result %+v", docs)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want *SyntaxError", err)
	}
	if se.FileName != path || se.Line != 2 {
		t.Errorf("got %s:%d, want %s:2", se.FileName, se.Line, path)
	}
}

func TestLoadClosesOnDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typed.jsonl")
	data := `{"row_type":"doc","run_id":"r1","cer":0.1}
{"row_type":"doc","run_id":"r2","cer":"high"}
{"row_type":"doc","run_id":"r3","cer":0.3}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	files := &Files{Paths: []string{path}}
	if _, err := LoadDocs(files); err == nil {
		t.Fatal("LoadDocs succeeded on a mistyped field")
	}
	if files.file != nil {
		t.Error("input file left open after decode error")
	}
	if files.Scan() {
		t.Error("Scan succeeded after Close")
	}
}

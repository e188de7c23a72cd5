// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func scanAll(t *testing.T, data string) ([]string, error) {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var got []string
	for r.Scan() {
		row := r.Row()
		_, line := row.Pos()
		got = append(got, string(row.Type)+"@"+strconv.Itoa(line))
	}
	return got, r.Err()
}

func TestReaderTypes(t *testing.T) {
	data := `{"row_type":"doc","run_id":"a"}


{"row_type":"page"}
{"row_type":7}
{"other":true}
	{"row_type":"doc"}
`
	got, err := scanAll(t, data)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"doc@1", "page@4", "@5", "@6", "doc@7"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReaderSyntaxError(t *testing.T) {
	for _, test := range []struct {
		name string
		data string
		line int
		n    int
	}{
		{"truncated", "{\"row_type\":\"doc\"}\n\n{\"row_type\":", 3, 1},
		{"garbage", "not json\n{\"row_type\":\"doc\"}\n", 1, 0},
		{"array", "{\"row_type\":\"doc\"}\n[1,2]\n", 2, 1},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := scanAll(t, test.data)
			if len(got) != test.n {
				t.Errorf("got %d rows before error, want %d", len(got), test.n)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("got error %v, want *SyntaxError", err)
			}
			if se.FileName != "test" || se.Line != test.line {
				t.Errorf("got position %s:%d, want test:%d", se.FileName, se.Line, test.line)
			}
			if !strings.HasPrefix(se.Error(), "test:"+strconv.Itoa(test.line)+": invalid json") {
				t.Errorf("unexpected message %q", se.Error())
			}
		})
	}
}

func TestReaderLongLine(t *testing.T) {
	long := `{"row_type":"doc","doc":"` + strings.Repeat("x", 200000) + `"}`
	r := NewReader(strings.NewReader(long+"\n"), "long")
	if !r.Scan() {
		t.Fatalf("Scan failed: %v", r.Err())
	}
	d, err := r.Row().Doc()
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Doc) != 200000 {
		t.Errorf("got doc of length %d", len(d.Doc))
	}
}

func TestReaderReset(t *testing.T) {
	r := NewReader(strings.NewReader("bad\n"), "one")
	if r.Scan() || r.Err() == nil {
		t.Fatal("want error from first input")
	}
	r.Reset(strings.NewReader(`{"row_type":"page"}`), "")
	if !r.Scan() {
		t.Fatalf("Scan after Reset failed: %v", r.Err())
	}
	if name, line := r.Row().Pos(); name != "<unknown>" || line != 1 {
		t.Errorf("got position %s:%d, want <unknown>:1", name, line)
	}
}

func TestDecodeDoc(t *testing.T) {
	r := NewReader(strings.NewReader(`{"row_type":"doc","run_id":null,"pages":2.7,"cer":0,"budget":512,"avg_cells_kept_per_page":null}`), "t")
	if !r.Scan() {
		t.Fatal(r.Err())
	}
	d, err := r.Row().Doc()
	if err != nil {
		t.Fatal(err)
	}
	if d.RunID != nil {
		t.Errorf("RunID = %q, want nil", *d.RunID)
	}
	if d.Pages == nil || *d.Pages != 2.7 {
		t.Errorf("Pages = %v, want 2.7", d.Pages)
	}
	// A present zero must stay distinguishable from an absent field.
	if d.CER == nil || *d.CER != 0 {
		t.Errorf("CER = %v, want present 0", d.CER)
	}
	if d.WER != nil {
		t.Errorf("WER = %v, want absent", *d.WER)
	}
	if d.AvgCellsKeptPerPage != nil {
		t.Errorf("AvgCellsKeptPerPage = %v, want absent", *d.AvgCellsKeptPerPage)
	}
	if d.Budget != S("512") {
		t.Errorf("Budget = %+v, want 512", d.Budget)
	}
}

func TestDecodeTypeMismatch(t *testing.T) {
	r := NewReader(strings.NewReader(`{"row_type":"page","precision_page":"high"}`), "t")
	if !r.Scan() {
		t.Fatal(r.Err())
	}
	_, err := r.Row().Page()
	var se *SyntaxError
	if !errors.As(err, &se) || se.Line != 1 {
		t.Fatalf("got %v, want *SyntaxError at line 1", err)
	}
}

func TestScalar(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Scalar
	}{
		{`{"row_type":"page"}`, Scalar{}},
		{`{"row_type":"page","budget":null}`, Scalar{}},
		{`{"row_type":"page","budget":256}`, S("256")},
		{`{"row_type":"page","budget":"auto"}`, S("auto")},
		{`{"row_type":"page","budget":1.5e3}`, S("1.5e3")},
		{`{"row_type":"page","budget":""}`, S("")},
	} {
		r := NewReader(strings.NewReader(test.in), "t")
		if !r.Scan() {
			t.Fatal(r.Err())
		}
		p, err := r.Row().Page()
		if err != nil {
			t.Fatal(err)
		}
		if p.Budget != test.want {
			t.Errorf("%s: got %+v, want %+v", test.in, p.Budget, test.want)
		}
	}
}

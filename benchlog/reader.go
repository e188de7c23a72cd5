// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// maxLineSize is the longest record line a Reader accepts.
const maxLineSize = 1 << 20

// A Reader reads newline-delimited JSON benchmark records.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Row it returns; a caller should decode or copy anything it needs
// to keep before calling Scan again.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s   *bufio.Scanner
	err error

	row Row
}

// A SyntaxError reports a record line that could not be decoded. It
// is fatal: a Reader stops at the first SyntaxError.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader constructs a reader to parse records from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, maxLineSize)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.row.Type = ""
	r.row.fileName = fileName
	r.row.line = 0
	r.row.data = r.row.data[:0]
}

// header is the part of every record that is decoded eagerly.
type header struct {
	RowType any `json:"row_type"`
}

// Scan advances the reader to the next record and reports whether a
// record was read. Blank lines are skipped.
// The caller should use the Row method to get the record.
// If Scan reaches EOF, an I/O error occurs, or a line is not a JSON
// object, it returns false, in which case the caller should use the
// Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.row.line++
		line := bytes.TrimSpace(r.s.Bytes())
		if len(line) == 0 {
			continue
		}
		var h header
		if err := json.Unmarshal(line, &h); err != nil {
			r.err = &SyntaxError{r.row.fileName, r.row.line, fmt.Sprintf("invalid json: %v", err)}
			return false
		}
		// A non-string row_type can never match, so it is treated
		// the same as a missing one.
		typ, _ := h.RowType.(string)
		r.row.Type = RowType(typ)
		r.row.data = append(r.row.data[:0], line...)
		return true
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.row.fileName, r.row.line+1, err)
	}
	return false
}

// Row returns the record that was just read by Scan.
func (r *Reader) Row() *Row {
	return &r.row
}

// Err returns the first error encountered by the Reader, if any.
// Hitting EOF is not an error.
func (r *Reader) Err() error {
	return r.err
}

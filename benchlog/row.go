// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// A RowType is the value of a record's "row_type" discriminator.
type RowType string

const (
	// DocRowType marks a document-level record.
	DocRowType RowType = "doc"
	// PageRowType marks a page-level record.
	PageRowType RowType = "page"
)

// A Row is a single log record as read by a Reader. Its type has been
// decoded, but its fields have not; use Doc or Page for that.
//
// A Row is owned by the Reader that produced it and is only valid
// until the next call to Scan.
type Row struct {
	// Type is the record's row_type. It is empty if the record has
	// no row_type or if row_type is not a string.
	Type RowType

	fileName string
	line     int
	data     []byte
}

// Pos returns the file name and 1-based line number of the record.
func (r *Row) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Doc decodes r as a document-level record.
func (r *Row) Doc() (DocRow, error) {
	var d DocRow
	err := r.decode(&d)
	return d, err
}

// Page decodes r as a page-level record.
func (r *Row) Page() (PageRow, error) {
	var p PageRow
	err := r.decode(&p)
	return p, err
}

func (r *Row) decode(v any) error {
	if err := json.Unmarshal(r.data, v); err != nil {
		return &SyntaxError{r.fileName, r.line, fmt.Sprintf("invalid %s row: %v", r.Type, err)}
	}
	return nil
}

// A DocRow is a document-level benchmark record.
//
// Optional numeric fields are nil when absent or null in the input.
// No defaults are substituted here; that is up to the consumer.
type DocRow struct {
	RunID  *string `json:"run_id"`
	Doc    string  `json:"doc"`
	Preset string  `json:"preset"`
	Mode   string  `json:"mode"`
	Budget Scalar  `json:"budget"`

	Pages               *float64 `json:"pages"`
	Tokens3DCF          *float64 `json:"tokens_3dcf"`
	AvgCellsKeptPerPage *float64 `json:"avg_cells_kept_per_page"`
	CER                 *float64 `json:"cer"`
	WER                 *float64 `json:"wer"`
}

// A PageRow is a page-level benchmark record.
type PageRow struct {
	RunID   *string `json:"run_id"`
	Doc     string  `json:"doc"`
	PageIdx int     `json:"page_idx"`
	Budget  Scalar  `json:"budget"`

	TokensGoldPage   *float64 `json:"tokens_gold_page"`
	PrecisionPage    *float64 `json:"precision_page"`
	CompressionRatio *float64 `json:"compression_ratio"`
}

// A Scalar is an optional JSON scalar kept in its literal text form.
// Strings are unquoted; numbers, booleans, and other values keep
// their JSON spelling. JSON null is the same as absent.
type Scalar struct {
	Text  string
	Valid bool
}

// S returns a valid Scalar with text s.
func S(s string) Scalar {
	return Scalar{s, true}
}

// String returns the scalar's text, or "" if it is absent.
func (s Scalar) String() string {
	return s.Text
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = Scalar{}
	case len(b) > 0 && b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar{str, true}
	default:
		*s = Scalar{string(b), true}
	}
	return nil
}

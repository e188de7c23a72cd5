// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"fmt"
	"strings"
)

// An EmptyInputError reports that no record of the requested type was
// found in any input.
type EmptyInputError struct {
	Type  RowType
	Paths []string
}

func (e *EmptyInputError) Error() string {
	if len(e.Paths) == 0 {
		return fmt.Sprintf("no %s rows found in input", e.Type)
	}
	return fmt.Sprintf("no %s rows found in %s", e.Type, strings.Join(e.Paths, ", "))
}

// LoadDocs reads every document-level record from files, in order.
// Records of other types are skipped. It is an error if no
// document-level record is found.
func LoadDocs(files *Files) ([]DocRow, error) {
	return load(files, DocRowType, (*Row).Doc)
}

// LoadPages reads every page-level record from files, in order.
// Records of other types are skipped. It is an error if no page-level
// record is found.
func LoadPages(files *Files) ([]PageRow, error) {
	return load(files, PageRowType, (*Row).Page)
}

func load[T any](files *Files, typ RowType, decode func(*Row) (T, error)) ([]T, error) {
	defer files.Close()
	var out []T
	for files.Scan() {
		row := files.Row()
		if row.Type != typ {
			continue
		}
		v, err := decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := files.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &EmptyInputError{typ, files.Paths}
	}
	return out, nil
}

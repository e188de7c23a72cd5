// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares golden files in tests.
package diff

import (
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Diff returns a line-by-line description of the differences between
// want and got, or "" if they are equal. Lines only in want are marked
// "-" and lines only in got are marked "+".
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	return cmp.Diff(lines(want), lines(got))
}

// lines splits s after each newline so a missing final newline shows
// up as a difference in the last line.
func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.SplitAfter(s, "\n")
}

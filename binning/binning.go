// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binning buckets continuous values into half-open ranges
// derived from a list of edges.
//
// Edges e0 < e1 < ... < en define the bins [e0, e1), [e1, e2), ...,
// [en, +Inf). Values below e0 fall in no bin.
package binning

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
)

// Default is the edge list used when none is given.
const Default = "0,200,400,600,800,1000,1200"

// An InvalidSpecError reports an edge list that is empty or contains
// a value that is not a finite number.
type InvalidSpecError struct {
	Spec string
	Msg  string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid bin specification %q: %s", e.Spec, e.Msg)
}

// A Bin is one half-open range [Start, End). If Bounded is false, the
// range extends to +Inf and End is meaningless.
type Bin struct {
	Start   float64
	End     float64
	Bounded bool
}

// Contains reports whether v falls in b.
func (b Bin) Contains(v float64) bool {
	return v >= b.Start && (!b.Bounded || v < b.End)
}

// Label returns "start-end" for a bounded bin and "start+" for the
// unbounded tail.
func (b Bin) Label() string {
	if !b.Bounded {
		return formatEdge(b.Start) + "+"
	}
	return formatEdge(b.Start) + "-" + formatEdge(b.End)
}

func formatEdge(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// A Scheme is an ordered sequence of non-overlapping bins. The last
// bin is always unbounded.
type Scheme struct {
	bins []Bin
}

// Parse returns the Scheme for a comma-separated list of edges. Blank
// items are ignored, and the edges are sorted and deduplicated. At
// least one edge is required.
func Parse(spec string) (*Scheme, error) {
	var edges []float64
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &InvalidSpecError{spec, fmt.Sprintf("bad edge %q", f)}
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, &InvalidSpecError{spec, fmt.Sprintf("edge %q is not finite", f)}
		}
		edges = append(edges, x)
	}
	if len(edges) == 0 {
		return nil, &InvalidSpecError{spec, "bin specification must include at least one value"}
	}
	return New(edges)
}

// New returns the Scheme for edges, which need not be sorted or
// distinct. The caller's slice is not modified.
func New(edges []float64) (*Scheme, error) {
	if len(edges) == 0 {
		return nil, &InvalidSpecError{"", "bin specification must include at least one value"}
	}
	sorted := append([]float64(nil), edges...)
	sort.Float64s(sorted)
	sorted = slice.Nub(sorted).([]float64)

	bins := make([]Bin, len(sorted))
	for i, start := range sorted {
		bins[i].Start = start
		if i+1 < len(sorted) {
			bins[i].End, bins[i].Bounded = sorted[i+1], true
		}
	}
	return &Scheme{bins}, nil
}

// Len returns the number of bins in s.
func (s *Scheme) Len() int {
	return len(s.bins)
}

// Bin returns the i'th bin of s.
func (s *Scheme) Bin(i int) Bin {
	return s.bins[i]
}

// Lookup returns the index of the bin containing v. If v is below the
// first edge (or NaN), it returns -1, false.
func (s *Scheme) Lookup(v float64) (int, bool) {
	if math.IsNaN(v) {
		return -1, false
	}
	// Bins are ascending and disjoint, so the first match is the
	// only match.
	for i, b := range s.bins {
		if v < b.Start {
			continue
		}
		if !b.Bounded || v < b.End {
			return i, true
		}
	}
	return -1, false
}

// Labels returns the label of every bin, in order.
func (s *Scheme) Labels() []string {
	labels := make([]string, len(s.bins))
	for i, b := range s.bins {
		labels[i] = b.Label()
	}
	return labels
}

// String returns the normalized edge list of s, suitable for Parse.
func (s *Scheme) String() string {
	edges := make([]string, len(s.bins))
	for i, b := range s.bins {
		edges[i] = formatEdge(b.Start)
	}
	return strings.Join(edges, ",")
}

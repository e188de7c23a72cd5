// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"
	"math"
	"strings"
)

// A Metric selects which accuracy measure a run-level report plots.
type Metric int

const (
	CER Metric = iota // character error rate
	WER               // word error rate
)

// ParseMetric parses "cer" or "wer", ignoring case.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "cer":
		return CER, nil
	case "wer":
		return WER, nil
	}
	return 0, fmt.Errorf("unknown metric %q (want cer or wer)", s)
}

// String returns "cer" or "wer".
func (m Metric) String() string {
	if m == WER {
		return "wer"
	}
	return "cer"
}

// Name returns the upper-case metric name, as used in titles.
func (m Metric) Name() string {
	return strings.ToUpper(m.String())
}

// A Mean is a running sum and count. It is undefined until at least
// one value has been added.
type Mean struct {
	Sum float64
	N   int
}

// Add returns m with x added.
func (m Mean) Add(x float64) Mean {
	return Mean{m.Sum + x, m.N + 1}
}

// Merge returns the Mean of the values of m and o.
func (m Mean) Merge(o Mean) Mean {
	return Mean{m.Sum + o.Sum, m.N + o.N}
}

// Defined reports whether any value was added to m.
func (m Mean) Defined() bool {
	return m.N > 0
}

// Value returns the mean, or NaN if m is undefined.
func (m Mean) Value() float64 {
	if m.N == 0 {
		return math.NaN()
	}
	return m.Sum / float64(m.N)
}

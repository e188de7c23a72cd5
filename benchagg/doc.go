// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg aggregates 3DCF bench records into report tables.
//
// Runs groups document records by run ID and derives per-run tokens
// per page, cells per page, and mean CER/WER. BudgetBins groups page
// records by budget and by bin of gold tokens per page and produces a
// dense BudgetTable of mean precision and compression ratio.
//
// Both aggregations are single-pass folds. Per-group accumulators are
// values: each record produces a new accumulator that replaces the old
// one in the group map, and partial aggregations can be combined with
// Merge.
package benchagg

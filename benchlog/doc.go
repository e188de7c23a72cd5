// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchlog reads the newline-delimited JSON logs written by
// the 3DCF bench runner.
//
// Each non-blank line is one JSON object. Its "row_type" field selects
// the schema: "doc" for per-document results (DocRow) and "page" for
// per-page results (PageRow). Records of any other type are skipped by
// the loaders without error.
package benchlog

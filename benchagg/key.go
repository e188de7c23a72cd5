// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

// Labels used for groups whose key field is missing.
const (
	UnknownRun = "unknown"
	AutoBudget = "auto"
)

// A Key identifies a group. It is either Known with a value or
// Unspecified, meaning the record did not carry the field.
//
// Groups are keyed by Label, not by Key, so a Known value equal to
// the sentinel label shares a group with Unspecified. The bench logs
// have always been read that way.
type Key struct {
	value string
	known bool
}

// Known returns a Key with value v.
func Known(v string) Key {
	return Key{v, true}
}

// Unspecified is the Key of a record that lacks the field.
var Unspecified Key

// Value returns the key's value and whether it is known.
func (k Key) Value() (string, bool) {
	return k.value, k.known
}

// Label returns the key's value, or sentinel if k is Unspecified.
func (k Key) Label(sentinel string) string {
	if !k.known {
		return sentinel
	}
	return k.value
}

func runKey(runID *string) Key {
	if runID == nil || *runID == "" {
		return Unspecified
	}
	return Known(*runID)
}

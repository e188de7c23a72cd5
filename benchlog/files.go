// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"os"
)

// A Files reads benchmark records from a sequence of input files, in
// the order given. Records from all files form one stream.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowStdin indicates that the path "-" should be treated as
	// stdin and if the file list is empty, it should be treated
	// as consisting of stdin.
	//
	// This is generally the desired behavior when the file list
	// comes from command-line flags.
	AllowStdin bool

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []string

	reader  Reader
	file    *os.File
	isStdin bool
	err     error
}

// init does first-use initialization of f.
func (f *Files) init() {
	f.inputs = []string{}
	if f.AllowStdin && len(f.Paths) == 0 {
		f.inputs = append(f.inputs, "-")
	}
	f.inputs = append(f.inputs, f.Paths...)
}

// Scan advances the reader to the next record in the sequence of
// files and reports whether a record was read. The caller should use
// the Row method to get the record. If Scan reaches the end of the
// file sequence, or if an error occurs, it returns false. In this
// case, the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	if f.inputs == nil {
		f.init()
	}

	for {
		if f.file == nil {
			// Open the next file.
			if len(f.inputs) == 0 {
				return false
			}
			path := f.inputs[0]
			f.inputs = f.inputs[1:]

			if f.AllowStdin && path == "-" {
				f.isStdin, f.file = true, os.Stdin
				f.reader.Reset(f.file, "<stdin>")
			} else {
				file, err := os.Open(path)
				if err != nil {
					f.err = err
					return false
				}
				f.isStdin, f.file = false, file
				f.reader.Reset(f.file, path)
			}
		}

		if f.reader.Scan() {
			return true
		}
		err := f.reader.Err()
		f.close()
		if err != nil {
			f.err = err
			return false
		}
		// Just an EOF. Move on to the next file.
	}
}

// Close closes the file currently being read, if any. Scan does this
// itself at the end of each file, so Close is only needed when reading
// stops early. Scan returns false after Close.
func (f *Files) Close() {
	f.close()
	f.inputs = []string{}
}

func (f *Files) close() {
	if f.file != nil && !f.isStdin {
		f.file.Close()
	}
	f.file = nil
}

// Row returns the record that was just read by Scan.
// See Reader.Row.
func (f *Files) Row() *Row {
	return f.reader.Row()
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

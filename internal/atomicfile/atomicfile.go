// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package atomicfile writes a group of output files so that either all
// of them appear at their destinations or none of them change.
//
// A failed Commit restores the previous destinations. A crash in the
// middle of Commit can leave originals saved as ".<name>.tmp*.orig"
// beside their destinations.
package atomicfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type staged struct {
	f    *os.File
	dest string
}

// A Batch stages files in temporary files next to their destinations.
//
// Typical use is:
//
//	var b atomicfile.Batch
//	defer b.Abort()
//	if err := b.Write(path, writeFn); err != nil { ... }
//	return b.Commit()
type Batch struct {
	files []staged
	done  bool
}

// Write stages the output of fn for path. The destination is not
// touched until Commit.
func (b *Batch) Write(path string, fn func(io.Writer) error) error {
	if b.done {
		return errors.New("atomicfile: write after commit or abort")
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp*")
	if err != nil {
		return err
	}
	b.files = append(b.files, staged{f, path})
	if err := f.Chmod(0644); err != nil {
		return err
	}
	if err := fn(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// rename is replaced in tests.
var rename = os.Rename

// Commit flushes every staged file and renames each into place. Existing
// destinations are moved aside first; if any rename fails, the files
// already moved are taken back out and the originals restored. After
// Commit the batch is finished and Abort does nothing.
func (b *Batch) Commit() error {
	if b.done {
		return errors.New("atomicfile: batch already finished")
	}
	for _, s := range b.files {
		if err := s.f.Sync(); err != nil {
			return err
		}
		if err := s.f.Close(); err != nil {
			return err
		}
	}

	// backups[i] is the saved original of b.files[i].dest, or "".
	backups := make([]string, len(b.files))
	restore := func(placed int) {
		for i := placed - 1; i >= 0; i-- {
			os.Remove(b.files[i].dest)
		}
		for i, bak := range backups {
			if bak != "" {
				rename(bak, b.files[i].dest)
			}
		}
	}
	for i, s := range b.files {
		if _, err := os.Lstat(s.dest); err != nil {
			continue
		}
		bak := s.f.Name() + ".orig"
		if err := rename(s.dest, bak); err != nil {
			restore(0)
			return err
		}
		backups[i] = bak
	}
	for i, s := range b.files {
		if err := rename(s.f.Name(), s.dest); err != nil {
			restore(i)
			// Staged files not yet renamed are removed by Abort.
			b.files = b.files[i:]
			return err
		}
	}
	for _, bak := range backups {
		if bak != "" {
			os.Remove(bak)
		}
	}
	b.files = nil
	b.done = true
	return nil
}

// Abort removes every staged file that was not committed. It is safe
// to call more than once and after Commit.
func (b *Batch) Abort() {
	for _, s := range b.files {
		s.f.Close()
		os.Remove(s.f.Name())
	}
	b.files = nil
	b.done = true
}

// Len returns the number of staged files.
func (b *Batch) Len() int {
	return len(b.files)
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/3dcf-labs/dcfbench/internal/config"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) succeeded")
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "precisionplot", config.Log{Level: "info", Format: "text"})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.Info("skipped rows", "missing", 2)
	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug record logged at info level: %s", got)
	}
	for _, want := range []string{"level=INFO", `msg="skipped rows"`, "cmd=precisionplot", "missing=2"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %s", want, got)
		}
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "accuracyplot", config.Log{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("loaded", "rows", 3)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not JSON: %v: %s", err, buf.String())
	}
	if rec["msg"] != "loaded" || rec["cmd"] != "accuracyplot" || rec["rows"] != float64(3) {
		t.Errorf("got %v", rec)
	}
}

func TestBadConfig(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "x", config.Log{Level: "info", Format: "xml"}); err == nil {
		t.Error("xml format succeeded")
	}
	if _, err := New(&bytes.Buffer{}, "x", config.Log{Level: "loud"}); err == nil {
		t.Error("bad level succeeded")
	}
}

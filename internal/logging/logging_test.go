// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		want   string
		debug  bool
	}{
		{name: "defaults", want: "level=INFO"},
		{name: "json", level: "info", format: "json", want: `"level":"INFO"`},
		{name: "debug", level: "debug", format: "text", want: "level=INFO", debug: true},
		{name: "upper case", level: "WARN", format: "TEXT"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(tc.level, tc.format, &buf)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			logger.Debug("dbg")
			logger.Info("hello")

			out := buf.String()
			if !strings.Contains(out, tc.want) {
				t.Errorf("output %q does not contain %q", out, tc.want)
			}
			if got := strings.Contains(out, "dbg"); got != tc.debug {
				t.Errorf("debug logged = %v, want %v", got, tc.debug)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("verbose", "text", nil); err == nil {
		t.Error("New accepted an unknown level")
	}
	if _, err := New("info", "xml", nil); err == nil {
		t.Error("New accepted an unknown format")
	}
}

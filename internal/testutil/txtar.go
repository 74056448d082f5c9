// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package testutil provides testing utilities for datamatic.
package testutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Case represents a parsed expansion case from a txtar archive.
type Case struct {
	// Name is the test case name (the filename without extension).
	Name string

	// Description is the comment block before any files.
	Description string

	// Spec is the contents of "spec.json".
	Spec []byte

	// Template is the contents of "template".
	Template []byte

	// Want is the expected expansion. Nil when the case expects an error.
	Want []byte

	// Error is a substring the expansion error must contain.
	Error string
}

// ParseCase parses a txtar archive into a test Case.
// The archive should contain:
//   - A description comment (text before first file)
//   - A "spec.json" file with the component specification
//   - A "template" file with the template text
//   - Exactly one of "want" (expected output) or "error" (expected error text)
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
	}

	for _, f := range ar.Files {
		switch f.Name {
		case "spec.json":
			c.Spec = f.Data
		case "template":
			c.Template = f.Data
		case "want":
			c.Want = f.Data
		case "error":
			c.Error = strings.TrimSpace(string(f.Data))
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected spec.json, template, want or error)", f.Name)
		}
	}

	if c.Spec == nil {
		return nil, fmt.Errorf("missing spec.json in archive")
	}
	if c.Template == nil {
		return nil, fmt.Errorf("missing template in archive")
	}
	if (c.Want == nil) == (c.Error == "") {
		return nil, fmt.Errorf("archive needs exactly one of want or error")
	}

	return c, nil
}

// ExpandFunc expands template against the spec JSON.
type ExpandFunc func(spec, template []byte) ([]byte, error)

// Run executes the test case using the provided expand function.
func (c *Case) Run(t *testing.T, expand ExpandFunc) {
	t.Helper()

	got, err := expand(c.Spec, c.Template)
	if c.Error != "" {
		if err == nil {
			t.Fatalf("expand succeeded, want error containing %q; output:\n%s", c.Error, got)
		}
		if !strings.Contains(err.Error(), c.Error) {
			t.Fatalf("expand error = %q, want it to contain %q", err, c.Error)
		}
		return
	}
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	if diff := cmp.Diff(normalizeContent(c.Want), normalizeContent(got)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

// normalizeContent trims trailing whitespace from each line and trailing
// newlines from the whole text.
func normalizeContent(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// UpdateArchive returns ar with its want file replaced by got.
// Used for golden file updates with -update flag.
func UpdateArchive(ar *txtar.Archive, got []byte) *txtar.Archive {
	result := &txtar.Archive{Comment: ar.Comment}
	for _, f := range ar.Files {
		if f.Name == "spec.json" || f.Name == "template" {
			result.Files = append(result.Files, f)
		}
	}

	if len(got) > 0 && got[len(got)-1] != '\n' {
		got = append(got, '\n')
	}
	result.Files = append(result.Files, txtar.File{Name: "want", Data: got})
	return result
}

// LoadTestCases loads all txtar test cases from a directory, sorted by name.
func LoadTestCases(t *testing.T, dir string) []*Case {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}
	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}
		cases = append(cases, c)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})
	return cases
}

// FormatArchive formats an archive to bytes.
func FormatArchive(ar *txtar.Archive) []byte {
	return txtar.Format(ar)
}

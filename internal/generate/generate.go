// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generate drives a generation run over a project tree: it
// discovers templates, expands each one and writes the results next to
// them.
//
// A run is all or nothing. Every template is expanded before any file is
// written, and the first failing template in lexical order is reported.
package generate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/albertocavalcante/datamatic/expand"
	"github.com/albertocavalcante/datamatic/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Options configures a run.
type Options struct {
	// Dir is the project root.
	Dir string

	// Exclude lists directory name patterns skipped during discovery.
	Exclude []string

	// Jobs bounds concurrent expansions. Values below 1 mean 1.
	Jobs int

	// DryRun prints the output to Stdout instead of writing files.
	DryRun bool

	// Stdout receives dry-run output.
	Stdout io.Writer
}

// Summary reports what a run did.
type Summary struct {
	Templates int
	Written   int
	Unchanged int
	Duration  time.Duration
}

// Run expands every template under opts.Dir with x.
func Run(ctx context.Context, x *expand.Expander, opts Options) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	templates, err := Discover(opts.Dir, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		logger.Warn("No templates found", "dir", opts.Dir)
		return &Summary{Duration: time.Since(start)}, nil
	}

	out, err := Expand(ctx, x, templates, opts.Jobs)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Templates: len(templates)}
	if opts.DryRun {
		if err := Print(opts.Stdout, out); err != nil {
			return nil, err
		}
	} else {
		for _, path := range out.Paths() {
			wrote, err := writeIfChanged(path, out.Files[path])
			if err != nil {
				return nil, err
			}
			if wrote {
				sum.Written++
				logger.Debug("Wrote file", "path", path)
			} else {
				sum.Unchanged++
				logger.Debug("File unchanged", "path", path)
			}
		}
	}

	sum.Duration = time.Since(start)
	logger.Info("Generation complete",
		"templates", sum.Templates,
		"written", sum.Written,
		"unchanged", sum.Unchanged,
		"duration", sum.Duration)
	return sum, nil
}

// Expand expands templates with at most jobs running at once. On failure
// it returns the error of the first failing template in the given order.
func Expand(ctx context.Context, x *expand.Expander, templates []string, jobs int) (*Output, error) {
	logger := ctxlog.FromContext(ctx)
	if jobs < 1 {
		jobs = 1
	}

	results := make([][]byte, len(templates))
	errs := make([]error, len(templates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range templates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				errs[i] = fmt.Errorf("read template: %w", err)
				return nil
			}
			results[i], errs[i] = x.Expand(path, src)
			logger.Debug("Expanded template", "path", path, "bytes", len(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := NewOutput()
	for i, path := range templates {
		if errs[i] != nil {
			return nil, errs[i]
		}
		target, _ := OutputPath(path)
		out.Add(target, results[i])
	}
	return out, nil
}

// Print writes every file of out to w under a header line.
func Print(w io.Writer, out *Output) error {
	for _, path := range out.Paths() {
		if _, err := fmt.Fprintf(w, "==> %s <==\n", path); err != nil {
			return err
		}
		if _, err := w.Write(out.Files[path]); err != nil {
			return err
		}
	}
	return nil
}

// writeIfChanged writes content to path unless the file already holds it.
func writeIfChanged(path string, content []byte) (bool, error) {
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, content) {
		return false, nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

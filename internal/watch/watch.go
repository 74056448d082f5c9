// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package watch re-runs generation when templates or the specification
// change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/albertocavalcante/datamatic/internal/ctxlog"
	"github.com/albertocavalcante/datamatic/internal/generate"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period awaited after a change.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a watch.
type Options struct {
	// Dir is the project root, watched recursively.
	Dir string

	// Spec is the specification file.
	Spec string

	// Exclude lists directory name patterns that are not watched.
	Exclude []string

	// Debounce is the quiet period after a change before fn runs.
	Debounce time.Duration
}

// Run calls fn once, then again after each burst of changes to a template
// or to the spec, until ctx is done. Errors from fn are logged and the
// watch goes on. Generated files are not templates, so writing them does
// not retrigger fn.
func Run(ctx context.Context, opts Options, fn func(context.Context) error) error {
	logger := ctxlog.FromContext(ctx)
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	spec, err := filepath.Abs(opts.Spec)
	if err != nil {
		return fmt.Errorf("resolve spec path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := addTree(w, opts.Dir, opts.Exclude); err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(spec)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(spec), err)
	}

	run := func() {
		if err := fn(ctx); err != nil {
			logger.Error("Generation failed", "error", err)
		}
	}
	run()
	logger.Info("Watching for changes", "dir", opts.Dir, "spec", opts.Spec)

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if isNewDir(ev.Name) && !generate.SkipDir(filepath.Base(ev.Name), opts.Exclude) {
					if err := addTree(w, ev.Name, opts.Exclude); err != nil {
						logger.Warn("Cannot watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
			if relevant(ev, spec) {
				logger.Debug("Change detected", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(opts.Debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "error", err)

		case <-timer.C:
			run()
		}
	}
}

// relevant reports whether ev touches a template or the spec file.
func relevant(ev fsnotify.Event, spec string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if generate.IsTemplate(ev.Name) {
		return true
	}
	abs, err := filepath.Abs(ev.Name)
	return err == nil && abs == spec
}

func isNewDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func addTree(w *fsnotify.Watcher, root string, exclude []string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && generate.SkipDir(d.Name(), exclude) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

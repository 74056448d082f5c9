// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generate

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Infix marks a template: "transform.dm.h" generates "transform.h".
const Infix = ".dm."

// IsTemplate reports whether the base name of path marks a template.
func IsTemplate(path string) bool {
	_, ok := OutputPath(path)
	return ok
}

// OutputPath returns the generated file path for a template path, with the
// ".dm" infix of its base name removed.
func OutputPath(template string) (string, bool) {
	dir, base := filepath.Split(template)
	i := strings.Index(base, Infix)
	if i <= 0 {
		return "", false
	}
	return dir + base[:i] + base[i+len(Infix)-1:], true
}

// Discover returns the templates under root in lexical order. Directories
// whose base name matches an exclude pattern, and ".git", are skipped.
func Discover(root string, exclude []string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && SkipDir(d.Name(), exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsTemplate(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover templates in %s: %w", root, err)
	}
	return out, nil
}

// SkipDir reports whether discovery skips a directory with the given base
// name.
func SkipDir(name string, exclude []string) bool {
	if name == ".git" {
		return true
	}
	for _, p := range exclude {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

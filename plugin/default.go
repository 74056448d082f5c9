// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package plugin

import "sync"

var (
	defaultMu sync.Mutex
	// Default is the process-wide registry populated at startup.
	Default = NewRegistry()
)

// Register adds a plugin to the Default registry.
func Register(p Plugin) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return Default.Register(p)
}

// Freeze freezes the Default registry.
func Freeze() bool {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return Default.Freeze()
}

// Reset replaces the Default registry with an empty one (for testing).
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	Default = NewRegistry()
}

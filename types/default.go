// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package types

// Default is the process-wide registry populated at startup.
var Default = NewRegistry()

// Register adds a renderer to the Default registry.
func Register(name string, fn Renderer) error {
	return Default.Register(name, fn)
}

// Render renders value with the Default registry.
func Render(name string, value any) (string, error) {
	return Default.Render(name, value)
}

// Freeze freezes the Default registry.
func Freeze() bool {
	return Default.Freeze()
}

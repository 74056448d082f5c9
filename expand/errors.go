// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package expand

import "fmt"

// MalformedTemplateError reports a template whose structure cannot be
// expanded: unbalanced or nested block markers, bad block conditions, or a
// placeholder that does not follow the grammar.
type MalformedTemplateError struct {
	Reason string
	Err    error // underlying cause, if any
}

func (e *MalformedTemplateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed template: %s: %v", e.Reason, e.Err)
	}
	return "malformed template: " + e.Reason
}

func (e *MalformedTemplateError) Unwrap() error { return e.Err }

// Error locates an expansion failure in a template.
type Error struct {
	Path string
	Line int // 1-based
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

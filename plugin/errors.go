// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package plugin

import (
	"errors"
	"fmt"
)

// ErrFrozen is returned when registering into a frozen registry.
var ErrFrozen = errors.New("plugin: registry is frozen")

// UnknownFunctionError reports a placeholder path with no registered function.
type UnknownFunctionError struct {
	Path string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Path)
}

// DuplicateFunctionError reports two registrations of the same key.
type DuplicateFunctionError struct {
	Key Key
}

func (e *DuplicateFunctionError) Error() string {
	return fmt.Sprintf("function %q already registered", e.Key)
}

// ArgumentMismatchError reports a disagreement between the arguments a
// template supplies and the ones a function declares.
type ArgumentMismatchError struct {
	Path string

	// Expects is true when the function requires arguments and none were given.
	Expects bool

	// Got is the number of arguments supplied.
	Got int
}

func (e *ArgumentMismatchError) Error() string {
	if e.Expects {
		return fmt.Sprintf("%s requires arguments, none given", e.Path)
	}
	return fmt.Sprintf("%s takes no arguments, %d given", e.Path, e.Got)
}

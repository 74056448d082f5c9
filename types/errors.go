// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
)

// ErrFrozen is returned when registering into a frozen registry.
var ErrFrozen = errors.New("types: registry is frozen")

// UnknownTypeError reports a render request for an unregistered type.
type UnknownTypeError struct {
	Type string

	// Component and Attribute locate the default value, when known.
	Component string
	Attribute string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q%s", e.Type, location(e.Component, e.Attribute))
}

// MalformedDefaultError reports a value a renderer rejected.
type MalformedDefaultError struct {
	Type  string
	Value any

	// Component and Attribute locate the default value, when known.
	Component string
	Attribute string

	Err error
}

func (e *MalformedDefaultError) Error() string {
	return fmt.Sprintf("malformed default for %q%s: %v", e.Type, location(e.Component, e.Attribute), e.Err)
}

func (e *MalformedDefaultError) Unwrap() error { return e.Err }

func location(component, attribute string) string {
	switch {
	case component != "" && attribute != "":
		return fmt.Sprintf(" (component %s, attribute %s)", component, attribute)
	case attribute != "":
		return fmt.Sprintf(" (attribute %s)", attribute)
	case component != "":
		return fmt.Sprintf(" (component %s)", component)
	}
	return ""
}

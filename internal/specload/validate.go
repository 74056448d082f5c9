// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package specload

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/albertocavalcante/datamatic/model"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks s against the structural rules of a specification:
// required fields, unique flag, component and attribute names, and flag
// overrides that name declared flags. All problems are reported together.
func Validate(s *model.Spec) error {
	if s == nil {
		return errors.New("validation failed: empty spec")
	}
	if slices.Contains(s.Components, nil) {
		return errors.New("validation failed: null component")
	}
	for _, c := range s.Components {
		if slices.Contains(c.Attributes, nil) {
			return fmt.Errorf("validation failed: component %s: null attribute", c.Name)
		}
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var errs []error
	flags := make(map[string]bool, len(s.Flags))
	for _, f := range s.Flags {
		if flags[f.Name] {
			errs = append(errs, fmt.Errorf("duplicate flag %q", f.Name))
		}
		flags[f.Name] = true
	}

	checkOverrides := func(where string, overrides map[string]bool) {
		for _, name := range slices.Sorted(maps.Keys(overrides)) {
			if !flags[name] {
				errs = append(errs, fmt.Errorf("%s: override of undeclared flag %q", where, name))
			}
		}
	}

	components := make(map[string]bool, len(s.Components))
	for _, c := range s.Components {
		if components[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate component %q", c.Name))
		}
		components[c.Name] = true
		checkOverrides("component "+c.Name, c.Flags)

		attrs := make(map[string]bool, len(c.Attributes))
		for _, a := range c.Attributes {
			if attrs[a.Name] {
				errs = append(errs, fmt.Errorf("component %s: duplicate attribute %q", c.Name, a.Name))
			}
			attrs[a.Name] = true
			checkOverrides("component "+c.Name+" attribute "+a.Name, a.Flags)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

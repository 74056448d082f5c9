// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition requires a flag to have a given effective value.
type Condition struct {
	Flag  string
	Value bool
}

// String returns the condition in template syntax (NAME=true).
func (c Condition) String() string {
	return c.Flag + "=" + strconv.FormatBool(c.Value)
}

// ParseCondition parses a "NAME=true" or "NAME=false" condition.
func ParseCondition(s string) (Condition, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return Condition{}, fmt.Errorf("condition %q: want FLAG=true or FLAG=false", s)
	}
	switch value {
	case "true":
		return Condition{Flag: name, Value: true}, nil
	case "false":
		return Condition{Flag: name, Value: false}, nil
	}
	return Condition{}, fmt.Errorf("condition %q: value must be true or false", s)
}

// Conditions is a conjunction of flag conditions.
type Conditions []Condition

// String returns the conditions space separated, as written on a block marker.
func (cs Conditions) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Validate reports the first condition naming a flag the Spec does not declare.
func (cs Conditions) Validate(s *Spec) error {
	for _, c := range cs {
		if _, ok := s.Flag(c.Flag); !ok {
			return fmt.Errorf("condition %s: unknown flag %q", c, c.Flag)
		}
	}
	return nil
}

// Match reports whether every condition holds for e. An empty set matches
// everything. Undeclared flags never match.
func (cs Conditions) Match(s *Spec, e Entity) bool {
	for _, c := range cs {
		v, ok := s.EffectiveFlag(e, c.Flag)
		if !ok || v != c.Value {
			return false
		}
	}
	return true
}

// EligibleComponents returns the components matching cs, in declaration order.
func (s *Spec) EligibleComponents(cs Conditions) []*Component {
	var out []*Component
	for _, c := range s.Components {
		if cs.Match(s, c) {
			out = append(out, c)
		}
	}
	return out
}

// EligibleAttributes returns the attributes of c matching cs, in declaration order.
func (s *Spec) EligibleAttributes(c *Component, cs Conditions) []*Attribute {
	var out []*Attribute
	for _, a := range c.Attributes {
		if cs.Match(s, a) {
			out = append(out, a)
		}
	}
	return out
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the component specification that drives generation.
//
// A Spec declares a set of boolean flags and an ordered list of components,
// each with an ordered list of attributes. Templates are expanded once per
// component and, for attribute lines, once per attribute, always in
// declaration order.
//
// A Spec is read-only once loaded; nothing in this module mutates it during
// generation.
package model

// Spec is the top-level specification document.
type Spec struct {
	// Flags declares the toggles that components and attributes may override.
	Flags []Flag `json:"flags" yaml:"flags" validate:"dive"`

	// Components lists every component in declaration order.
	Components []*Component `json:"components" yaml:"components" validate:"dive"`
}

// Flag declares a named boolean toggle and its default value.
type Flag struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Default bool   `json:"default" yaml:"default"`
}

// Component is a single entry of the specification, expanded once per block.
type Component struct {
	// Name is the component identifier, unique within a Spec.
	Name string `json:"name" yaml:"name" validate:"required"`

	// DisplayName is the human-readable name.
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Attributes lists the component's fields in declaration order.
	Attributes []*Attribute `json:"attributes" yaml:"attributes" validate:"dive"`

	// Flags overrides flag defaults for this component.
	Flags map[string]bool `json:"flags,omitempty" yaml:"flags,omitempty"`

	// Custom is an opaque payload available to plugin functions.
	Custom any `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Attribute is a field of a Component.
type Attribute struct {
	// Name is the attribute identifier, unique within its Component.
	Name string `json:"name" yaml:"name" validate:"required"`

	// DisplayName is the human-readable name.
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Type is the target-language type, used as a key into the type registry.
	Type string `json:"type" yaml:"type" validate:"required"`

	// Default is a JSON-like value whose shape depends on Type.
	Default any `json:"default" yaml:"default"`

	// Flags overrides flag defaults for this attribute.
	Flags map[string]bool `json:"flags,omitempty" yaml:"flags,omitempty"`

	// Custom is an opaque payload available to plugin functions.
	Custom any `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Entity is the view shared by components and attributes.
type Entity interface {
	EntityName() string
	EntityDisplayName() string
	FlagOverrides() map[string]bool
	CustomData() any
}

// EntityName returns the component name.
func (c *Component) EntityName() string { return c.Name }

// EntityDisplayName returns the component display name.
func (c *Component) EntityDisplayName() string { return c.DisplayName }

// FlagOverrides returns the component's explicit flag values.
func (c *Component) FlagOverrides() map[string]bool { return c.Flags }

// CustomData returns the component's custom payload.
func (c *Component) CustomData() any { return c.Custom }

// EntityName returns the attribute name.
func (a *Attribute) EntityName() string { return a.Name }

// EntityDisplayName returns the attribute display name.
func (a *Attribute) EntityDisplayName() string { return a.DisplayName }

// FlagOverrides returns the attribute's explicit flag values.
func (a *Attribute) FlagOverrides() map[string]bool { return a.Flags }

// CustomData returns the attribute's custom payload.
func (a *Attribute) CustomData() any { return a.Custom }

// Flag returns the declared flag with the given name.
func (s *Spec) Flag(name string) (Flag, bool) {
	for _, f := range s.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return Flag{}, false
}

// Component returns the component with the given name, or nil.
func (s *Spec) Component(name string) *Component {
	for _, c := range s.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IndexOf returns the declaration position of c, or -1.
func (s *Spec) IndexOf(c *Component) int {
	for i, other := range s.Components {
		if other == c {
			return i
		}
	}
	return -1
}

// Attribute returns the attribute with the given name, or nil.
func (c *Component) Attribute(name string) *Attribute {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// IndexOf returns the declaration position of a within c, or -1.
func (c *Component) IndexOf(a *Attribute) int {
	for i, other := range c.Attributes {
		if other == a {
			return i
		}
	}
	return -1
}

// EffectiveFlag returns the entity's value for the named flag: its explicit
// override if present, else the flag's declared default. The second result
// is false when the flag is not declared in the Spec.
func (s *Spec) EffectiveFlag(e Entity, name string) (bool, bool) {
	f, ok := s.Flag(name)
	if !ok {
		return false, false
	}
	if v, ok := e.FlagOverrides()[name]; ok {
		return v, true
	}
	return f.Default, true
}

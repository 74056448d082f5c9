// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package types converts JSON-like default values into target-language
// literals.
//
// A Registry maps type names to Renderers. A name is either exact ("float")
// or a pattern with captures:
//
//	"std::vector<{}>"   // one captured argument
//	"std::tuple<{}...>" // a comma-separated argument list
//
// Renderers receive the registry itself, so container types render their
// elements by calling back into it.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/albertocavalcante/datamatic/model"
)

// Type is the type name a renderer was selected for.
type Type struct {
	// Name is the full type name as written in the Spec.
	Name string

	// Args holds the pattern captures in order. A variadic capture
	// contributes one element per listed type. Empty for exact names.
	Args []string
}

// Renderer converts value into a literal of type t.
type Renderer func(r *Registry, t Type, value any) (string, error)

type pattern struct {
	source   string
	re       *regexp.Regexp
	variadic []bool // per capture group
	render   Renderer
}

// Registry maps type names and patterns to renderers. It is safe for
// concurrent use; registration fails once the registry is frozen.
type Registry struct {
	mu       sync.RWMutex
	exact    map[string]Renderer
	patterns []*pattern
	frozen   atomic.Bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{exact: make(map[string]Renderer)}
}

// Register associates name with fn. Registering an existing name or pattern
// replaces the previous renderer.
func (r *Registry) Register(name string, fn Renderer) error {
	if fn == nil {
		return fmt.Errorf("register type %q: nil renderer", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return fmt.Errorf("register type %q: %w", name, ErrFrozen)
	}

	if !strings.Contains(name, "{}") {
		r.exact[name] = fn
		return nil
	}

	p, err := compilePattern(name)
	if err != nil {
		return fmt.Errorf("register type %q: %w", name, err)
	}
	p.render = fn
	r.patterns = slices.DeleteFunc(r.patterns, func(old *pattern) bool { return old.source == name })
	r.patterns = append(r.patterns, p)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// built-in registrations at startup.
func (r *Registry) MustRegister(name string, fn Renderer) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Freeze prevents further registrations. It waits for a registration in
// progress and reports whether this call changed the state.
func (r *Registry) Freeze() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.frozen.Swap(true)
}

// Frozen reports whether the registry is frozen.
func (r *Registry) Frozen() bool { return r.frozen.Load() }

// Render renders value as a literal of the named type.
//
// Exact names take precedence over patterns; among patterns the most
// recently registered match wins. An unregistered name yields an
// *UnknownTypeError; a renderer failure is reported as a
// *MalformedDefaultError.
func (r *Registry) Render(name string, value any) (string, error) {
	fn, t, ok := r.lookup(name)
	if !ok {
		return "", &UnknownTypeError{Type: name}
	}

	out, err := fn(r, t, value)
	if err != nil {
		var unknown *UnknownTypeError
		if errors.As(err, &unknown) {
			return "", err
		}
		return "", &MalformedDefaultError{Type: name, Value: value, Err: err}
	}
	return out, nil
}

// RenderDefault renders an attribute's default value, attaching the
// component and attribute names to any error.
func (r *Registry) RenderDefault(c *model.Component, a *model.Attribute) (string, error) {
	out, err := r.Render(a.Type, a.Default)
	if err == nil {
		return out, nil
	}

	var unknown *UnknownTypeError
	if errors.As(err, &unknown) {
		located := *unknown
		located.Component, located.Attribute = c.Name, a.Name
		return "", &located
	}
	var malformed *MalformedDefaultError
	if errors.As(err, &malformed) {
		located := *malformed
		located.Component, located.Attribute = c.Name, a.Name
		return "", &located
	}
	return "", err
}

// Names returns every registered name and pattern, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.exact)+len(r.patterns))
	for name := range r.exact {
		names = append(names, name)
	}
	for _, p := range r.patterns {
		names = append(names, p.source)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) lookup(name string) (Renderer, Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if fn, ok := r.exact[name]; ok {
		return fn, Type{Name: name}, true
	}

	for i := len(r.patterns) - 1; i >= 0; i-- {
		p := r.patterns[i]
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		t, ok := p.capture(name, m[1:])
		if ok {
			return p.render, t, true
		}
	}
	return nil, Type{}, false
}

func (p *pattern) capture(name string, groups []string) (Type, bool) {
	t := Type{Name: name, Args: []string{}}
	for i, g := range groups {
		if !p.variadic[i] {
			t.Args = append(t.Args, strings.TrimSpace(g))
			continue
		}
		list, err := ParseTypeList(g)
		if err != nil {
			return Type{}, false
		}
		t.Args = append(t.Args, list...)
	}
	return t, true
}

func compilePattern(source string) (*pattern, error) {
	p := &pattern{source: source}

	var expr strings.Builder
	expr.WriteString("^")
	rest := source
	for {
		i := strings.Index(rest, "{}")
		if i < 0 {
			expr.WriteString(regexp.QuoteMeta(rest))
			break
		}
		expr.WriteString(regexp.QuoteMeta(rest[:i]))
		rest = rest[i+2:]
		if strings.HasPrefix(rest, "...") {
			rest = rest[3:]
			expr.WriteString("(.*)")
			p.variadic = append(p.variadic, true)
		} else {
			expr.WriteString("(.+)")
			p.variadic = append(p.variadic, false)
		}
	}
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, err
	}
	p.re = re
	return p, nil
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package plugin holds the dispatch table behind template placeholders.
//
// A Plugin is a named set of functions, each reachable from the component
// scope, the attribute scope, or both:
//
//	{{Comp.name}}                 // built-in plugin, bare name
//	{{Comp.builtin.name}}         // built-in plugin, explicit
//	{{Attr.Inspector.Display}}    // extension plugin
//
// Registries have a two-phase lifecycle: plugins are registered at startup,
// then the registry is frozen and only read during expansion.
package plugin

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// BuiltinName is the plugin whose functions are reachable by bare name.
const BuiltinName = "builtin"

// Key identifies a function in one namespace.
type Key struct {
	Namespace Namespace
	Plugin    string
	Func      string
}

// String returns the fully qualified template path.
func (k Key) String() string {
	return k.Namespace.String() + "." + k.Plugin + "." + k.Func
}

// Plugin is a named collection of functions.
type Plugin struct {
	Name  string
	Funcs []Func
}

// Descriptor is a registered function as seen from one namespace.
type Descriptor struct {
	Key  Key
	Func *Func
}

// Signature returns the parameters the function consumes, e.g.
// "(spec, comp, args)".
func (d Descriptor) Signature() string {
	return d.Func.describe(d.Key.Namespace)
}

// Registry maps (namespace, plugin, function) to function descriptors.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	funcs   map[Key]*Func
	plugins []string
	frozen  atomic.Bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[Key]*Func)}
}

// Register adds every function of p under each namespace it declares.
// Registration is all-or-nothing: a duplicate key leaves the registry
// unchanged and returns a *DuplicateFunctionError.
func (r *Registry) Register(p Plugin) error {
	if p.Name == "" {
		return fmt.Errorf("register plugin: empty name")
	}
	if strings.ContainsAny(p.Name, ".|{} ") {
		return fmt.Errorf("register plugin %q: invalid name", p.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return fmt.Errorf("register plugin %q: %w", p.Name, ErrFrozen)
	}

	staged := make(map[Key]*Func)
	for i := range p.Funcs {
		f := p.Funcs[i]
		if f.Name == "" || f.call == nil {
			return fmt.Errorf("register plugin %q: function %d is not initialised", p.Name, i)
		}
		f.Plugin = p.Name
		for _, ns := range []Namespace{Comp, Attr} {
			if f.Namespaces&ns == 0 {
				continue
			}
			key := Key{Namespace: ns, Plugin: p.Name, Func: f.Name}
			if _, exists := r.funcs[key]; exists {
				return &DuplicateFunctionError{Key: key}
			}
			if _, exists := staged[key]; exists {
				return &DuplicateFunctionError{Key: key}
			}
			staged[key] = &f
		}
	}

	for k, f := range staged {
		r.funcs[k] = f
	}
	if !slices.Contains(r.plugins, p.Name) {
		r.plugins = append(r.plugins, p.Name)
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(p Plugin) {
	if err := r.Register(p); err != nil {
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

// Resolve returns the function registered for the given path. An empty
// plugin name refers to the built-in plugin.
func (r *Registry) Resolve(ns Namespace, plugin, name string) (*Func, error) {
	key := Key{Namespace: ns, Plugin: plugin, Func: name}
	if plugin == "" {
		key.Plugin = BuiltinName
	}

	r.mu.RLock()
	f, ok := r.funcs[key]
	r.mu.RUnlock()
	if !ok {
		path := ns.String() + "." + name
		if plugin != "" {
			path = ns.String() + "." + plugin + "." + name
		}
		return nil, &UnknownFunctionError{Path: path}
	}
	return f, nil
}

// Plugins returns the registered plugin names in registration order.
func (r *Registry) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.plugins)
}

// Descriptors returns every registered function, sorted by plugin
// registration order, then namespace, then name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.funcs))
	for k, f := range r.funcs {
		out = append(out, Descriptor{Key: k, Func: f})
	}
	slices.SortFunc(out, func(a, b Descriptor) int {
		if c := slices.Index(r.plugins, a.Key.Plugin) - slices.Index(r.plugins, b.Key.Plugin); c != 0 {
			return c
		}
		if c := int(a.Key.Namespace) - int(b.Key.Namespace); c != 0 {
			return c
		}
		return strings.Compare(a.Key.Func, b.Key.Func)
	})
	return out
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package plugin

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/datamatic/model"
)

// Namespace is the placeholder scope a function answers to.
type Namespace uint8

const (
	// Comp is the component scope ({{Comp.name}}).
	Comp Namespace = 1 << iota
	// Attr is the attribute scope ({{Attr.name}}).
	Attr

	// Both marks a function reachable from either scope.
	Both = Comp | Attr
)

// String returns the template tag of the namespace.
func (n Namespace) String() string {
	switch n {
	case Comp:
		return "Comp"
	case Attr:
		return "Attr"
	case Both:
		return "Comp|Attr"
	}
	return fmt.Sprintf("Namespace(%d)", uint8(n))
}

// ParseNamespace returns the namespace for a template tag.
func ParseNamespace(tag string) (Namespace, bool) {
	switch tag {
	case "Comp":
		return Comp, true
	case "Attr":
		return Attr, true
	}
	return 0, false
}

// Input holds everything a function may consume. Component is always set;
// Attribute is set for attribute-scope calls.
type Input struct {
	Spec      *model.Spec
	Component *model.Component
	Attribute *model.Attribute
	Args      []string
}

// Func describes a plugin function. Build one with CompFunc, AttrFunc or
// EntityFunc, which derive ExpectsArgs and ExpectsSpec from the Go
// signature of the wrapped function.
type Func struct {
	// Name is the function name used in templates.
	Name string

	// Plugin is the owning plugin, set at registration.
	Plugin string

	// Namespaces lists the scopes the function is reachable from.
	Namespaces Namespace

	// ExpectsArgs reports whether the function consumes pipe arguments.
	ExpectsArgs bool

	// ExpectsSpec reports whether the function consumes the whole Spec.
	ExpectsSpec bool

	// Doc is an optional one-line description.
	Doc string

	call func(ns Namespace, in Input) (string, error)
}

// WithDoc returns a copy of f carrying doc.
func (f Func) WithDoc(doc string) Func {
	f.Doc = doc
	return f
}

// Path returns the dotted template path of f in namespace ns.
func (f *Func) Path(ns Namespace) string {
	if f.Plugin == "" || f.Plugin == BuiltinName {
		return ns.String() + "." + f.Name
	}
	return ns.String() + "." + f.Plugin + "." + f.Name
}

// Call invokes f. Supplying arguments to a function that takes none, or
// none to a function that requires them, is an *ArgumentMismatchError.
func (f *Func) Call(ns Namespace, in Input) (string, error) {
	if f.Namespaces&ns == 0 || ns == Both {
		return "", &UnknownFunctionError{Path: f.Path(ns)}
	}
	if len(in.Args) > 0 && !f.ExpectsArgs {
		return "", &ArgumentMismatchError{Path: f.Path(ns), Got: len(in.Args)}
	}
	if len(in.Args) == 0 && f.ExpectsArgs {
		return "", &ArgumentMismatchError{Path: f.Path(ns), Expects: true}
	}
	if ns == Attr && in.Attribute == nil {
		return "", fmt.Errorf("%s: no attribute in scope", f.Path(ns))
	}
	return f.call(ns, in)
}

// CompSignature lists the accepted shapes of component-scope functions.
type CompSignature interface {
	func(*model.Component) (string, error) |
		func(*model.Component, []string) (string, error) |
		func(*model.Spec, *model.Component) (string, error) |
		func(*model.Spec, *model.Component, []string) (string, error)
}

// CompFunc wraps fn as a component-scope function.
func CompFunc[F CompSignature](name string, fn F) Func {
	f := Func{Name: name, Namespaces: Comp}
	switch fn := any(fn).(type) {
	case func(*model.Component) (string, error):
		f.call = func(_ Namespace, in Input) (string, error) { return fn(in.Component) }
	case func(*model.Component, []string) (string, error):
		f.ExpectsArgs = true
		f.call = func(_ Namespace, in Input) (string, error) { return fn(in.Component, in.Args) }
	case func(*model.Spec, *model.Component) (string, error):
		f.ExpectsSpec = true
		f.call = func(_ Namespace, in Input) (string, error) { return fn(in.Spec, in.Component) }
	case func(*model.Spec, *model.Component, []string) (string, error):
		f.ExpectsSpec, f.ExpectsArgs = true, true
		f.call = func(_ Namespace, in Input) (string, error) { return fn(in.Spec, in.Component, in.Args) }
	}
	return f
}

// AttrSignature lists the accepted shapes of attribute-scope functions.
// The enclosing component is always passed alongside the attribute.
type AttrSignature interface {
	func(*model.Component, *model.Attribute) (string, error) |
		func(*model.Component, *model.Attribute, []string) (string, error) |
		func(*model.Spec, *model.Component, *model.Attribute) (string, error) |
		func(*model.Spec, *model.Component, *model.Attribute, []string) (string, error)
}

// AttrFunc wraps fn as an attribute-scope function.
func AttrFunc[F AttrSignature](name string, fn F) Func {
	f := Func{Name: name, Namespaces: Attr}
	switch fn := any(fn).(type) {
	case func(*model.Component, *model.Attribute) (string, error):
		f.call = func(_ Namespace, in Input) (string, error) { return fn(in.Component, in.Attribute) }
	case func(*model.Component, *model.Attribute, []string) (string, error):
		f.ExpectsArgs = true
		f.call = func(_ Namespace, in Input) (string, error) { return fn(in.Component, in.Attribute, in.Args) }
	case func(*model.Spec, *model.Component, *model.Attribute) (string, error):
		f.ExpectsSpec = true
		f.call = func(_ Namespace, in Input) (string, error) { return fn(in.Spec, in.Component, in.Attribute) }
	case func(*model.Spec, *model.Component, *model.Attribute, []string) (string, error):
		f.ExpectsSpec, f.ExpectsArgs = true, true
		f.call = func(_ Namespace, in Input) (string, error) {
			return fn(in.Spec, in.Component, in.Attribute, in.Args)
		}
	}
	return f
}

// EntitySignature lists the accepted shapes of functions reachable from
// both scopes. The entity is the component or the attribute, depending on
// the namespace of the call.
type EntitySignature interface {
	func(model.Entity) (string, error) |
		func(model.Entity, []string) (string, error) |
		func(*model.Spec, model.Entity) (string, error) |
		func(*model.Spec, model.Entity, []string) (string, error)
}

// EntityFunc wraps fn as a function reachable from both scopes.
func EntityFunc[F EntitySignature](name string, fn F) Func {
	f := Func{Name: name, Namespaces: Both}
	switch fn := any(fn).(type) {
	case func(model.Entity) (string, error):
		f.call = func(ns Namespace, in Input) (string, error) { return fn(in.entity(ns)) }
	case func(model.Entity, []string) (string, error):
		f.ExpectsArgs = true
		f.call = func(ns Namespace, in Input) (string, error) { return fn(in.entity(ns), in.Args) }
	case func(*model.Spec, model.Entity) (string, error):
		f.ExpectsSpec = true
		f.call = func(ns Namespace, in Input) (string, error) { return fn(in.Spec, in.entity(ns)) }
	case func(*model.Spec, model.Entity, []string) (string, error):
		f.ExpectsSpec, f.ExpectsArgs = true, true
		f.call = func(ns Namespace, in Input) (string, error) { return fn(in.Spec, in.entity(ns), in.Args) }
	}
	return f
}

func (in Input) entity(ns Namespace) model.Entity {
	if ns == Attr {
		return in.Attribute
	}
	return in.Component
}

// describe renders the inferred parameter list, e.g. "(spec, comp, args)".
func (f *Func) describe(ns Namespace) string {
	var params []string
	if f.ExpectsSpec {
		params = append(params, "spec")
	}
	params = append(params, "comp")
	if ns == Attr {
		params = append(params, "attr")
	}
	if f.ExpectsArgs {
		params = append(params, "args")
	}
	return "(" + strings.Join(params, ", ") + ")"
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package placeholder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/albertocavalcante/datamatic/model"
	"github.com/albertocavalcante/datamatic/plugin"
)

// Scope is the context a placeholder is evaluated in.
type Scope struct {
	Spec      *model.Spec
	Component *model.Component
	Attribute *model.Attribute // nil outside attribute lines
}

// Resolver evaluates expressions against a plugin registry.
type Resolver struct {
	plugins *plugin.Registry
}

// NewResolver returns a Resolver dispatching to plugins.
func NewResolver(plugins *plugin.Registry) *Resolver {
	return &Resolver{plugins: plugins}
}

// Resolve evaluates e in scope.
func (r *Resolver) Resolve(e Expression, scope Scope) (string, error) {
	f, err := r.plugins.Resolve(e.Namespace, e.Plugin, e.Function)
	if err != nil {
		return "", err
	}

	in := plugin.Input{
		Spec:      scope.Spec,
		Component: scope.Component,
		Attribute: scope.Attribute,
		Args:      e.Args,
	}
	out, err := f.Call(e.Namespace, in)
	if err != nil {
		var mismatch *plugin.ArgumentMismatchError
		if errors.As(err, &mismatch) {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", e.Path(), err)
	}
	return out, nil
}

// Substitute replaces the matches of line with their resolved values. The
// matches must come from Find(line).
func (r *Resolver) Substitute(line string, matches []Match, scope Scope) (string, error) {
	if len(matches) == 0 {
		return line, nil
	}

	var b strings.Builder
	prev := 0
	for _, m := range matches {
		out, err := r.Resolve(m.Expr, scope)
		if err != nil {
			return "", err
		}
		b.WriteString(line[prev:m.Start])
		b.WriteString(out)
		prev = m.End
	}
	b.WriteString(line[prev:])
	return b.String(), nil
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package expand turns a template into generated text.
//
// A template is copied line by line. A block, delimited by lines carrying
// the BeginMarker and EndMarker tokens, is emitted once per eligible
// component:
//
//	// DATAMATIC_BEGIN SERIALISABLE=true
//	struct {{Comp.name}} {
//	    {{Attr.type}} {{Attr.name}} = {{Attr.default}};
//	};
//	// DATAMATIC_END
//
// Within each copy, a line holding an Attr placeholder is emitted once per
// eligible attribute of the component. Marker lines are not emitted.
package expand

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/datamatic/model"
	"github.com/albertocavalcante/datamatic/placeholder"
	"github.com/albertocavalcante/datamatic/plugin"
)

// Block markers. A marker is recognised as a whitespace-separated token
// anywhere on its line, so it may sit inside a comment of the target
// language. Tokens after BeginMarker are the block's conditions.
const (
	BeginMarker = "DATAMATIC_BEGIN"
	EndMarker   = "DATAMATIC_END"
)

// Expander expands templates against one Spec. It holds no per-file state
// and may be shared by goroutines.
type Expander struct {
	spec     *model.Spec
	resolver *placeholder.Resolver
}

// New returns an Expander for spec. The plugin registry must be frozen.
func New(spec *model.Spec, plugins *plugin.Registry) (*Expander, error) {
	if spec == nil {
		return nil, errors.New("expand: nil spec")
	}
	if plugins == nil || !plugins.Frozen() {
		return nil, errors.New("expand: plugin registry must be frozen before expansion")
	}
	return &Expander{spec: spec, resolver: placeholder.NewResolver(plugins)}, nil
}

// line is a template line with its terminator.
type line struct {
	text    string
	number  int
	matches []placeholder.Match
}

// block is a buffered region between markers.
type block struct {
	start int
	conds model.Conditions
	lines []line
}

// Expand expands src, read from path. Line terminators are preserved. On
// failure no output is returned and the error is an *Error locating the
// faulty line.
func (x *Expander) Expand(path string, src []byte) ([]byte, error) {
	var (
		out bytes.Buffer
		cur *block
	)
	fail := func(n int, err error) ([]byte, error) {
		return nil, &Error{Path: path, Line: n, Err: err}
	}

	for i, text := range splitLines(string(src)) {
		n := i + 1
		fields := strings.Fields(text)

		switch {
		case slices.Contains(fields, BeginMarker):
			if cur != nil {
				return fail(n, &MalformedTemplateError{
					Reason: fmt.Sprintf("nested %s (block opened on line %d)", BeginMarker, cur.start),
				})
			}
			conds, err := x.conditions(fields)
			if err != nil {
				return fail(n, err)
			}
			cur = &block{start: n, conds: conds}

		case slices.Contains(fields, EndMarker):
			if cur == nil {
				return fail(n, &MalformedTemplateError{Reason: EndMarker + " outside a block"})
			}
			if err := x.emit(&out, path, cur); err != nil {
				return nil, err
			}
			cur = nil

		case cur != nil:
			matches, err := placeholder.Find(text)
			if err != nil {
				return fail(n, &MalformedTemplateError{Reason: "bad placeholder", Err: err})
			}
			cur.lines = append(cur.lines, line{text: text, number: n, matches: matches})

		default:
			out.WriteString(text)
		}
	}

	if cur != nil {
		return fail(cur.start, &MalformedTemplateError{Reason: "unterminated block, missing " + EndMarker})
	}
	return out.Bytes(), nil
}

// conditions parses the tokens following BeginMarker.
func (x *Expander) conditions(fields []string) (model.Conditions, error) {
	var conds model.Conditions
	for _, f := range fields[slices.Index(fields, BeginMarker)+1:] {
		c, err := model.ParseCondition(f)
		if err != nil {
			return nil, &MalformedTemplateError{Reason: "bad block condition", Err: err}
		}
		conds = append(conds, c)
	}
	if err := conds.Validate(x.spec); err != nil {
		return nil, &MalformedTemplateError{Reason: "bad block condition", Err: err}
	}
	return conds, nil
}

// emit writes one copy of b per eligible component.
func (x *Expander) emit(out *bytes.Buffer, path string, b *block) error {
	for _, c := range x.spec.EligibleComponents(b.conds) {
		for _, l := range b.lines {
			scope := placeholder.Scope{Spec: x.spec, Component: c}

			if !placeholder.HasNamespace(l.matches, plugin.Attr) {
				text, err := x.resolver.Substitute(l.text, l.matches, scope)
				if err != nil {
					return &Error{Path: path, Line: l.number, Err: err}
				}
				out.WriteString(text)
				continue
			}

			for _, a := range x.spec.EligibleAttributes(c, b.conds) {
				scope.Attribute = a
				text, err := x.resolver.Substitute(l.text, l.matches, scope)
				if err != nil {
					return &Error{Path: path, Line: l.number, Err: err}
				}
				out.WriteString(text)
			}
		}
	}
	return nil
}

// splitLines splits s after each "\n", keeping terminators. A final line
// without terminator is kept as is.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

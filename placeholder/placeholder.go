// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package placeholder parses and evaluates {{...}} expressions.
//
// The grammar is:
//
//	{{ Namespace [ '.' Plugin ] '.' Function [ '|' Arg ]* }}
//
// where Namespace is Comp or Attr. Arguments are passed verbatim; a pipe
// always separates arguments and cannot be escaped.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/albertocavalcante/datamatic/plugin"
)

const (
	// Open and Close delimit a placeholder.
	Open  = "{{"
	Close = "}}"
)

// pathLike matches delimited text written as a dotted identifier path with
// optional arguments. Such text is parsed as a placeholder even when its
// namespace is misspelled, so {{comp.name}} fails instead of being copied.
var pathLike = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)+\s*(\|.*)?$`)

// Expression is a parsed placeholder.
type Expression struct {
	Namespace plugin.Namespace
	Plugin    string // empty for the built-in plugin
	Function  string
	Args      []string // nil when no arguments are written
}

// Path returns the dotted function path, e.g. "Attr.Inspector.Display".
func (e Expression) Path() string {
	if e.Plugin == "" {
		return e.Namespace.String() + "." + e.Function
	}
	return e.Namespace.String() + "." + e.Plugin + "." + e.Function
}

// String returns the expression in template syntax.
func (e Expression) String() string {
	var b strings.Builder
	b.WriteString(Open)
	b.WriteString(e.Path())
	for _, a := range e.Args {
		b.WriteString("|")
		b.WriteString(a)
	}
	b.WriteString(Close)
	return b.String()
}

// SyntaxError reports a placeholder that does not follow the grammar.
type SyntaxError struct {
	Text   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("placeholder %q: %s", e.Text, e.Reason)
}

// Parse parses the text between the delimiters.
func Parse(text string) (Expression, error) {
	path, rest, hasArgs := strings.Cut(text, "|")

	parts := strings.Split(strings.TrimSpace(path), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Expression{}, &SyntaxError{Text: text, Reason: "want Namespace.Function or Namespace.Plugin.Function"}
	}
	for _, p := range parts {
		if p == "" {
			return Expression{}, &SyntaxError{Text: text, Reason: "empty path segment"}
		}
	}

	ns, ok := plugin.ParseNamespace(parts[0])
	if !ok {
		return Expression{}, &plugin.UnknownFunctionError{Path: strings.TrimSpace(path)}
	}

	e := Expression{Namespace: ns, Function: parts[len(parts)-1]}
	if len(parts) == 3 {
		e.Plugin = parts[1]
	}
	if hasArgs {
		e.Args = strings.Split(rest, "|")
	}
	return e, nil
}

// Match is a placeholder located in a line.
type Match struct {
	// Start and End are byte offsets of the delimited text, delimiters
	// included.
	Start, End int
	Expr       Expression
}

// Find locates the placeholders of line. Delimited text that neither starts
// with a namespace tag nor reads as a dotted path, such as a C++ brace
// initialiser, is ignored.
func Find(line string) ([]Match, error) {
	var out []Match
	for off := 0; ; {
		i := strings.Index(line[off:], Open)
		if i < 0 {
			return out, nil
		}
		start := off + i
		j := strings.Index(line[start+len(Open):], Close)
		if j < 0 {
			return out, nil
		}
		inner := line[start+len(Open) : start+len(Open)+j]
		trimmed := strings.TrimSpace(inner)
		if !strings.HasPrefix(trimmed, "Comp.") && !strings.HasPrefix(trimmed, "Attr.") && !pathLike.MatchString(trimmed) {
			off = start + 1
			continue
		}

		e, err := Parse(trimmed)
		if err != nil {
			return nil, err
		}
		end := start + len(Open) + j + len(Close)
		out = append(out, Match{Start: start, End: end, Expr: e})
		off = end
	}
}

// HasNamespace reports whether any match belongs to ns.
func HasNamespace(matches []Match, ns plugin.Namespace) bool {
	for _, m := range matches {
		if m.Expr.Namespace == ns {
			return true
		}
	}
	return false
}

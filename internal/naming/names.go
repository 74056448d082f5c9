// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package naming converts identifiers between case styles.
package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// Capitalize returns name with the first letter uppercased.
// Returns empty string for empty input.
func Capitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Uncapitalize returns name with the first letter lowercased.
func Uncapitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// words splits CamelCase, snake_case and kebab-case names into words.
// Runs of capitals stay together ("HTTPServer" -> "HTTP", "Server").
func words(name string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == ':':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

// CamelToSnake converts a name to snake_case.
// Fully uppercase names (like "URI") are lowered as a single word.
func CamelToSnake(name string) string {
	ws := words(name)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}

// CamelToScreamingSnake converts a name to SCREAMING_SNAKE_CASE.
func CamelToScreamingSnake(name string) string {
	ws := words(name)
	for i, w := range ws {
		ws[i] = strings.ToUpper(w)
	}
	return strings.Join(ws, "_")
}

// Pascal converts a name to PascalCase.
func Pascal(name string) string {
	ws := words(name)
	for i, w := range ws {
		ws[i] = Capitalize(strings.ToLower(w))
		if isUpper(w) && len(w) > 1 {
			ws[i] = w
		}
	}
	return strings.Join(ws, "")
}

// Camel converts a name to camelCase.
func Camel(name string) string {
	ws := words(name)
	if len(ws) == 0 {
		return ""
	}
	ws[0] = strings.ToLower(ws[0])
	return ws[0] + Pascal(strings.Join(ws[1:], "_"))
}

func isUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// Convert applies the named style: snake, screaming, pascal, camel,
// lower or upper.
func Convert(style, name string) (string, error) {
	switch style {
	case "snake":
		return CamelToSnake(name), nil
	case "screaming":
		return CamelToScreamingSnake(name), nil
	case "pascal":
		return Pascal(name), nil
	case "camel":
		return Camel(name), nil
	case "lower":
		return strings.ToLower(name), nil
	case "upper":
		return strings.ToUpper(name), nil
	}
	return "", fmt.Errorf("unknown case style %q", style)
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package types

import (
	"fmt"
	"strings"
)

var closing = map[rune]rune{'<': '>', '(': ')', '[': ']', '{': '}'}

// ParseTypeList splits a comma-separated list of type names, ignoring commas
// nested inside brackets:
//
//	ParseTypeList("int, std::map<int, int>") // ["int", "std::map<int, int>"]
//
// An empty string yields an empty list. Unbalanced or misordered brackets
// are an error.
func ParseTypeList(s string) ([]string, error) {
	out := []string{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}

	var stack []rune
	start := 0
	for i, r := range s {
		switch r {
		case '<', '(', '[', '{':
			stack = append(stack, closing[r])
		case '>', ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != r {
				return nil, fmt.Errorf("type list %q: unexpected %q at offset %d", s, r, i)
			}
			stack = stack[:len(stack)-1]
		case ',':
			if len(stack) > 0 {
				continue
			}
			item := strings.TrimSpace(s[start:i])
			if item == "" {
				return nil, fmt.Errorf("type list %q: empty element at offset %d", s, i)
			}
			out = append(out, item)
			start = i + 1
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("type list %q: missing %q", s, stack[len(stack)-1])
	}

	item := strings.TrimSpace(s[start:])
	if item == "" {
		return nil, fmt.Errorf("type list %q: trailing comma", s)
	}
	return append(out, item), nil
}

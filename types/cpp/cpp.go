// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package cpp registers renderers for C++ scalar, string, glm and standard
// library container types.
package cpp

import (
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/albertocavalcante/datamatic/types"
)

var integers = []string{
	"int", "unsigned", "short", "long", "std::size_t",
	"std::int8_t", "std::int16_t", "std::int32_t", "std::int64_t",
	"std::uint8_t", "std::uint16_t", "std::uint32_t", "std::uint64_t",
}

// integerWidths gives the bit width and signedness of integer types whose
// range is fixed. The remaining integer types are only checked for sign.
var integerWidths = map[string]struct {
	bits   uint
	signed bool
}{
	"std::int8_t":   {8, true},
	"std::int16_t":  {16, true},
	"std::int32_t":  {32, true},
	"std::int64_t":  {64, true},
	"std::uint8_t":  {8, false},
	"std::uint16_t": {16, false},
	"std::uint32_t": {32, false},
	"std::uint64_t": {64, false},
	"std::size_t":   {64, false},
}

var sequences = []string{
	"std::vector", "std::deque", "std::queue", "std::stack", "std::list",
	"std::forward_list", "std::set", "std::unordered_set", "std::multiset",
	"std::unordered_multiset",
}

var mappings = []string{
	"std::map", "std::unordered_map", "std::multimap", "std::unordered_multimap",
}

var glmVectors = map[string]int{
	"glm::vec2": 2,
	"glm::vec3": 3,
	"glm::vec4": 4,
	"glm::quat": 4,
}

// Register adds every C++ renderer to r.
func Register(r *types.Registry) {
	for _, name := range integers {
		r.MustRegister(name, renderInteger)
	}
	r.MustRegister("float", renderFloat)
	r.MustRegister("double", renderDouble)
	r.MustRegister("bool", renderBool)
	r.MustRegister("std::string", renderString)

	for name := range glmVectors {
		r.MustRegister(name, renderVector)
	}
	for _, name := range sequences {
		r.MustRegister(name+"<{}>", renderSequence)
	}
	for _, name := range mappings {
		r.MustRegister(name+"<{}...>", renderMapping)
	}

	r.MustRegister("std::array<{}...>", renderArray)
	r.MustRegister("std::pair<{}...>", renderPair)
	r.MustRegister("std::tuple<{}...>", renderTuple)
	r.MustRegister("std::variant<{}...>", renderVariant)
	r.MustRegister("std::optional<{}>", renderOptional)
	r.MustRegister("std::unique_ptr<{}>", renderPointer("std::make_unique"))
	r.MustRegister("std::shared_ptr<{}>", renderPointer("std::make_shared"))
	r.MustRegister("std::weak_ptr<{}>", renderWeakPointer)
	r.MustRegister("std::any", renderEmpty)
	r.MustRegister("std::monostate", renderEmpty)
	r.MustRegister("std::function<{}>", renderFunction)
}

func renderInteger(_ *types.Registry, t types.Type, v any) (string, error) {
	n, err := integer(v)
	if err != nil {
		return "", err
	}
	if err := checkRange(t.Name, n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// checkRange rejects n when it does not fit the named integer type.
func checkRange(name string, n *big.Int) error {
	w, ok := integerWidths[name]
	if !ok {
		if name == "unsigned" && n.Sign() < 0 {
			return fmt.Errorf("%s is negative", n)
		}
		return nil
	}

	lo, hi := new(big.Int), new(big.Int).Lsh(big.NewInt(1), w.bits)
	if w.signed {
		hi.Rsh(hi, 1)
		lo.Neg(hi)
	}
	hi.Sub(hi, big.NewInt(1))
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return fmt.Errorf("%s is out of range [%s, %s]", n, lo, hi)
	}
	return nil
}

func renderFloat(_ *types.Registry, _ types.Type, v any) (string, error) {
	f, err := number(v)
	if err != nil {
		return "", err
	}
	return decimal(f) + "f", nil
}

func renderDouble(_ *types.Registry, _ types.Type, v any) (string, error) {
	f, err := number(v)
	if err != nil {
		return "", err
	}
	return decimal(f), nil
}

func renderBool(_ *types.Registry, _ types.Type, v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", fmt.Errorf("want a bool, got %s", describe(v))
	}
	return strconv.FormatBool(b), nil
}

func renderString(_ *types.Registry, _ types.Type, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("want a string, got %s", describe(v))
	}
	return quote(s), nil
}

// quote renders s as a C++ narrow string literal. Control bytes and invalid
// UTF-8 use three-digit octal escapes, which unlike \x escapes cannot absorb
// a following character.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == utf8.RuneError && size == 1, r < 0x20, r == 0x7f:
			fmt.Fprintf(&b, `\%03o`, s[i])
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

func renderVector(r *types.Registry, t types.Type, v any) (string, error) {
	items, err := listOf(v, glmVectors[t.Name])
	if err != nil {
		return "", err
	}
	return braced(r, t.Name, items, func(int) string { return "float" })
}

func renderSequence(r *types.Registry, t types.Type, v any) (string, error) {
	items, err := list(v)
	if err != nil {
		return "", err
	}
	return braced(r, t.Name, items, func(int) string { return t.Args[0] })
}

func renderArray(r *types.Registry, t types.Type, v any) (string, error) {
	if len(t.Args) != 2 {
		return "", fmt.Errorf("want element type and size, got %d arguments", len(t.Args))
	}
	n, err := strconv.Atoi(t.Args[1])
	if err != nil {
		return "", fmt.Errorf("array size %q: %w", t.Args[1], err)
	}
	items, err := listOf(v, n)
	if err != nil {
		return "", err
	}
	return braced(r, t.Name, items, func(int) string { return t.Args[0] })
}

func renderPair(r *types.Registry, t types.Type, v any) (string, error) {
	if len(t.Args) != 2 {
		return "", fmt.Errorf("want 2 type arguments, got %d", len(t.Args))
	}
	items, err := listOf(v, 2)
	if err != nil {
		return "", err
	}
	return braced(r, t.Name, items, func(i int) string { return t.Args[i] })
}

func renderTuple(r *types.Registry, t types.Type, v any) (string, error) {
	items, err := listOf(v, len(t.Args))
	if err != nil {
		return "", err
	}
	return braced(r, t.Name, items, func(i int) string { return t.Args[i] })
}

// renderMapping accepts a list of [key, value] pairs or an object. Object
// keys are emitted in sorted order.
func renderMapping(r *types.Registry, t types.Type, v any) (string, error) {
	if len(t.Args) != 2 {
		return "", fmt.Errorf("want key and value types, got %d arguments", len(t.Args))
	}
	key, val := t.Args[0], t.Args[1]

	var entries []string
	switch m := v.(type) {
	case []any:
		for i, item := range m {
			pair, err := listOf(item, 2)
			if err != nil {
				return "", fmt.Errorf("entry %d: %w", i, err)
			}
			k, err := r.Render(key, pair[0])
			if err != nil {
				return "", fmt.Errorf("entry %d key: %w", i, err)
			}
			e, err := r.Render(val, pair[1])
			if err != nil {
				return "", fmt.Errorf("entry %d value: %w", i, err)
			}
			entries = append(entries, "{"+k+", "+e+"}")
		}
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, raw := range keys {
			k, err := renderKey(r, key, raw)
			if err != nil {
				return "", fmt.Errorf("key %q: %w", raw, err)
			}
			e, err := r.Render(val, m[raw])
			if err != nil {
				return "", fmt.Errorf("key %q value: %w", raw, err)
			}
			entries = append(entries, "{"+k+", "+e+"}")
		}
	default:
		return "", fmt.Errorf("want a list of pairs or an object, got %s", describe(v))
	}
	return t.Name + "{" + strings.Join(entries, ", ") + "}", nil
}

// renderKey renders an object key, which is always text in the document,
// retrying with its JSON reading so numeric keys work ({"1": 2}).
func renderKey(r *types.Registry, typ, raw string) (string, error) {
	out, err := r.Render(typ, raw)
	if err == nil {
		return out, nil
	}
	var decoded any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if dec.Decode(&decoded) != nil {
		return "", err
	}
	return r.Render(typ, decoded)
}

func renderOptional(r *types.Registry, t types.Type, v any) (string, error) {
	if v == nil {
		return "std::nullopt", nil
	}
	inner, err := r.Render(t.Args[0], v)
	if err != nil {
		return "", err
	}
	return t.Name + "{" + inner + "}", nil
}

func renderPointer(maker string) types.Renderer {
	return func(r *types.Registry, t types.Type, v any) (string, error) {
		if v == nil {
			return "nullptr", nil
		}
		inner, err := r.Render(t.Args[0], v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s<%s>(%s)", maker, t.Args[0], inner), nil
	}
}

func renderWeakPointer(_ *types.Registry, _ types.Type, v any) (string, error) {
	if v != nil {
		return "", fmt.Errorf("weak pointers can only default to null, got %s", describe(v))
	}
	return "nullptr", nil
}

func renderEmpty(_ *types.Registry, t types.Type, v any) (string, error) {
	if v != nil {
		return "", fmt.Errorf("%s can only default to null, got %s", t.Name, describe(v))
	}
	return t.Name + "{}", nil
}

// renderVariant renders v as the first alternative that accepts it.
func renderVariant(r *types.Registry, t types.Type, v any) (string, error) {
	for _, alt := range t.Args {
		if out, err := r.Render(alt, v); err == nil {
			return out, nil
		}
	}
	return "", fmt.Errorf("%s matches no alternative of %s", describe(v), t.Name)
}

// renderFunction passes the value through; callables cannot be checked.
func renderFunction(_ *types.Registry, _ types.Type, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("want a string, got %s", describe(v))
	}
	return s, nil
}

func braced(r *types.Registry, name string, items []any, typeOf func(int) string) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		s, err := r.Render(typeOf(i), item)
		if err != nil {
			return "", fmt.Errorf("element %d: %w", i, err)
		}
		parts[i] = s
	}
	return name + "{" + strings.Join(parts, ", ") + "}", nil
}

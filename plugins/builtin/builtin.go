// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package builtin provides the functions reachable by bare name in
// templates, such as {{Comp.name}} and {{Attr.default}}.
//
// Position queries (index, if_last, ...) follow declaration order: the
// Spec's component list for Comp and the component's attribute list for
// Attr. Block filtering does not change a component's position.
package builtin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/albertocavalcante/datamatic/internal/naming"
	"github.com/albertocavalcante/datamatic/model"
	"github.com/albertocavalcante/datamatic/plugin"
	"github.com/albertocavalcante/datamatic/types"
)

// New returns the built-in plugin. Attribute defaults are rendered with
// reg.
func New(reg *types.Registry) plugin.Plugin {
	return plugin.Plugin{
		Name: plugin.BuiltinName,
		Funcs: []plugin.Func{
			plugin.EntityFunc("name", name).WithDoc("entity name"),
			plugin.EntityFunc("display_name", displayName).WithDoc("entity display name"),
			plugin.EntityFunc("name_case", nameCase).WithDoc("name in a case style: snake, screaming, pascal, camel, lower, upper"),
			plugin.EntityFunc("flag", flag).WithDoc("effective value of a flag"),
			plugin.EntityFunc("custom", custom).WithDoc("value at a key path of the custom payload"),

			plugin.CompFunc("index", compIndex).WithDoc("position in the spec"),
			plugin.CompFunc("count", compCount).WithDoc("number of components in the spec"),
			plugin.CompFunc("if_first", compIf(isFirst)).WithDoc("argument if first component"),
			plugin.CompFunc("if_not_first", compIf(not(isFirst))).WithDoc("argument unless first component"),
			plugin.CompFunc("if_last", compIf(isLast)).WithDoc("argument if last component"),
			plugin.CompFunc("if_not_last", compIf(not(isLast))).WithDoc("argument unless last component"),

			plugin.AttrFunc("type", attrType).WithDoc("target-language type"),
			plugin.AttrFunc("default", attrDefault(reg)).WithDoc("default value as a literal"),
			plugin.AttrFunc("index", attrIndex).WithDoc("position in the component"),
			plugin.AttrFunc("count", attrCount).WithDoc("number of attributes in the component"),
			plugin.AttrFunc("if_first", attrIf(isFirst)).WithDoc("argument if first attribute"),
			plugin.AttrFunc("if_not_first", attrIf(not(isFirst))).WithDoc("argument unless first attribute"),
			plugin.AttrFunc("if_last", attrIf(isLast)).WithDoc("argument if last attribute"),
			plugin.AttrFunc("if_not_last", attrIf(not(isLast))).WithDoc("argument unless last attribute"),
		},
	}
}

func name(e model.Entity) (string, error) { return e.EntityName(), nil }

func displayName(e model.Entity) (string, error) { return e.EntityDisplayName(), nil }

func nameCase(e model.Entity, args []string) (string, error) {
	style, err := single(args)
	if err != nil {
		return "", err
	}
	return naming.Convert(style, e.EntityName())
}

func flag(s *model.Spec, e model.Entity, args []string) (string, error) {
	f, err := single(args)
	if err != nil {
		return "", err
	}
	v, ok := s.EffectiveFlag(e, f)
	if !ok {
		return "", fmt.Errorf("unknown flag %q", f)
	}
	return strconv.FormatBool(v), nil
}

// custom walks the payload one key per argument. Integer keys index lists.
func custom(e model.Entity, args []string) (string, error) {
	cur := e.CustomData()
	for _, key := range args {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[key]
			if !ok {
				return "", fmt.Errorf("%s: custom key %q not found", e.EntityName(), key)
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(v) {
				return "", fmt.Errorf("%s: custom index %q out of range", e.EntityName(), key)
			}
			cur = v[i]
		default:
			return "", fmt.Errorf("%s: custom key %q: not an object", e.EntityName(), key)
		}
	}
	return scalar(cur)
}

func scalar(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type position func(index, count int) bool

func isFirst(index, _ int) bool { return index == 0 }

func isLast(index, count int) bool { return index == count-1 }

func not(p position) position {
	return func(index, count int) bool { return !p(index, count) }
}

func compIndex(s *model.Spec, c *model.Component) (string, error) {
	return strconv.Itoa(s.IndexOf(c)), nil
}

func compCount(s *model.Spec, _ *model.Component) (string, error) {
	return strconv.Itoa(len(s.Components)), nil
}

func compIf(p position) func(*model.Spec, *model.Component, []string) (string, error) {
	return func(s *model.Spec, c *model.Component, args []string) (string, error) {
		text, err := single(args)
		if err != nil {
			return "", err
		}
		if p(s.IndexOf(c), len(s.Components)) {
			return text, nil
		}
		return "", nil
	}
}

func attrType(_ *model.Component, a *model.Attribute) (string, error) { return a.Type, nil }

func attrDefault(reg *types.Registry) func(*model.Component, *model.Attribute) (string, error) {
	return func(c *model.Component, a *model.Attribute) (string, error) {
		return reg.RenderDefault(c, a)
	}
}

func attrIndex(c *model.Component, a *model.Attribute) (string, error) {
	return strconv.Itoa(c.IndexOf(a)), nil
}

func attrCount(c *model.Component, _ *model.Attribute) (string, error) {
	return strconv.Itoa(len(c.Attributes)), nil
}

func attrIf(p position) func(*model.Component, *model.Attribute, []string) (string, error) {
	return func(c *model.Component, a *model.Attribute, args []string) (string, error) {
		text, err := single(args)
		if err != nil {
			return "", err
		}
		if p(c.IndexOf(a), len(c.Attributes)) {
			return text, nil
		}
		return "", nil
	}
}

func single(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("want 1 argument, got %d (%s)", len(args), strings.Join(args, "|"))
	}
	return args[0], nil
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package specload

import (
	"encoding/json"
	"fmt"

	"github.com/albertocavalcante/datamatic/model"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclFile is the top-level structure of an HCL specification:
//
//	flag "SCRIPTABLE" {
//	  default = true
//	}
//
//	component "TransformComponent" {
//	  display_name = "Transform"
//
//	  attribute "position" {
//	    type    = "glm::vec3"
//	    default = [0, 0, 0]
//	  }
//	}
type hclFile struct {
	Flags      []*hclFlag      `hcl:"flag,block"`
	Components []*hclComponent `hcl:"component,block"`
}

type hclFlag struct {
	Name    string `hcl:"name,label"`
	Default bool   `hcl:"default,optional"`
}

type hclComponent struct {
	Name        string          `hcl:"name,label"`
	DisplayName string          `hcl:"display_name,optional"`
	Flags       map[string]bool `hcl:"flags,optional"`
	Custom      *cty.Value      `hcl:"custom,optional"`
	Attributes  []*hclAttribute `hcl:"attribute,block"`
}

type hclAttribute struct {
	Name        string          `hcl:"name,label"`
	DisplayName string          `hcl:"display_name,optional"`
	Type        string          `hcl:"type"`
	Default     *cty.Value      `hcl:"default,optional"`
	Flags       map[string]bool `hcl:"flags,optional"`
	Custom      *cty.Value      `hcl:"custom,optional"`
}

func parseHCL(data []byte, filename string) (*model.Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	s := &model.Spec{}
	for _, f := range parsed.Flags {
		s.Flags = append(s.Flags, model.Flag{Name: f.Name, Default: f.Default})
	}

	for _, hc := range parsed.Components {
		custom, err := optionalNative(hc.Custom)
		if err != nil {
			return nil, fmt.Errorf("component %s custom: %w", hc.Name, err)
		}
		c := &model.Component{
			Name:        hc.Name,
			DisplayName: hc.DisplayName,
			Flags:       hc.Flags,
			Custom:      custom,
		}

		for _, ha := range hc.Attributes {
			def, err := optionalNative(ha.Default)
			if err != nil {
				return nil, fmt.Errorf("component %s attribute %s default: %w", hc.Name, ha.Name, err)
			}
			custom, err := optionalNative(ha.Custom)
			if err != nil {
				return nil, fmt.Errorf("component %s attribute %s custom: %w", hc.Name, ha.Name, err)
			}
			c.Attributes = append(c.Attributes, &model.Attribute{
				Name:        ha.Name,
				DisplayName: ha.DisplayName,
				Type:        ha.Type,
				Default:     def,
				Flags:       ha.Flags,
				Custom:      custom,
			})
		}
		s.Components = append(s.Components, c)
	}
	return s, nil
}

func optionalNative(v *cty.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	return ctyToNative(*v)
}

// ctyToNative recursively converts a cty.Value to its JSON-like Go
// counterpart.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		// Numbers are arbitrary precision in cty; keep the exact text.
		return json.Number(v.AsBigFloat().Text('f', -1)), nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, fmt.Errorf("could not convert bool: %w", err)
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			n, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			n, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty type: %s", v.Type().FriendlyName())
}

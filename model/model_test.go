// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSpec() *Spec {
	return &Spec{
		Flags: []Flag{
			{Name: "SERIALISABLE", Default: true},
			{Name: "SCRIPTABLE", Default: false},
		},
		Components: []*Component{
			{
				Name: "A",
				Attributes: []*Attribute{
					{Name: "x", Type: "float"},
					{Name: "y", Type: "float", Flags: map[string]bool{"SERIALISABLE": false}},
				},
			},
			{Name: "B", Flags: map[string]bool{"SERIALISABLE": false}},
			{Name: "C", Flags: map[string]bool{"SCRIPTABLE": true}},
		},
	}
}

func names(cs []*Component) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestEffectiveFlag(t *testing.T) {
	s := testSpec()

	tests := []struct {
		name     string
		entity   Entity
		flag     string
		want     bool
		declared bool
	}{
		{name: "default applies", entity: s.Components[0], flag: "SERIALISABLE", want: true, declared: true},
		{name: "override false", entity: s.Components[1], flag: "SERIALISABLE", want: false, declared: true},
		{name: "override true", entity: s.Components[2], flag: "SCRIPTABLE", want: true, declared: true},
		{name: "attribute override", entity: s.Components[0].Attributes[1], flag: "SERIALISABLE", want: false, declared: true},
		{name: "attribute default", entity: s.Components[0].Attributes[0], flag: "SCRIPTABLE", want: false, declared: true},
		{name: "undeclared flag", entity: s.Components[0], flag: "MISSING", want: false, declared: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.EffectiveFlag(tc.entity, tc.flag)
			if got != tc.want || ok != tc.declared {
				t.Errorf("EffectiveFlag(%q) = %v, %v; want %v, %v", tc.flag, got, ok, tc.want, tc.declared)
			}
		})
	}
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		input   string
		want    Condition
		wantErr bool
	}{
		{input: "SERIALISABLE=true", want: Condition{Flag: "SERIALISABLE", Value: true}},
		{input: "SCRIPTABLE=false", want: Condition{Flag: "SCRIPTABLE", Value: false}},
		{input: "SCRIPTABLE", wantErr: true},
		{input: "=true", wantErr: true},
		{input: "SCRIPTABLE=yes", wantErr: true},
		{input: "SCRIPTABLE=True", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseCondition(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseCondition(%q) succeeded, want error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCondition(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseCondition(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if got.String() != tc.input {
				t.Errorf("String() = %q, want %q", got.String(), tc.input)
			}
		})
	}
}

func TestEligibleComponents(t *testing.T) {
	s := testSpec()

	tests := []struct {
		name  string
		conds Conditions
		want  []string
	}{
		{name: "no conditions keeps declaration order", conds: nil, want: []string{"A", "B", "C"}},
		{name: "single condition", conds: Conditions{{Flag: "SERIALISABLE", Value: true}}, want: []string{"A", "C"}},
		{name: "negated condition", conds: Conditions{{Flag: "SERIALISABLE", Value: false}}, want: []string{"B"}},
		{
			name:  "conjunction",
			conds: Conditions{{Flag: "SERIALISABLE", Value: true}, {Flag: "SCRIPTABLE", Value: true}},
			want:  []string{"C"},
		},
		{name: "undeclared flag matches nothing", conds: Conditions{{Flag: "NOPE", Value: true}}, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := names(s.EligibleComponents(tc.conds))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("EligibleComponents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverrideFlipsInclusion(t *testing.T) {
	s := testSpec()
	conds := Conditions{{Flag: "SERIALISABLE", Value: true}}

	before := names(s.EligibleComponents(conds))
	s.Components[0].Flags = map[string]bool{"SERIALISABLE": false}
	after := names(s.EligibleComponents(conds))

	if diff := cmp.Diff([]string{"A", "C"}, before); diff != "" {
		t.Errorf("before (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"C"}, after); diff != "" {
		t.Errorf("after (-want +got):\n%s", diff)
	}
}

func TestEligibleAttributes(t *testing.T) {
	s := testSpec()
	a := s.Components[0]

	got := s.EligibleAttributes(a, Conditions{{Flag: "SERIALISABLE", Value: true}})
	if len(got) != 1 || got[0].Name != "x" {
		t.Errorf("EligibleAttributes = %v, want [x]", got)
	}
	if n := len(s.EligibleAttributes(a, nil)); n != 2 {
		t.Errorf("unconditioned EligibleAttributes len = %d, want 2", n)
	}
}

func TestConditionsValidate(t *testing.T) {
	s := testSpec()
	if err := (Conditions{{Flag: "SERIALISABLE", Value: true}}).Validate(s); err != nil {
		t.Errorf("Validate declared flag: %v", err)
	}
	if err := (Conditions{{Flag: "UNKNOWN", Value: true}}).Validate(s); err == nil {
		t.Error("Validate unknown flag succeeded, want error")
	}
}

func TestLookups(t *testing.T) {
	s := testSpec()

	if c := s.Component("B"); c == nil || s.IndexOf(c) != 1 {
		t.Errorf("Component(B) = %v, IndexOf = %d", c, s.IndexOf(c))
	}
	if c := s.Component("Z"); c != nil {
		t.Errorf("Component(Z) = %v, want nil", c)
	}
	a := s.Components[0]
	if attr := a.Attribute("y"); attr == nil || a.IndexOf(attr) != 1 {
		t.Errorf("Attribute(y) lookup failed")
	}
	if s.IndexOf(&Component{Name: "A"}) != -1 {
		t.Error("IndexOf compares identity, not name")
	}
}

func TestSpecUnmarshal(t *testing.T) {
	data := `{
		"flags": [{"name": "SERIALISABLE", "default": true}],
		"components": [{
			"name": "Transform",
			"display_name": "Transform",
			"flags": {"SERIALISABLE": false},
			"custom": {"icon": "move"},
			"attributes": [{
				"name": "position",
				"display_name": "Position",
				"type": "glm::vec3",
				"default": [0.0, 0.0, 0.0]
			}]
		}]
	}`

	var s Spec
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := &Spec{
		Flags: []Flag{{Name: "SERIALISABLE", Default: true}},
		Components: []*Component{{
			Name:        "Transform",
			DisplayName: "Transform",
			Flags:       map[string]bool{"SERIALISABLE": false},
			Custom:      map[string]any{"icon": "move"},
			Attributes: []*Attribute{{
				Name:        "position",
				DisplayName: "Position",
				Type:        "glm::vec3",
				Default:     []any{0.0, 0.0, 0.0},
			}},
		}},
	}
	if diff := cmp.Diff(want, &s); diff != "" {
		t.Errorf("Spec mismatch (-want +got):\n%s", diff)
	}
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package inspector is an extension plugin emitting Dear ImGui editor
// widgets for components:
//
//	{{Comp.Inspector.GuizmoSettings}}
//	{{Attr.Inspector.Display}}
//
// Display picks a widget from the attribute type. The attribute's custom
// payload may refine it with "subtype" (File, Colour), "filter" (file
// dialog filter) and "limits" (a [min, max] pair turning a drag into a
// slider).
package inspector

import (
	"fmt"

	"github.com/albertocavalcante/datamatic/model"
	"github.com/albertocavalcante/datamatic/plugin"
	"github.com/albertocavalcante/datamatic/types"
)

// Name is the plugin name used in templates.
const Name = "Inspector"

// GuizmoComponent is the component that owns the transform guizmo.
const GuizmoComponent = "TransformComponent"

// New returns the Inspector plugin. Slider limits are rendered with reg.
func New(reg *types.Registry) plugin.Plugin {
	return plugin.Plugin{
		Name: Name,
		Funcs: []plugin.Func{
			plugin.CompFunc("GuizmoSettings", guizmoSettings).WithDoc("guizmo mode controls for the transform component"),
			plugin.CompFunc("Guizmo", guizmo).WithDoc("guizmo drawing call for the transform component"),
			plugin.AttrFunc("Display", display(reg)).WithDoc("ImGui widget editing the attribute"),
		},
	}
}

func guizmoSettings(c *model.Component) (string, error) {
	if c.Name == GuizmoComponent {
		return "ImGuiXtra::GuizmoSettings(mode, coords);", nil
	}
	return "", nil
}

func guizmo(c *model.Component) (string, error) {
	if c.Name == GuizmoComponent {
		return "ShowGuizmo(editor, c, mode, coords);", nil
	}
	return "", nil
}

func display(reg *types.Registry) func(*model.Component, *model.Attribute) (string, error) {
	return func(_ *model.Component, a *model.Attribute) (string, error) {
		custom, _ := a.Custom.(map[string]any)
		subtype, _ := custom["subtype"].(string)
		label, field := a.DisplayName, a.Name

		switch a.Type {
		case "std::string":
			if subtype == "File" {
				filter, _ := custom["filter"].(string)
				return fmt.Sprintf(`ImGuiXtra::File(%q, editor.GetWindow(), &c.%s, %q)`, label, field, filter), nil
			}
			return fmt.Sprintf("ImGuiXtra::TextModifiable(c.%s)", field), nil

		case "float":
			limits, ok := custom["limits"]
			if !ok {
				return fmt.Sprintf("ImGui::DragFloat(%q, &c.%s, 0.1f)", label, field), nil
			}
			lo, hi, err := bounds(reg, limits)
			if err != nil {
				return "", fmt.Errorf("%s limits: %w", a.Name, err)
			}
			return fmt.Sprintf("ImGui::SliderFloat(%q, &c.%s, %s, %s)", label, field, lo, hi), nil

		case "glm::vec2":
			return fmt.Sprintf("ImGui::DragFloat2(%q, &c.%s.x, 0.1f)", label, field), nil

		case "glm::vec3":
			if subtype == "Colour" {
				return fmt.Sprintf("ImGui::ColorPicker3(%q, &c.%s.r)", label, field), nil
			}
			return fmt.Sprintf("ImGui::DragFloat3(%q, &c.%s.x, 0.1f)", label, field), nil

		case "glm::vec4":
			if subtype == "Colour" {
				return fmt.Sprintf("ImGui::ColorPicker4(%q, &c.%s.r)", label, field), nil
			}
			return fmt.Sprintf("ImGui::DragFloat4(%q, &c.%s.x, 0.1f)", label, field), nil

		case "glm::quat":
			return fmt.Sprintf("ImGuiXtra::Euler(%q, &c.%s)", label, field), nil

		case "bool":
			return fmt.Sprintf("ImGui::Checkbox(%q, &c.%s)", label, field), nil
		}

		// Containers have no widget yet.
		return "", nil
	}
}

// bounds renders a [min, max] pair as float literals.
func bounds(reg *types.Registry, v any) (string, string, error) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return "", "", fmt.Errorf("want [min, max], got %v", v)
	}
	lo, err := reg.Render("float", pair[0])
	if err != nil {
		return "", "", err
	}
	hi, err := reg.Render("float", pair[1])
	if err != nil {
		return "", "", err
	}
	return lo, hi, nil
}

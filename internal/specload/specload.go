// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package specload reads and validates component specifications.
//
// A specification may be written as JSON, YAML or HCL; the format is chosen
// from the file extension. Whatever the format, Default and Custom values
// come out in the same JSON-like shape: nil, bool, json.Number, string,
// []any and map[string]any. Numbers keep their exact text, so integers wider
// than float64 survive loading.
package specload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/albertocavalcante/datamatic/model"
	"gopkg.in/yaml.v3"
)

// Format is a specification file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Result contains the loaded specification and metadata.
type Result struct {
	// Spec is the parsed and validated specification.
	Spec *model.Spec

	// Format is the format the file was read as.
	Format Format

	// Source describes where the specification was loaded from.
	Source string
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("unsupported spec file extension %q (want .json, .yaml, .yml or .hcl)", filepath.Ext(path))
}

// Load reads, parses and validates the specification at path.
func Load(path string) (*Result, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}

	s, err := Parse(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("parse spec %s: %w", path, err)
	}
	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("spec %s: %w", path, err)
	}

	return &Result{
		Spec:   s,
		Format: format,
		Source: fmt.Sprintf("file://%s", path),
	}, nil
}

// Parse decodes data in the given format. filename is used in diagnostics.
// The result is not validated.
func Parse(data []byte, format Format, filename string) (*model.Spec, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatHCL:
		return parseHCL(data, filename)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func parseJSON(data []byte) (*model.Spec, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var s model.Spec
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func parseYAML(data []byte) (*model.Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s model.Spec
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}

	// YAML yields ints and non-string map keys where JSON would not.
	for _, c := range s.Components {
		if c == nil {
			continue
		}
		var err error
		if c.Custom, err = normalize(c.Custom); err != nil {
			return nil, fmt.Errorf("component %s custom: %w", c.Name, err)
		}
		for _, a := range c.Attributes {
			if a == nil {
				continue
			}
			if a.Default, err = normalize(a.Default); err != nil {
				return nil, fmt.Errorf("component %s attribute %s default: %w", c.Name, a.Name, err)
			}
			if a.Custom, err = normalize(a.Custom); err != nil {
				return nil, fmt.Errorf("component %s attribute %s custom: %w", c.Name, a.Name, err)
			}
		}
	}
	return &s, nil
}

// normalize converts a decoded YAML value to its JSON-like equivalent.
func normalize(v any) (any, error) {
	switch v := v.(type) {
	case nil, bool, string, json.Number:
		return v, nil
	case int:
		return json.Number(strconv.Itoa(v)), nil
	case int64:
		return json.Number(strconv.FormatInt(v, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(v, 10)), nil
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%v has no JSON form", v)
		}
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			n, err := normalize(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			n, err := normalize(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			key := fmt.Sprint(k)
			n, err := normalize(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %T", v)
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config resolves the settings of a generation run.
//
// Settings come from an optional datamatic.yaml in the project root,
// overridden by command-line flags:
//
//	spec: components.json
//	jobs: 4
//	log_level: debug
//	log_format: text
//	exclude:
//	  - third_party
//	  - "build*"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project root.
const FileName = "datamatic.yaml"

// Config holds the settings of one run.
type Config struct {
	// Spec is the path of the specification file.
	Spec string `yaml:"spec" validate:"required"`

	// Dir is the project root searched for templates.
	Dir string `yaml:"-" validate:"required"`

	// Jobs bounds the number of templates expanded concurrently.
	Jobs int `yaml:"jobs" validate:"min=1,max=256"`

	// DryRun reports what would be written without touching files.
	DryRun bool `yaml:"-"`

	LogLevel  string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=text json"`

	// Exclude lists glob patterns of directory names skipped during discovery.
	Exclude []string `yaml:"exclude" validate:"dive,required"`

	// Source is the configuration file that was read, if any.
	Source string `yaml:"-"`
}

// Default returns the settings used when neither file nor flags set a value.
func Default() Config {
	return Config{
		Dir:       ".",
		Jobs:      1,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Flags holds command-line values. A value overrides the file only when
// Changed reports its flag name as set.
type Flags struct {
	Config    string
	Spec      string
	Dir       string
	Jobs      int
	DryRun    bool
	LogLevel  string
	LogFormat string

	// Changed reports whether the named flag was given. Nil means none was.
	Changed func(name string) bool
}

func (f Flags) changed(name string) bool {
	return f.Changed != nil && f.Changed(name)
}

var validate = validator.New()

// Resolve merges the configuration file and flags, then validates the result.
// The file is f.Config when set, which must then exist, else FileName in the
// project root, which may be absent. A relative spec path in the file is
// relative to the file's directory.
func Resolve(f Flags) (*Config, error) {
	cfg := Default()
	if f.Dir != "" {
		cfg.Dir = f.Dir
	}

	path, explicit := f.Config, f.Config != ""
	if !explicit {
		path = filepath.Join(cfg.Dir, FileName)
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if f.changed("spec") {
		cfg.Spec = f.Spec
	}
	if f.changed("jobs") {
		cfg.Jobs = f.Jobs
	}
	if f.changed("dry-run") {
		cfg.DryRun = f.DryRun
	}
	if f.changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if f.changed("log-format") {
		cfg.LogFormat = f.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.Spec != "" && !filepath.IsAbs(c.Spec) {
		c.Spec = filepath.Join(filepath.Dir(path), c.Spec)
	}
	c.Source = path
	return nil
}

// Validate checks field values and exclude patterns.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	for _, p := range c.Exclude {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("validation failed: exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

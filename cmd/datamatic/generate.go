// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/datamatic/expand"
	"github.com/albertocavalcante/datamatic/internal/config"
	"github.com/albertocavalcante/datamatic/internal/ctxlog"
	"github.com/albertocavalcante/datamatic/internal/generate"
	"github.com/albertocavalcante/datamatic/internal/logging"
	"github.com/albertocavalcante/datamatic/internal/specload"
	"github.com/albertocavalcante/datamatic/internal/watch"
	"github.com/albertocavalcante/datamatic/plugin"
	"github.com/albertocavalcante/datamatic/types"
)

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Expand every template once (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	debounce := watch.DefaultDebounce
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Expand templates, then again whenever a template or the spec changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			return watch.Run(ctx, watch.Options{
				Dir:      cfg.Dir,
				Spec:     cfg.Spec,
				Exclude:  cfg.Exclude,
				Debounce: debounce,
			}, func(ctx context.Context) error {
				_, err := generateOnce(ctx, cfg, cmd.OutOrStdout())
				return err
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "quiet period after a change before regenerating")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *options) error {
	ctx, cfg, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	_, err = generateOnce(ctx, cfg, cmd.OutOrStdout())
	return err
}

// setup resolves the configuration, installs the logger and freezes the
// registries.
func setup(cmd *cobra.Command, opts *options) (context.Context, *config.Config, error) {
	cfg, err := config.Resolve(config.Flags{
		Config:    opts.config,
		Spec:      opts.spec,
		Dir:       opts.dir,
		Jobs:      opts.jobs,
		DryRun:    opts.dryRun,
		LogLevel:  opts.logLevel,
		LogFormat: opts.logFormat,
		Changed:   cmd.Flags().Changed,
	})
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	types.Freeze()
	plugin.Freeze()
	return ctx, cfg, nil
}

// generateOnce loads the spec and runs one generation.
func generateOnce(ctx context.Context, cfg *config.Config, stdout io.Writer) (*generate.Summary, error) {
	logger := ctxlog.FromContext(ctx)

	res, err := specload.Load(cfg.Spec)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded spec",
		"source", res.Source,
		"format", res.Format,
		"components", len(res.Spec.Components))

	x, err := expand.New(res.Spec, plugin.Default)
	if err != nil {
		return nil, fmt.Errorf("create expander: %w", err)
	}
	return generate.Run(ctx, x, generate.Options{
		Dir:     cfg.Dir,
		Exclude: cfg.Exclude,
		Jobs:    cfg.Jobs,
		DryRun:  cfg.DryRun,
		Stdout:  stdout,
	})
}

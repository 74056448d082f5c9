// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command datamatic expands *.dm.* templates against a component
// specification.
//
// Usage:
//
//	datamatic [generate] --spec components.json --dir .
//	datamatic watch      --spec components.json --dir .
//	datamatic functions
//	datamatic types
//	datamatic version
//
// Flags:
//
//	-s, --spec        Specification file (.json, .yaml, .yml or .hcl)
//	-d, --dir         Project root searched for templates (default: .)
//	-j, --jobs        Templates expanded concurrently (default: 1)
//	--dry-run         Print outputs instead of writing files
//	--config          Configuration file (default: <dir>/datamatic.yaml)
//	--log-level       debug, info, warn or error (default: info)
//	--log-format      text or json (default: text)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// options holds the persistent flag values.
type options struct {
	config    string
	spec      string
	dir       string
	jobs      int
	dryRun    bool
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "datamatic",
		Short: "Expand component templates against a specification",
		Long: `datamatic reads a component specification and expands every *.dm.* template
under the project root, writing each output next to its template with the
".dm" infix removed. Nothing is written unless every template expands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.config, "config", "", "configuration file (default: <dir>/datamatic.yaml)")
	pf.StringVarP(&opts.spec, "spec", "s", "", "specification file (.json, .yaml, .yml or .hcl)")
	pf.StringVarP(&opts.dir, "dir", "d", ".", "project root searched for templates")
	pf.IntVarP(&opts.jobs, "jobs", "j", 1, "templates expanded concurrently")
	pf.BoolVar(&opts.dryRun, "dry-run", false, "print outputs instead of writing files")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newGenerateCmd(opts),
		newWatchCmd(opts),
		newFunctionsCmd(),
		newTypesCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datamatic %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

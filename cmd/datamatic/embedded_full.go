// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build datamatic_full

package main

import (
	"github.com/albertocavalcante/datamatic/plugin"
	"github.com/albertocavalcante/datamatic/plugins/builtin"
	"github.com/albertocavalcante/datamatic/plugins/inspector"
	"github.com/albertocavalcante/datamatic/types"
	"github.com/albertocavalcante/datamatic/types/cpp"
)

func init() {
	// Full build: every bundled plugin embedded
	cpp.Register(types.Default)
	for _, p := range []plugin.Plugin{
		builtin.New(types.Default),
		inspector.New(types.Default),
	} {
		if err := plugin.Register(p); err != nil {
			panic(err)
		}
	}
}

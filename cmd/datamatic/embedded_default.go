// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build !datamatic_full

package main

import (
	"github.com/albertocavalcante/datamatic/plugin"
	"github.com/albertocavalcante/datamatic/plugins/builtin"
	"github.com/albertocavalcante/datamatic/types"
	"github.com/albertocavalcante/datamatic/types/cpp"
)

func init() {
	// Default build: C++ types and the builtin plugin only
	cpp.Register(types.Default)
	if err := plugin.Register(builtin.New(types.Default)); err != nil {
		panic(err)
	}
}

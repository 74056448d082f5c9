// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/albertocavalcante/datamatic/expand"
	"github.com/albertocavalcante/datamatic/model"
	"github.com/albertocavalcante/datamatic/plugin"
	"github.com/albertocavalcante/datamatic/plugins/builtin"
	"github.com/albertocavalcante/datamatic/types"
	"github.com/albertocavalcante/datamatic/types/cpp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpander(t *testing.T) *expand.Expander {
	t.Helper()
	tr := types.NewRegistry()
	cpp.Register(tr)
	tr.Freeze()

	pr := plugin.NewRegistry()
	require.NoError(t, pr.Register(builtin.New(tr)))
	pr.Freeze()

	spec := &model.Spec{Components: []*model.Component{
		{Name: "A", Attributes: []*model.Attribute{{Name: "x", Type: "int", Default: 1.0}}},
		{Name: "B"},
	}}
	x, err := expand.New(spec, pr)
	require.NoError(t, err)
	return x
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

const listTemplate = "// DATAMATIC_BEGIN\n{{Comp.name}}{{Comp.if_not_last|,}}\n// DATAMATIC_END\n"

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "src/transform.dm.h", want: "src/transform.h", ok: true},
		{in: "Components.dm.cpp", want: "Components.cpp", ok: true},
		{in: "a.b.dm.json", want: "a.b.json", ok: true},
		{in: "src/dm.h", ok: false},
		{in: "src/.dm.h", ok: false},
		{in: "dm/file.h", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := OutputPath(filepath.FromSlash(tc.in))
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, filepath.FromSlash(tc.want), got)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.dm.h":                 "",
		"a/x.dm.cpp":             "",
		"a/plain.h":              "",
		"third_party/y.dm.h":     "",
		".git/hooks/z.dm.sh":     "",
		"build-debug/gen.dm.hpp": "",
	})

	got, err := Discover(root, []string{"third_party", "build*"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "x.dm.cpp"),
		filepath.Join(root, "b.dm.h"),
	}, got)
}

func TestRunWritesOutputs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"list.dm.h":       listTemplate,
		"sub/fields.dm.h": "// DATAMATIC_BEGIN\n{{Attr.name}} = {{Attr.default}}\n// DATAMATIC_END\n",
		"sub/untouched.h": "keep",
	})

	sum, err := Run(context.Background(), newExpander(t), Options{Dir: root, Jobs: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Templates)
	assert.Equal(t, 2, sum.Written)

	list, err := os.ReadFile(filepath.Join(root, "list.h"))
	require.NoError(t, err)
	assert.Equal(t, "A,\nB\n", string(list))

	fields, err := os.ReadFile(filepath.Join(root, "sub", "fields.h"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(fields))

	again, err := Run(context.Background(), newExpander(t), Options{Dir: root})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Written)
	assert.Equal(t, 2, again.Unchanged)
}

func TestRunDryRun(t *testing.T) {
	root := writeTree(t, map[string]string{"list.dm.h": listTemplate})

	var stdout bytes.Buffer
	_, err := Run(context.Background(), newExpander(t), Options{Dir: root, DryRun: true, Stdout: &stdout})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("==> %s <==\nA,\nB\n", filepath.Join(root, "list.h")), stdout.String())
	_, err = os.Stat(filepath.Join(root, "list.h"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "dry run wrote a file")
}

func TestRunIsAllOrNothing(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a_good.dm.h": listTemplate,
		"b_bad.dm.h":  "// DATAMATIC_END\n",
		"c_bad.dm.h":  "{{x}}\n// DATAMATIC_BEGIN\n",
		"d_good.dm.h": listTemplate,
	})

	for _, jobs := range []int{1, 4} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			_, err := Run(context.Background(), newExpander(t), Options{Dir: root, Jobs: jobs})
			require.Error(t, err)

			var located *expand.Error
			require.True(t, errors.As(err, &located))
			assert.Equal(t, filepath.Join(root, "b_bad.dm.h"), located.Path)

			for _, name := range []string{"a_good.h", "d_good.h"} {
				_, err := os.Stat(filepath.Join(root, name))
				assert.True(t, errors.Is(err, os.ErrNotExist), "%s written despite failure", name)
			}
		})
	}
}

func TestRunEmptyProject(t *testing.T) {
	sum, err := Run(context.Background(), newExpander(t), Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Templates)
}

func TestExpandCanceled(t *testing.T) {
	root := writeTree(t, map[string]string{"list.dm.h": listTemplate})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Expand(ctx, newExpander(t), []string{filepath.Join(root, "list.dm.h")}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package plugin

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/albertocavalcante/datamatic/model"
	"github.com/google/go-cmp/cmp"
)

func compName(c *model.Component) (string, error) { return c.Name, nil }

func compJoin(c *model.Component, args []string) (string, error) {
	return c.Name + ":" + strings.Join(args, ","), nil
}

func compCount(s *model.Spec, _ *model.Component) (string, error) {
	return strings.Repeat("x", len(s.Components)), nil
}

func attrName(_ *model.Component, a *model.Attribute) (string, error) { return a.Name, nil }

func entityName(e model.Entity) (string, error) { return e.EntityName(), nil }

func testInput() Input {
	c := &model.Component{Name: "Transform", Attributes: []*model.Attribute{{Name: "position"}}}
	return Input{
		Spec:      &model.Spec{Components: []*model.Component{c}},
		Component: c,
		Attribute: c.Attributes[0],
	}
}

func TestFuncInference(t *testing.T) {
	tests := []struct {
		name        string
		fn          Func
		namespaces  Namespace
		expectsArgs bool
		expectsSpec bool
	}{
		{name: "comp", fn: CompFunc("a", compName), namespaces: Comp},
		{name: "comp args", fn: CompFunc("a", compJoin), namespaces: Comp, expectsArgs: true},
		{name: "comp spec", fn: CompFunc("a", compCount), namespaces: Comp, expectsSpec: true},
		{
			name: "comp spec args",
			fn: CompFunc("a", func(*model.Spec, *model.Component, []string) (string, error) {
				return "", nil
			}),
			namespaces: Comp, expectsArgs: true, expectsSpec: true,
		},
		{name: "attr", fn: AttrFunc("a", attrName), namespaces: Attr},
		{
			name: "attr spec args",
			fn: AttrFunc("a", func(*model.Spec, *model.Component, *model.Attribute, []string) (string, error) {
				return "", nil
			}),
			namespaces: Attr, expectsArgs: true, expectsSpec: true,
		},
		{name: "entity", fn: EntityFunc("a", entityName), namespaces: Both},
		{
			name: "entity args",
			fn: EntityFunc("a", func(model.Entity, []string) (string, error) {
				return "", nil
			}),
			namespaces: Both, expectsArgs: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fn.Namespaces != tc.namespaces {
				t.Errorf("Namespaces = %v, want %v", tc.fn.Namespaces, tc.namespaces)
			}
			if tc.fn.ExpectsArgs != tc.expectsArgs {
				t.Errorf("ExpectsArgs = %v, want %v", tc.fn.ExpectsArgs, tc.expectsArgs)
			}
			if tc.fn.ExpectsSpec != tc.expectsSpec {
				t.Errorf("ExpectsSpec = %v, want %v", tc.fn.ExpectsSpec, tc.expectsSpec)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Run("Register and Resolve", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register(Plugin{Name: "test", Funcs: []Func{CompFunc("name", compName)}}); err != nil {
			t.Fatal(err)
		}

		f, err := r.Resolve(Comp, "test", "name")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if f.Plugin != "test" || f.Name != "name" {
			t.Errorf("got %s.%s, want test.name", f.Plugin, f.Name)
		}
	})

	t.Run("bare name resolves to builtin", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(Plugin{Name: BuiltinName, Funcs: []Func{CompFunc("name", compName)}})

		bare, err := r.Resolve(Comp, "", "name")
		if err != nil {
			t.Fatalf("Resolve bare: %v", err)
		}
		explicit, err := r.Resolve(Comp, BuiltinName, "name")
		if err != nil {
			t.Fatalf("Resolve explicit: %v", err)
		}
		if bare != explicit {
			t.Error("bare and explicit paths resolve to different functions")
		}
	})

	t.Run("bare name does not reach extensions", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(Plugin{Name: "Inspector", Funcs: []Func{CompFunc("Guizmo", compName)}})
		_, err := r.Resolve(Comp, "", "Guizmo")
		var unknown *UnknownFunctionError
		if !errors.As(err, &unknown) {
			t.Fatalf("error = %v, want *UnknownFunctionError", err)
		}
		if unknown.Path != "Comp.Guizmo" {
			t.Errorf("Path = %q, want Comp.Guizmo", unknown.Path)
		}
	})

	t.Run("namespace affinity", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(Plugin{Name: "p", Funcs: []Func{
			CompFunc("c", compName),
			AttrFunc("a", attrName),
			EntityFunc("e", entityName),
		}})

		tests := []struct {
			ns    Namespace
			name  string
			found bool
		}{
			{Comp, "c", true}, {Attr, "c", false},
			{Comp, "a", false}, {Attr, "a", true},
			{Comp, "e", true}, {Attr, "e", true},
		}
		for _, tc := range tests {
			_, err := r.Resolve(tc.ns, "p", tc.name)
			if (err == nil) != tc.found {
				t.Errorf("Resolve(%v, p, %s) error = %v, want found=%v", tc.ns, tc.name, err, tc.found)
			}
		}
	})

	t.Run("unknown path names plugin", func(t *testing.T) {
		_, err := NewRegistry().Resolve(Attr, "Missing", "fn")
		var unknown *UnknownFunctionError
		if !errors.As(err, &unknown) || unknown.Path != "Attr.Missing.fn" {
			t.Errorf("error = %v, want unknown Attr.Missing.fn", err)
		}
	})

	t.Run("duplicate plugin", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(Plugin{Name: "dup", Funcs: []Func{CompFunc("foo", compName)}})
		err := r.Register(Plugin{Name: "dup", Funcs: []Func{CompFunc("foo", compName)}})
		var dup *DuplicateFunctionError
		if !errors.As(err, &dup) {
			t.Fatalf("error = %v, want *DuplicateFunctionError", err)
		}
		if dup.Key != (Key{Namespace: Comp, Plugin: "dup", Func: "foo"}) {
			t.Errorf("Key = %v", dup.Key)
		}
	})

	t.Run("duplicate within plugin", func(t *testing.T) {
		r := NewRegistry()
		err := r.Register(Plugin{Name: "p", Funcs: []Func{
			AttrFunc("bar", attrName),
			EntityFunc("bar", entityName),
		}})
		var dup *DuplicateFunctionError
		if !errors.As(err, &dup) {
			t.Fatalf("error = %v, want *DuplicateFunctionError", err)
		}
		if len(r.Descriptors()) != 0 {
			t.Error("failed registration left functions behind")
		}
	})

	t.Run("same function name in different plugins", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(Plugin{Name: "a", Funcs: []Func{CompFunc("foo", compName)}})
		if err := r.Register(Plugin{Name: "b", Funcs: []Func{CompFunc("foo", compName)}}); err != nil {
			t.Errorf("Register: %v", err)
		}
	})

	t.Run("invalid plugins", func(t *testing.T) {
		r := NewRegistry()
		for _, p := range []Plugin{
			{Name: ""},
			{Name: "a.b"},
			{Name: "ok", Funcs: []Func{{Name: "raw"}}},
		} {
			if err := r.Register(p); err == nil {
				t.Errorf("Register(%q) succeeded, want error", p.Name)
			}
		}
	})

	t.Run("frozen", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(Plugin{Name: "a", Funcs: []Func{CompFunc("foo", compName)}})
		if !r.Freeze() || !r.Frozen() {
			t.Fatal("Freeze failed")
		}
		err := r.Register(Plugin{Name: "b", Funcs: []Func{CompFunc("foo", compName)}})
		if !errors.Is(err, ErrFrozen) {
			t.Errorf("Register after freeze = %v, want ErrFrozen", err)
		}
		if _, err := r.Resolve(Comp, "a", "foo"); err != nil {
			t.Errorf("Resolve after freeze: %v", err)
		}
	})

	t.Run("Plugins and Descriptors", func(t *testing.T) {
		r := NewRegistry()
		r.MustRegister(Plugin{Name: "zebra", Funcs: []Func{AttrFunc("b", attrName), CompFunc("a", compJoin)}})
		r.MustRegister(Plugin{Name: "alpha", Funcs: []Func{EntityFunc("n", entityName)}})

		if diff := cmp.Diff([]string{"zebra", "alpha"}, r.Plugins()); diff != "" {
			t.Errorf("Plugins mismatch (-want +got):\n%s", diff)
		}

		var got []string
		for _, d := range r.Descriptors() {
			got = append(got, d.Key.String()+d.Signature())
		}
		want := []string{
			"Comp.zebra.a(comp, args)",
			"Attr.zebra.b(comp, attr)",
			"Comp.alpha.n(comp)",
			"Attr.alpha.n(comp, attr)",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Descriptors mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCall(t *testing.T) {
	in := testInput()

	t.Run("passes inputs", func(t *testing.T) {
		f := CompFunc("n", compCount)
		if got, err := f.Call(Comp, in); err != nil || got != "x" {
			t.Errorf("Call = %q, %v", got, err)
		}
		e := EntityFunc("n", entityName)
		if got, _ := e.Call(Comp, in); got != "Transform" {
			t.Errorf("entity as component = %q", got)
		}
		if got, _ := e.Call(Attr, in); got != "position" {
			t.Errorf("entity as attribute = %q", got)
		}
	})

	t.Run("arguments given to function without args", func(t *testing.T) {
		f := CompFunc("name", compName)
		f.Plugin = BuiltinName
		args := in
		args.Args = []string{","}
		_, err := f.Call(Comp, args)
		var mismatch *ArgumentMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("error = %v, want *ArgumentMismatchError", err)
		}
		if mismatch.Expects || mismatch.Got != 1 || mismatch.Path != "Comp.name" {
			t.Errorf("mismatch = %+v", mismatch)
		}
	})

	t.Run("missing arguments", func(t *testing.T) {
		f := CompFunc("join", compJoin)
		f.Plugin = "p"
		_, err := f.Call(Comp, in)
		var mismatch *ArgumentMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("error = %v, want *ArgumentMismatchError", err)
		}
		if !mismatch.Expects || mismatch.Path != "Comp.p.join" {
			t.Errorf("mismatch = %+v", mismatch)
		}
	})

	t.Run("empty argument counts as supplied", func(t *testing.T) {
		f := CompFunc("join", compJoin)
		args := in
		args.Args = []string{""}
		if got, err := f.Call(Comp, args); err != nil || got != "Transform:" {
			t.Errorf("Call = %q, %v", got, err)
		}
	})

	t.Run("wrong namespace", func(t *testing.T) {
		f := AttrFunc("name", attrName)
		if _, err := f.Call(Comp, in); err == nil {
			t.Error("attribute function callable from component scope")
		}
	})

	t.Run("attribute scope without attribute", func(t *testing.T) {
		f := AttrFunc("name", attrName)
		noAttr := in
		noAttr.Attribute = nil
		if _, err := f.Call(Attr, noAttr); err == nil {
			t.Error("attribute function called without attribute")
		}
	})
}

func TestDefault(t *testing.T) {
	Reset()
	defer Reset()

	if err := Register(Plugin{Name: "x", Funcs: []Func{CompFunc("a", compName)}}); err != nil {
		t.Fatal(err)
	}
	if !Freeze() {
		t.Fatal("Freeze() = false")
	}
	if err := Register(Plugin{Name: "y", Funcs: []Func{CompFunc("a", compName)}}); !errors.Is(err, ErrFrozen) {
		t.Errorf("Register after Freeze = %v, want ErrFrozen", err)
	}
	if _, err := Default.Resolve(Comp, "x", "a"); err != nil {
		t.Errorf("Resolve: %v", err)
	}
}

func TestParseNamespace(t *testing.T) {
	for tag, want := range map[string]Namespace{"Comp": Comp, "Attr": Attr} {
		got, ok := ParseNamespace(tag)
		if !ok || got != want {
			t.Errorf("ParseNamespace(%q) = %v, %v", tag, got, ok)
		}
		if got.String() != tag {
			t.Errorf("String() = %q, want %q", got.String(), tag)
		}
	}
	if _, ok := ParseNamespace("comp"); ok {
		t.Error("namespace tags are case-sensitive")
	}
}

func TestFreezeWhileRegistering(t *testing.T) {
	r := NewRegistry()
	errs := make([]error, 64)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = r.Register(Plugin{Name: fmt.Sprintf("p%d", i), Funcs: []Func{CompFunc("a", compName)}})
		}()
	}
	close(start)
	r.Freeze()
	atFreeze := r.Plugins()
	wg.Wait()

	registered := 0
	for _, err := range errs {
		switch {
		case err == nil:
			registered++
		case !errors.Is(err, ErrFrozen):
			t.Errorf("Register = %v, want nil or ErrFrozen", err)
		}
	}
	if got := r.Plugins(); len(got) != len(atFreeze) {
		t.Errorf("plugins grew from %d to %d after Freeze returned", len(atFreeze), len(got))
	}
	if registered != len(atFreeze) {
		t.Errorf("%d registrations succeeded, %d plugins visible at freeze", registered, len(atFreeze))
	}
}

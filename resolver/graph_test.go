/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver_test

import (
	"errors"
	"slices"
	"testing"

	"bennypowers.dev/tokencraft/resolver"
	"bennypowers.dev/tokencraft/schema"
)

func TestDependencyGraph_NoCycle(t *testing.T) {
	tree := map[string]any{
		"a": map[string]any{"$value": "1"},
		"b": map[string]any{"$value": "{a}"},
		"c": map[string]any{"$value": map[string]any{"light": "{b}", "dark": "{a}"}},
	}

	graph := resolver.BuildDependencyGraph(tree, nil)

	if graph.HasCycle() {
		t.Error("expected no cycle")
	}

	if deps := graph.Dependencies("c"); !slices.Equal(deps, []string{"a", "b"}) {
		t.Errorf("Dependencies(c) = %v", deps)
	}
	if deps := graph.Dependents("a"); !slices.Equal(deps, []string{"b", "c"}) {
		t.Errorf("Dependents(a) = %v", deps)
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(order, []string{"a", "b", "c"}) {
		t.Errorf("TopologicalSort() = %v", order)
	}
}

func TestDependencyGraph_Cycle(t *testing.T) {
	tree := map[string]any{
		"a": map[string]any{"$value": "{c}"},
		"b": map[string]any{"$alias": "{a}", "$value": "x"},
		"c": map[string]any{"$value": "1px solid {b}"},
	}

	graph := resolver.BuildDependencyGraph(tree, nil)

	if !graph.HasCycle() {
		t.Error("expected cycle")
	}

	cycle := graph.FindCycle()
	if len(cycle) != 4 || cycle[0] != cycle[3] {
		t.Errorf("expected closed cycle path, got %v", cycle)
	}

	if _, err := graph.TopologicalSort(); !errors.Is(err, schema.ErrCircularReference) {
		t.Errorf("expected ErrCircularReference, got %v", err)
	}
}

func TestDependencyGraph_Dangling(t *testing.T) {
	tree := map[string]any{
		"a": map[string]any{"$value": "{missing.one}"},
		"b": map[string]any{
			"$value":      "#fff",
			"$extensions": map[string]any{"design.paths.dark": "{missing.two}"},
		},
	}

	graph := resolver.BuildDependencyGraph(tree, nil)
	if got := graph.Dangling(); !slices.Equal(got, []string{"missing.one", "missing.two"}) {
		t.Errorf("Dangling() = %v", got)
	}
	if got := graph.Nodes(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Nodes() = %v", got)
	}
}

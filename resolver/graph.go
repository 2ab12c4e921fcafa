/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"maps"
	"slices"

	"bennypowers.dev/tokencraft/schema"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
)

// DependencyGraph is a directed graph of references between token paths.
type DependencyGraph struct {
	dependencies map[string][]string
	dependents   map[string][]string
	nodes        map[string]bool
}

// BuildDependencyGraph builds the graph of every token in tree. Edges
// come from references anywhere in $value (every context-map variant
// included), from $alias, and from string $extensions overrides.
func BuildDependencyGraph(tree map[string]any, pattern *token.ReferencePattern) *DependencyGraph {
	if pattern == nil {
		pattern = token.DefaultPattern()
	}
	graph := &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        make(map[string]bool),
	}

	paths := tokenpath.Leaves(tree)
	for _, p := range paths {
		graph.nodes[p] = true
	}

	for _, p := range paths {
		node, _ := token.Lookup(tree, p)
		deps := extractDependencies(node, pattern)
		if len(deps) > 0 {
			graph.dependencies[p] = deps
			for _, dep := range deps {
				graph.dependents[dep] = append(graph.dependents[dep], p)
			}
		}
	}

	return graph
}

// extractDependencies returns the sorted, distinct paths node refers to.
func extractDependencies(node *token.Node, pattern *token.ReferencePattern) []string {
	seen := make(map[string]bool)
	if node.Alias != "" {
		seen[node.Alias] = true
	}
	collectRefs(node.Value, pattern, seen)
	collectRefs(node.Extensions, pattern, seen)
	return slices.Sorted(maps.Keys(seen))
}

func collectRefs(v any, pattern *token.ReferencePattern, seen map[string]bool) {
	switch x := v.(type) {
	case string:
		for _, ref := range pattern.FindAll(x) {
			seen[ref.TokenPath] = true
		}
	case map[string]any:
		for _, child := range x {
			collectRefs(child, pattern, seen)
		}
	case []any:
		for _, child := range x {
			collectRefs(child, pattern, seen)
		}
	}
}

// Nodes returns every token path in the graph, sorted.
func (g *DependencyGraph) Nodes() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Dependencies returns the paths the given token refers to.
func (g *DependencyGraph) Dependencies(path string) []string {
	if deps, ok := g.dependencies[path]; ok {
		return deps
	}
	return []string{}
}

// Dependents returns the tokens that refer to the given path.
func (g *DependencyGraph) Dependents(path string) []string {
	if deps, ok := g.dependents[path]; ok {
		return deps
	}
	return []string{}
}

// Dangling returns referenced paths that are not tokens in the graph,
// sorted.
func (g *DependencyGraph) Dangling() []string {
	var out []string
	for dep := range g.dependents {
		if !g.nodes[dep] {
			out = append(out, dep)
		}
	}
	slices.Sort(out)
	return out
}

// HasCycle returns true if the graph contains a circular dependency.
func (g *DependencyGraph) HasCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns the cycle path if one exists, or nil if no cycle.
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range g.Nodes() {
		if cycle := g.findCycleDFS(node, visited, recStack, nil); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		cycleStart := slices.Index(path, node)
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		return append(slices.Clone(path[cycleStart:]), node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// TopologicalSort returns token paths in dependency order (dependencies
// first). Referenced paths that are not tokens are left out.
// Returns error if graph contains a cycle.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrCircularReference, cycle)
	}

	visited := make(map[string]bool)
	result := []string{}

	for _, node := range g.Nodes() {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

func (g *DependencyGraph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	if g.nodes[node] {
		*stack = append(*stack, node)
	}
}

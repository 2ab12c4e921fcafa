/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tokenpath provides dot-path lookup, variant selection and
// deep merging over nested token maps.
package tokenpath

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// Separator joins path segments.
const Separator = "."

// Split splits a dot path into segments. An empty path has no segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// Join joins segments into a dot path, skipping empty segments.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, Separator)
}

// Get looks up a dot path in a nested map, walking one segment at a time.
func Get(tree map[string]any, path string) (any, bool) {
	return GetSegments(tree, Split(path))
}

// GetSegments looks up a path given as segments.
func GetSegments(tree map[string]any, segments []string) (any, bool) {
	if tree == nil {
		return nil, false
	}
	var current any = tree
	for _, seg := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// First returns the value of the first non-empty key present in m,
// along with the key that matched.
func First(m map[string]any, keys ...string) (any, string, bool) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if v, ok := m[k]; ok {
			return v, k, true
		}
	}
	return nil, "", false
}

// IsTokenNode reports whether v is a map carrying $value.
func IsTokenNode(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, has := m["$value"]
	return has
}

// Clone deep-copies maps and slices; other values are returned as-is.
func Clone(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Clone(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Clone(val)
		}
		return out
	default:
		return v
	}
}

// Merge deep-merges src over dst and returns a new map; neither input is
// modified. Nested groups merge key by key and later values win. A token
// node in src replaces the destination node wholesale, so a partial
// $value object never mixes with the value it overrides.
func Merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = Clone(v)
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := out[k].(map[string]any)
		if srcIsMap && dstIsMap && !IsTokenNode(srcMap) && !IsTokenNode(dstMap) {
			out[k] = Merge(dstMap, srcMap)
			continue
		}
		out[k] = Clone(v)
	}
	return out
}

// Leaves returns the sorted dot paths of every token node in tree.
// Keys starting with $ are metadata and never part of a path.
func Leaves(tree map[string]any) []string {
	var paths []string
	collectLeaves(tree, nil, &paths)
	sort.Strings(paths)
	return paths
}

func collectLeaves(m map[string]any, prefix []string, out *[]string) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if strings.HasPrefix(k, "$") {
			continue
		}
		child, ok := m[k].(map[string]any)
		if !ok {
			continue
		}
		path := append(prefix[:len(prefix):len(prefix)], k)
		if IsTokenNode(child) {
			*out = append(*out, strings.Join(path, Separator))
			continue
		}
		collectLeaves(child, path, out)
	}
}

// SetSegments writes v at the path given as segments, creating
// intermediate groups as needed.
func SetSegments(tree map[string]any, segments []string, v any) {
	if len(segments) == 0 {
		return
	}
	current := tree
	for _, seg := range segments[:len(segments)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[seg] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = v
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
)

// groupExtension is a group that extends another group.
type groupExtension struct {
	// path is the dot path of the extending group (e.g., "theme.dark")
	path string
	// base is the dot path of the extended group (e.g., "theme.light")
	base string
}

// ExpandExtends returns a copy of tree in which every group carrying
// $extends ("{group.path}" or "#/group/path") inherits the tokens of the
// extended group. Tokens the extending group defines itself win. Cyclic
// and dangling $extends are reported and left unexpanded. When tree has
// no $extends it is returned as-is.
func ExpandExtends(tree map[string]any) (map[string]any, []diagnostic.Diagnostic) {
	extensions := findExtensions(tree, nil)
	if len(extensions) == 0 {
		return tree, nil
	}

	var diags []diagnostic.Diagnostic
	out := tokenpath.Clone(tree).(map[string]any)

	cyclic := make(map[string]bool)
	if cycle := findExtensionCycle(extensions); cycle != nil {
		for _, p := range cycle {
			cyclic[p] = true
		}
		diags = append(diags, diagnostic.New(diagnostic.Circular, cycle[0],
			"circular $extends: "+strings.Join(cycle, " -> ")))
	}

	for _, ext := range sortExtensions(extensions) {
		segments := tokenpath.Split(ext.path)
		group, _ := tokenpath.GetSegments(out, segments)
		own, ok := group.(map[string]any)
		if !ok {
			continue
		}
		own = maps.Clone(own)
		delete(own, "$extends")

		if cyclic[ext.path] {
			tokenpath.SetSegments(out, segments, own)
			continue
		}

		base, ok := tokenpath.Get(out, ext.base)
		baseGroup, isGroup := base.(map[string]any)
		if !ok || !isGroup || tokenpath.IsTokenNode(baseGroup) {
			diags = append(diags, diagnostic.New(diagnostic.Missing, ext.path,
				"extended group "+ext.base+" not found"))
			tokenpath.SetSegments(out, segments, own)
			continue
		}

		tokenpath.SetSegments(out, segments, tokenpath.Merge(baseGroup, own))
	}

	return out, diags
}

// findExtensions recursively finds all groups with $extends.
func findExtensions(data map[string]any, currentPath []string) []groupExtension {
	var extensions []groupExtension

	for _, key := range slices.Sorted(maps.Keys(data)) {
		if strings.HasPrefix(key, "$") {
			continue
		}
		valueMap, ok := data[key].(map[string]any)
		if !ok || tokenpath.IsTokenNode(valueMap) {
			continue
		}

		childPath := append(slices.Clone(currentPath), key)

		if ref, ok := valueMap["$extends"].(string); ok {
			if base := extendsPath(ref); base != "" {
				extensions = append(extensions, groupExtension{
					path: tokenpath.Join(childPath...),
					base: base,
				})
			}
		}

		extensions = append(extensions, findExtensions(valueMap, childPath)...)
	}

	return extensions
}

// extendsPath accepts both curly-brace and JSON Pointer forms.
func extendsPath(ref string) string {
	if p, ok := tokenpath.PointerToPath(ref); ok {
		return p
	}
	return token.TrimBraces(ref)
}

// findExtensionCycle detects circular $extends references.
// Returns the cycle path if found, nil otherwise.
func findExtensionCycle(extensions []groupExtension) []string {
	extendsMap := make(map[string]string)
	for _, ext := range extensions {
		extendsMap[ext.path] = ext.base
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var findCycleDFS func(node string, path []string) []string
	findCycleDFS = func(node string, path []string) []string {
		visited[node] = true
		recStack[node] = true
		path = append(path, node)

		if next, ok := extendsMap[node]; ok {
			if recStack[next] {
				if start := slices.Index(path, next); start >= 0 {
					return append(path[start:], next)
				}
				return append(path, next)
			}
			if !visited[next] {
				if cycle := findCycleDFS(next, path); cycle != nil {
					return cycle
				}
			}
		}

		recStack[node] = false
		return nil
	}

	for _, ext := range extensions {
		if !visited[ext.path] {
			if cycle := findCycleDFS(ext.path, nil); cycle != nil {
				return cycle
			}
		}
	}

	return nil
}

// sortExtensions orders extensions so that base groups expand first.
func sortExtensions(extensions []groupExtension) []groupExtension {
	extendsMap := make(map[string]string)
	for _, ext := range extensions {
		extendsMap[ext.path] = ext.base
	}

	depths := make(map[string]int)
	var depth func(path string, seen map[string]bool) int
	depth = func(path string, seen map[string]bool) int {
		if d, ok := depths[path]; ok {
			return d
		}
		next, ok := extendsMap[path]
		if !ok || seen[path] {
			return 0
		}
		seen[path] = true
		depths[path] = depth(next, seen) + 1
		return depths[path]
	}

	result := slices.Clone(extensions)
	for _, ext := range result {
		depth(ext.path, map[string]bool{})
	}
	slices.SortStableFunc(result, func(a, b groupExtension) int {
		return depths[a.path] - depths[b.path]
	})
	return result
}

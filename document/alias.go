/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package document

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/tokenpath"
)

// resolveAliases replaces whole-value aliases throughout the merged tree.
// Each root value gets its own visited chain.
func (run *run) resolveAliases() error {
	source := run.tree
	out := make(map[string]any, len(source))
	for _, k := range slices.Sorted(maps.Keys(source)) {
		v, err := run.flatten(source, source[k], nil)
		if err != nil {
			return err
		}
		out[k] = v
	}
	run.tree = out
	return nil
}

func (run *run) flatten(tree map[string]any, v any, visited []string) (any, error) {
	switch x := v.(type) {
	case string:
		path, ok := run.r.pattern.Whole(x)
		if !ok {
			return x, nil
		}
		return run.alias(tree, x, path, visited)

	case map[string]any:
		if ref, ok := x["$ref"].(string); ok && len(x) == 1 {
			if path, ok := tokenpath.PointerToPath(ref); ok {
				return run.alias(tree, x, path, visited)
			}
			return x, nil
		}
		out := make(map[string]any, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			fv, err := run.flatten(tree, x[k], visited)
			if err != nil {
				return nil, err
			}
			out[k] = fv
		}
		return out, nil

	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			fv, err := run.flatten(tree, item, visited)
			if err != nil {
				return nil, err
			}
			out[i] = fv
		}
		return out, nil

	default:
		return v, nil
	}
}

// alias follows one alias. Unresolvable aliases are kept verbatim.
func (run *run) alias(tree map[string]any, original any, path string, visited []string) (any, error) {
	if i := slices.Index(visited, path); i >= 0 {
		chain := append(slices.Clone(visited[i:]), path)
		return original, run.report(diagnostic.New(diagnostic.Circular, path,
			"circular alias: "+strings.Join(chain, " -> ")))
	}
	if len(visited) >= run.r.opts.MaxDepth {
		return original, run.report(diagnostic.New(diagnostic.DepthExceeded, path,
			fmt.Sprintf("alias chain exceeds max depth %d", run.r.opts.MaxDepth)))
	}

	target, ok := tokenpath.Get(tree, path)
	if !ok {
		return original, run.report(diagnostic.New(diagnostic.Missing, path, "alias target not found").
			WithHint("check the path against the resolved sets"))
	}
	if node, ok := target.(map[string]any); ok && tokenpath.IsTokenNode(node) {
		target = node["$value"]
	}
	return run.flatten(tree, tokenpath.Clone(target), append(slices.Clip(visited), path))
}

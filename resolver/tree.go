/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"context"

	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
)

var _ token.ContextResolver = (*Resolver)(nil)

// ResolveTree resolves every token for sel into a nested tree of
// {$value, $type} nodes. Tokens are visited dependencies first so that
// shared references hit the cache. Diagnostics are those of this call.
func (r *Resolver) ResolveTree(ctx context.Context, sel token.Selection) (*token.Resolution, error) {
	rr := r.WithSelection(sel)
	rctx := rr.NewContext()

	order, err := BuildDependencyGraph(rr.tree, rr.pattern).TopologicalSort()
	if err != nil {
		order = tokenpath.Leaves(rr.tree)
	}

	out := make(map[string]any)
	for _, path := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := rr.ResolvePath(rctx, path)
		if err != nil {
			return nil, err
		}
		node := map[string]any{"$value": v}
		if n, ok := token.Lookup(rr.tree, path); ok && n.Type != "" {
			node["$type"] = n.Type
		}
		tokenpath.SetSegments(out, tokenpath.Split(path), node)
	}

	return &token.Resolution{Tokens: out, Diagnostics: rr.Diagnostics()}, nil
}

// ResolveAll resolves every token into a flat map of dot path to value.
func (r *Resolver) ResolveAll() (map[string]any, error) {
	ctx := r.NewContext()
	out := make(map[string]any)
	for _, path := range tokenpath.Leaves(r.tree) {
		v, err := r.ResolvePath(ctx, path)
		if err != nil {
			return nil, err
		}
		out[path] = v
	}
	return out, nil
}

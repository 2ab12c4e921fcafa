/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
)

func TestResolveTree(t *testing.T) {
	r := newResolver(t, themedTree(), valueOptions())

	res, err := r.ResolveTree(context.Background(), token.Selection{Theme: "dark"})
	require.NoError(t, err)
	assert.False(t, res.HasErrors())

	tests := map[string]any{
		"color.bg.$value":       "#111",
		"color.bg.$type":        "color",
		"color.fg.$value":       "#fff",
		"color.surface.$value":  "#111",
		"space.md.$value":       "16px",
		"border.default.$value": "1px solid #ccc",
	}
	for path, want := range tests {
		got, ok := tokenpath.Get(res.Tokens, path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}

	assert.Empty(t, r.Diagnostics(), "per-call diagnostics stay with the resolution")
}

func TestResolveTree_DiagnosticsAndCycles(t *testing.T) {
	tree := map[string]any{
		"a":    map[string]any{"$alias": "{b}", "$value": "x"},
		"b":    map[string]any{"$alias": "{a}", "$value": "y"},
		"gone": map[string]any{"$value": "{nowhere}"},
	}
	r := newResolver(t, tree, valueOptions())

	res, err := r.ResolveTree(context.Background(), token.Selection{})
	require.NoError(t, err)
	assert.True(t, res.HasErrors())
	assert.True(t, diagnostic.HasErrors(res.Diagnostics))

	v, _ := tokenpath.Get(res.Tokens, "gone.$value")
	assert.Equal(t, "{nowhere}", v)
}

func TestResolveTree_Cancelled(t *testing.T) {
	r := newResolver(t, themedTree(), valueOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ResolveTree(ctx, token.Selection{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveAll(t *testing.T) {
	r := newResolver(t, themedTree(), valueOptions())
	all, err := r.WithSelection(token.Selection{Theme: "light"}).ResolveAll()
	require.NoError(t, err)
	assert.Equal(t, "#fff", all["color.bg"])
	assert.Len(t, all, 6)
}

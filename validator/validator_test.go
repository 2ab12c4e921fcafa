/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/validator"
)

func TestConsistency_Valid(t *testing.T) {
	tree := map[string]any{
		"color": map[string]any{
			"$type": "color",
			"$root": map[string]any{"$value": "#000"},
			"bg":    map[string]any{"$value": "rgb(255, 255, 255)"},
			"fg":    map[string]any{"$value": "{color.bg}"},
			"alt":   map[string]any{"$value": map[string]any{"light": "#fff", "dark": "#000"}},
		},
		"space": map[string]any{
			"md": map[string]any{"$value": "16px", "$type": "dimension"},
		},
	}

	ds := validator.Consistency(tree, nil)
	assert.Empty(t, ds)
}

func TestConsistency(t *testing.T) {
	tests := []struct {
		name    string
		tree    map[string]any
		path    string
		message string
	}{
		{
			name: "unknown type on token",
			tree: map[string]any{
				"a": map[string]any{"$value": "1", "$type": "colour"},
			},
			path:    "a",
			message: `unknown $type "colour"`,
		},
		{
			name: "unknown type on group",
			tree: map[string]any{
				"g": map[string]any{"$type": "size", "a": map[string]any{"$value": "1"}},
			},
			path:    "g",
			message: `unknown $type "size"`,
		},
		{
			name: "invalid inherited color",
			tree: map[string]any{
				"color": map[string]any{
					"$type": "color",
					"bad":   map[string]any{"$value": "not-a-color"},
				},
			},
			path:    "color.bad",
			message: `invalid color value "not-a-color"`,
		},
		{
			name: "group marker",
			tree: map[string]any{
				"color": map[string]any{"_": map[string]any{"$value": "#fff"}},
			},
			path:    "color._",
			message: "group marker tokens are deprecated",
		},
		{
			name: "conflicting root patterns",
			tree: map[string]any{
				"color": map[string]any{
					"$root": map[string]any{"$value": "#fff"},
					"_":     map[string]any{"$value": "#fff"},
				},
			},
			path:    "color",
			message: "conflicting root token patterns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := validator.Consistency(tt.tree, nil)
			require.Len(t, ds, 1, "%v", ds)
			d := ds[0]
			assert.Equal(t, diagnostic.TypeMismatch, d.Code)
			assert.Equal(t, diagnostic.SeverityWarning, d.Severity)
			assert.Equal(t, tt.path, d.Path)
			assert.Contains(t, d.Message, tt.message)
			assert.NotEmpty(t, d.Hint)
		})
	}
}

func TestConsistency_CustomPattern(t *testing.T) {
	pattern, err := token.CompilePattern(`@\(([^)]+)\)`)
	require.NoError(t, err)

	tree := map[string]any{
		"c": map[string]any{"$type": "color", "$value": "@(color.bg)"},
	}
	assert.Empty(t, validator.Consistency(tree, pattern))
	assert.Len(t, validator.Consistency(tree, nil), 1)
}

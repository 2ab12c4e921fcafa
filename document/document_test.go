/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package document_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokencraft/document"
	"bennypowers.dev/tokencraft/testutil"
)

func TestParse(t *testing.T) {
	doc, err := document.Parse(testutil.LoadFixtureFile(t, "fixtures/document/themed/resolver.json"))
	require.NoError(t, err)

	assert.Equal(t, "themed", doc.Name)
	assert.Equal(t, "2025.10", doc.Version)

	base, ok := doc.Sets["base"]
	require.True(t, ok)
	want := []document.Source{
		{Ref: "tokens/base.json"},
		{Ref: "tokens/semantic.json#/semantic"},
	}
	if diff := cmp.Diff(want, base.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	theme, ok := doc.Modifier("theme")
	require.True(t, ok)
	assert.Equal(t, "light", theme.Default)
	assert.Equal(t, []string{"dark", "light"}, theme.ContextNames())

	wantOrder := []document.Entry{
		{Kind: document.EntrySet, Ref: "#/sets/base", Name: "base"},
		{Kind: document.EntryModifier, Ref: "#/modifiers/theme", Name: "theme"},
	}
	if diff := cmp.Diff(wantOrder, doc.ResolutionOrder); diff != "" {
		t.Errorf("resolution order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_YAML(t *testing.T) {
	doc, err := document.Parse([]byte(`
version: "2025.10"
resolutionOrder:
  - type: set
    name: inline
    sources:
      - color:
          bg:
            $value: "#fff"
  - type: modifier
    name: density
    default: regular
    contexts:
      regular: []
      compact:
        - $ref: "#/sets/compact"
`))
	require.NoError(t, err)
	require.Len(t, doc.ResolutionOrder, 2)

	set := doc.ResolutionOrder[0]
	assert.Equal(t, document.EntrySet, set.Kind)
	require.NotNil(t, set.Set)
	require.Len(t, set.Set.Sources, 1)
	assert.False(t, set.Set.Sources[0].IsRef())

	mod, ok := doc.Modifier("density")
	require.True(t, ok, "inline modifiers are found by name")
	assert.Equal(t, "regular", mod.Default)
	assert.Equal(t, "#/sets/compact", mod.Contexts["compact"][0].Ref)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `[1, 2]`},
		{"sets array", `{"sets": []}`},
		{"set not object", `{"sets": {"a": 1}}`},
		{"sources not array", `{"sets": {"a": {"sources": {}}}}`},
		{"source not object", `{"sets": {"a": {"sources": ["x"]}}}`},
		{"modifiers array", `{"modifiers": []}`},
		{"contexts array", `{"modifiers": {"m": {"contexts": []}}}`},
		{"order object", `{"resolutionOrder": {}}`},
		{"entry without type", `{"resolutionOrder": [{"name": "x"}]}`},
		{"entry not object", `{"resolutionOrder": ["#/sets/a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Loaded", document.StateLoaded.String())
	assert.Equal(t, "AliasesResolved", document.StateAliasesResolved.String())
	assert.Equal(t, "State(9)", document.State(9).String())
}

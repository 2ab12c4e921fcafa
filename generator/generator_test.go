/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package generator_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokencraft/config"
	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/generator"
	"bennypowers.dev/tokencraft/schema"
	"bennypowers.dev/tokencraft/testutil"
	"bennypowers.dev/tokencraft/transform"
)

func systemTree() map[string]any {
	return map[string]any{
		"color": map[string]any{
			"$type": "color",
			"bg":    map[string]any{"$value": map[string]any{"light": "#ffffff", "dark": "#000000"}},
			"fg":    map[string]any{"$value": "#111111"},
		},
		"space": map[string]any{
			"$type": "dimension",
			"sm":    map[string]any{"$value": 4},
		},
	}
}

func buttonDecl() map[string]any {
	return map[string]any{
		"bg":      "{color.bg} || #ccc",
		"fg":      "{color.fg}",
		"padding": map[string]any{"$value": 8, "$type": "dimension"},
		"radius":  4,
		"border":  map[string]any{"$value": "{color.missing} || {color.fg} || #000"},
		"states": map[string]any{
			"hover": map[string]any{"bg": "{color.fg}"},
		},
	}
}

func literal(cfg *config.Config) *config.Config {
	off := false
	cfg.ResolveToReferences = &off
	return cfg
}

func TestGenerate_ReferenceMode(t *testing.T) {
	cfg := config.Default()
	cfg.CSSVarPrefix = "ds"

	out, err := generator.Generate("button", buttonDecl(), systemTree(), cfg)
	require.NoError(t, err)

	want := map[string]string{
		"--ds-button-bg":              "var(--color-bg, #ccc)",
		"--ds-button-fg":              "var(--color-fg)",
		"--ds-button-padding":         "8px",
		"--ds-button-radius":          "4",
		"--ds-button-border":          "var(--color-missing, var(--color-fg, #000))",
		"--ds-button-states-hover-bg": "var(--color-fg)",
	}
	if diff := cmp.Diff(want, out.Values); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, generator.ModeFull, out.Mode)
	assert.Empty(t, out.Diagnostics)
	assert.Equal(t, "dimension", out.Types["--ds-button-padding"])
}

func TestGenerate_LiteralMode(t *testing.T) {
	cfg := literal(config.Default())
	cfg.Theme = "dark"

	out, err := generator.Generate("button", buttonDecl(), systemTree(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "#000000", out.Values["--button-bg"])
	assert.Equal(t, "#111111", out.Values["--button-fg"])
	assert.Equal(t, "#111111", out.Values["--button-border"])
	assert.Equal(t, "8px", out.Values["--button-padding"])

	// the failed first candidate of the border chain is recorded
	assert.True(t, out.HasErrors())
}

func TestGenerate_LiteralFallback(t *testing.T) {
	cfg := literal(config.Default())
	decl := map[string]any{"bg": "{color.nope} || {color.gone}"}

	out, err := generator.Generate("card", decl, systemTree(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "{color.nope} || {color.gone}", out.Values["--card-bg"])

	codes := map[diagnostic.Code]int{}
	for _, d := range out.Diagnostics {
		codes[d.Code]++
	}
	assert.Equal(t, 1, codes[diagnostic.UnresolvedFallback])
}

func TestGenerate_NameCase(t *testing.T) {
	tests := []struct {
		nameCase string
		want     string
	}{
		{"kebab", "--ds-button-states-hover-bg"},
		{"camel", "dsButtonStatesHoverBg"},
		{"pascal", "DsButtonStatesHoverBg"},
	}

	for _, tt := range tests {
		t.Run(tt.nameCase, func(t *testing.T) {
			cfg := config.Default()
			cfg.CSSVarPrefix = "ds"
			cfg.NameCase = tt.nameCase
			out, err := generator.Generate("button", buttonDecl(), systemTree(), cfg)
			require.NoError(t, err)
			assert.Contains(t, out.Values, tt.want)
		})
	}
}

func TestGenerate_Modes(t *testing.T) {
	t.Run("vars only", func(t *testing.T) {
		cfg := config.Default()
		cfg.EmitVarsOnly = true
		out, err := generator.Generate("button", buttonDecl(), systemTree(), cfg)
		require.NoError(t, err)
		assert.Equal(t, generator.ModeVarsOnly, out.Mode)
		assert.Len(t, out.Values, 6)
		for k, v := range out.Values {
			assert.Empty(t, v, k)
		}
	})

	t.Run("reference map", func(t *testing.T) {
		cfg := config.Default()
		cfg.EmitReferenceMap = true
		out, err := generator.Generate("button", buttonDecl(), systemTree(), cfg)
		require.NoError(t, err)
		assert.Equal(t, generator.ModeReferenceMap, out.Mode)
		assert.Equal(t, "{color.bg} || #ccc", out.Values["--button-bg"])
		assert.Equal(t, "8", out.Values["--button-padding"])
		assert.Equal(t, "4", out.Values["--button-radius"])
	})

	t.Run("ref-map output implies reference map", func(t *testing.T) {
		cfg := config.Default()
		cfg.Output = config.OutputRefMap
		assert.Equal(t, generator.ModeReferenceMap, generator.ModeFor(cfg))
	})
}

func TestGenerate_Strict(t *testing.T) {
	cfg := literal(config.Default())
	cfg.Strict = true

	_, err := generator.Generate("button", map[string]any{"bg": "{color.missing}"}, systemTree(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrUnresolvedReference))
}

func TestGenerate_CustomRule(t *testing.T) {
	cfg := config.Default()
	rule := transform.Rule{
		Name:  "radius-rem",
		Match: transform.MatchPathSuffix("radius"),
		Apply: func(v any, _ transform.Context) any { return "0.25rem" },
	}

	g, err := generator.New(systemTree(), cfg, rule)
	require.NoError(t, err)

	out, err := g.Generate("button", buttonDecl())
	require.NoError(t, err)
	assert.Equal(t, "0.25rem", out.Values["--button-radius"])
	assert.Contains(t, g.Resolver().Pipeline().Rules(), "radius-rem")
}

func TestGenerate_FreshDiagnosticsPerCall(t *testing.T) {
	g, err := generator.New(systemTree(), literal(config.Default()))
	require.NoError(t, err)

	first, err := g.Generate("a", map[string]any{"x": "{nope} || {gone}"})
	require.NoError(t, err)
	second, err := g.Generate("b", map[string]any{"x": "{color.fg}"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.Diagnostics)
	assert.Empty(t, second.Diagnostics)
}

func sampleOutput() *generator.Output {
	return &generator.Output{
		Component: "button",
		Values: map[string]string{
			"--ds-button-padding": "8px",
			"--ds-button-bg":      "var(--color-bg, #ccc)",
		},
		Types: map[string]string{"--ds-button-padding": "dimension"},
	}
}

func TestOutput_Format(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{
			format: "",
			want:   "{\n  \"--ds-button-bg\": \"var(--color-bg, #ccc)\",\n  \"--ds-button-padding\": \"8px\"\n}\n",
		},
		{
			format: config.OutputCSSDecl,
			want:   ":host {\n  --ds-button-bg: var(--color-bg, #ccc);\n  --ds-button-padding: 8px;\n}\n",
		},
		{
			format: config.OutputJSLiterals,
			want: "export const dsButtonBg = \"var(--color-bg, #ccc)\" as const;\n" +
				"export const dsButtonPadding = \"8px\" as const;\n",
		},
		{
			format: config.OutputSCSS,
			want:   "$ds-button-bg: var(--color-bg, #ccc);\n$ds-button-padding: 8px;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := sampleOutput().Format(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := sampleOutput().Format("swift")
	assert.Error(t, err)
}

func TestOutput_FormatCSSDecl_CamelKeys(t *testing.T) {
	out := &generator.Output{
		Values:   map[string]string{"dsButtonBg": "red"},
		Selector: ":root",
	}
	got, err := out.Format(config.OutputCSSDecl)
	require.NoError(t, err)
	assert.Equal(t, ":root {\n  --ds-button-bg: red;\n}\n", string(got))
}

func TestOutput_FormatAndroid(t *testing.T) {
	out := &generator.Output{
		Values: map[string]string{
			"--ds-button-bg":      "#000000",
			"--ds-button-padding": "8px",
			"--ds-button-label":   `Save & "close" <now>`,
		},
		Types: map[string]string{
			"--ds-button-bg":      "color",
			"--ds-button-padding": "dimension",
		},
	}

	got, err := out.Format(config.OutputAndroid)
	require.NoError(t, err)

	golden := "golden/generator/button.android.xml"
	testutil.UpdateGoldenFile(t, golden, got)
	want := testutil.LoadFixtureFile(t, golden)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("android output mismatch (-want +got):\n%s", diff)
	}
}

func TestOutput_Keys(t *testing.T) {
	assert.Equal(t, []string{"--ds-button-bg", "--ds-button-padding"}, sampleOutput().Keys())
}

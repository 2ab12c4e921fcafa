/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bennypowers.dev/tokencraft/internal/mapfs"
	"bennypowers.dev/tokencraft/testutil"
	"bennypowers.dev/tokencraft/transform"
)

func TestLoad_SimpleYAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/simple", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.Theme != "dark" || cfg.Platform != "web" || cfg.Brand != "acme" {
		t.Errorf("unexpected selection %+v", cfg.Selection())
	}

	if cfg.CSSVarPrefix != "ds" {
		t.Errorf("expected cssVarPrefix 'ds', got %q", cfg.CSSVarPrefix)
	}

	if cfg.Case() != "camel" {
		t.Errorf("expected camel case, got %q", cfg.Case())
	}

	if cfg.ResolvesToReferences() {
		t.Error("expected resolveToReferences false")
	}

	if !cfg.EmitsVarFallbackChain() {
		t.Error("expected emitVarFallbackChain to default to true")
	}

	// unset unit preferences keep their defaults
	want := transform.Units{Dimension: "px", Duration: "ms", Color: "oklch"}
	if diff := cmp.Diff(want, cfg.UnitPreferences); diff != "" {
		t.Errorf("unit preferences mismatch (-want +got):\n%s", diff)
	}

	if cfg.MaxDepth != 32 {
		t.Errorf("expected default maxDepth 32, got %d", cfg.MaxDepth)
	}

	if len(cfg.Files) != 1 || cfg.Files[0].Path != "./tokens.json" {
		t.Errorf("expected one file './tokens.json', got %v", cfg.Files)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoad_JSON(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/json-objects", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.Output != OutputCSSDecl || cfg.Selector != ":root" {
		t.Errorf("expected css-decl on :root, got %q on %q", cfg.Output, cfg.Selector)
	}

	if cfg.EmitsVarFallbackChain() {
		t.Error("expected emitVarFallbackChain false")
	}

	if cfg.MaxDepth != 8 {
		t.Errorf("expected maxDepth 8, got %d", cfg.MaxDepth)
	}

	if cfg.DocumentPath("/project") != "/project/resolver.json" {
		t.Errorf("unexpected document path %q", cfg.DocumentPath("/project"))
	}

	if cfg.Selection().Modifiers["density"] != "compact" {
		t.Errorf("expected density modifier, got %v", cfg.Modifiers)
	}

	want := []FileSpec{
		{Path: "./tokens/base.json", Prefix: "base"},
		{Path: "./tokens/theme.json"},
	}
	if diff := cmp.Diff(want, cfg.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}

	if cfg.PrefixForFile("./tokens/base.json") != "base" {
		t.Errorf("expected prefix 'base' for base.json")
	}
	if cfg.PrefixForFile("./tokens/theme.json") != "" {
		t.Errorf("expected no prefix for theme.json")
	}
}

func TestLoad_NotFound(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/none", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg != nil {
		t.Errorf("expected nil config when not found, got %+v", cfg)
	}
}

func TestLoad_Malformed(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/design-tokens.json", "{not json", 0644)

	if _, err := Load(mfs, "/project"); err == nil {
		t.Fatal("expected parse error")
	}

	if cfg := LoadOrDefault(mfs, "/project"); cfg.Output != OutputCSSVarMap {
		t.Errorf("expected defaults on malformed config, got %+v", cfg)
	}
}

func TestLoadOrDefault_Found(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/simple", "/project")

	cfg := LoadOrDefault(mfs, "/project")
	if cfg.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", cfg.Theme)
	}
}

func TestLoadOrDefault_NotFound(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/none", "/project")

	cfg := LoadOrDefault(mfs, "/project")
	if cfg == nil {
		t.Fatal("expected default config, got nil")
	}

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("default mismatch (-want +got):\n%s", diff)
	}

	if !cfg.ResolvesToReferences() || !cfg.EmitsVarFallbackChain() {
		t.Error("expected reference output with fallback chains by default")
	}
}

func TestConfig_ExpandFiles(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/globs", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cfg.ExpandFiles(mfs, "/project")
	if err != nil {
		t.Fatalf("ExpandFiles() error = %v", err)
	}

	want := []FileSpec{
		{Path: "/project/tokens/base/space.json", Prefix: "ds"},
		{Path: "/project/tokens/themes/light.json", Prefix: "ds"},
		{Path: "npm:@acme/tokens/tokens.json"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExpandFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_FilePaths(t *testing.T) {
	cfg := &Config{
		Files: []FileSpec{
			{Path: "./tokens.json"},
			{Path: "npm:@rhds/tokens/json/rhds.tokens.json"},
			{Path: "./other/*.yaml"},
		},
	}

	expected := []string{
		"./tokens.json",
		"npm:@rhds/tokens/json/rhds.tokens.json",
		"./other/*.yaml",
	}

	if diff := cmp.Diff(expected, cfg.FilePaths()); diff != "" {
		t.Errorf("FilePaths() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"pascal", func(c *Config) { c.NameCase = "Pascal" }, false},
		{"unknown case", func(c *Config) { c.NameCase = "snake" }, true},
		{"unknown output", func(c *Config) { c.Output = "swift" }, true},
		{"both modes", func(c *Config) { c.EmitVarsOnly, c.EmitReferenceMap = true, true }, true},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, true},
		{"two groups", func(c *Config) { c.ReferencePattern = `\{(a)(b)\}` }, true},
		{"bad regexp", func(c *Config) { c.ReferencePattern = `\{(` }, true},
		{"rem", func(c *Config) { c.UnitPreferences.Dimension = "rem" }, false},
		{"em", func(c *Config) { c.UnitPreferences.Dimension = "em" }, true},
		{"seconds", func(c *Config) { c.UnitPreferences.Duration = "s" }, false},
		{"minutes", func(c *Config) { c.UnitPreferences.Duration = "min" }, true},
		{"hsl", func(c *Config) { c.UnitPreferences.Color = "hsl" }, false},
		{"lab", func(c *Config) { c.UnitPreferences.Color = "lab" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_JSONWithComments(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/design-tokens.json", `{
  // generated component variables
  "output": "scss",
  "files": ["./tokens.json",],
}`, 0644)

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != OutputSCSS {
		t.Errorf("expected scss output, got %q", cfg.Output)
	}
	if len(cfg.Files) != 1 {
		t.Errorf("expected one file, got %v", cfg.Files)
	}
}

func TestConfig_ExpandFiles_Alternation(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/globs", "/project")
	cfg := &Config{Files: []FileSpec{{Path: "./tokens/{base,themes}/*.json"}}}

	got, err := cfg.ExpandFiles(mfs, "/project")
	if err != nil {
		t.Fatalf("ExpandFiles() error = %v", err)
	}
	want := []FileSpec{
		{Path: "/project/tokens/base/space.json"},
		{Path: "/project/tokens/themes/light.json"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExpandFiles() mismatch (-want +got):\n%s", diff)
	}

	bad := &Config{Files: []FileSpec{{Path: "./tokens/[a-"}}}
	if _, err := bad.ExpandFiles(mfs, "/project"); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

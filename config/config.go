/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the token resolver.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/tokencraft/naming"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/transform"
)

// Output formats understood by the generator.
const (
	OutputCSSVarMap  = "css-var-map"
	OutputCSSDecl    = "css-decl"
	OutputJSLiterals = "js-literals"
	OutputRefMap     = "ref-map"
	OutputSCSS       = "scss"
	OutputAndroid    = "android"
)

// Outputs lists every supported output format.
var Outputs = []string{
	OutputCSSVarMap,
	OutputCSSDecl,
	OutputJSLiterals,
	OutputRefMap,
	OutputSCSS,
	OutputAndroid,
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the resolver configuration.
type Config struct {
	// Theme, Platform and Brand select context-map variants.
	Theme    string `yaml:"theme" json:"theme"`
	Platform string `yaml:"platform" json:"platform"`
	Brand    string `yaml:"brand" json:"brand"`

	// Output is the serialization format for generated maps.
	Output string `yaml:"output" json:"output"`

	// Selector wraps css-decl output.
	Selector string `yaml:"selector" json:"selector"`

	// CSSVarPrefix prefixes generated component variable names.
	CSSVarPrefix string `yaml:"cssVarPrefix" json:"cssVarPrefix"`

	// SystemTokenPrefix prefixes var() placeholders for system tokens.
	SystemTokenPrefix string `yaml:"systemTokenPrefix" json:"systemTokenPrefix"`

	// ReferenceNamespace is stripped from reference paths before lookup.
	ReferenceNamespace string `yaml:"referenceNamespace" json:"referenceNamespace"`

	// NameCase is kebab, camel or pascal.
	NameCase string `yaml:"nameCase" json:"nameCase"`

	// ResolveToReferences defaults to true when unset.
	ResolveToReferences *bool `yaml:"resolveToReferences" json:"resolveToReferences"`

	// EmitVarFallbackChain defaults to true when unset.
	EmitVarFallbackChain *bool `yaml:"emitVarFallbackChain" json:"emitVarFallbackChain"`

	EmitVarsOnly     bool `yaml:"emitVarsOnly" json:"emitVarsOnly"`
	EmitReferenceMap bool `yaml:"emitReferenceMap" json:"emitReferenceMap"`

	FallbackDelimiter string `yaml:"fallbackDelimiter" json:"fallbackDelimiter"`
	ReferencePattern  string `yaml:"referencePattern" json:"referencePattern"`
	MaxDepth          int    `yaml:"maxDepth" json:"maxDepth"`

	UnitPreferences transform.Units `yaml:"unitPreferences" json:"unitPreferences"`

	// Strict turns blocking diagnostics into errors.
	Strict bool `yaml:"strict" json:"strict"`

	// Files specifies token files to load (paths or specs).
	Files []FileSpec `yaml:"files" json:"files"`

	// Document is a resolution document to resolve instead of Files.
	Document string `yaml:"document" json:"document"`

	// Modifiers selects document modifier contexts by name.
	Modifiers map[string]string `yaml:"modifiers" json:"modifiers"`
}

// FileSpec represents a token file specification.
// It can be specified as a simple string path or as an object with overrides.
type FileSpec struct {
	// Path is the file path (supports globs and npm: protocol).
	Path string `yaml:"path" json:"path"`

	// Prefix nests the file's tokens under a dot path.
	Prefix string `yaml:"prefix" json:"prefix"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Output:            OutputCSSVarMap,
		Selector:          ":host",
		NameCase:          string(naming.Kebab),
		FallbackDelimiter: "||",
		ReferencePattern:  token.DefaultReferencePattern,
		MaxDepth:          32,
		UnitPreferences:   transform.DefaultUnits(),
	}
}

// ResolvesToReferences reports whether var() placeholders are emitted.
func (c *Config) ResolvesToReferences() bool {
	return c.ResolveToReferences == nil || *c.ResolveToReferences
}

// EmitsVarFallbackChain reports whether fallback chains fold into nested var().
func (c *Config) EmitsVarFallbackChain() bool {
	return c.EmitVarFallbackChain == nil || *c.EmitVarFallbackChain
}

// Case returns the parsed NameCase.
func (c *Config) Case() naming.Case {
	nc, err := naming.ParseCase(c.NameCase)
	if err != nil {
		return naming.Kebab
	}
	return nc
}

// Selection returns the requested theme, platform, brand and modifiers.
func (c *Config) Selection() token.Selection {
	return token.Selection{
		Theme:     c.Theme,
		Platform:  c.Platform,
		Brand:     c.Brand,
		Modifiers: c.Modifiers,
	}
}

// Validate checks enumerated fields and the reference pattern.
// Every problem is reported, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if _, err := naming.ParseCase(c.NameCase); err != nil {
		errs = append(errs, err)
	}
	if c.Output != "" && !slices.Contains(Outputs, c.Output) {
		errs = append(errs, fmt.Errorf("unknown output %q", c.Output))
	}
	if c.EmitVarsOnly && c.EmitReferenceMap {
		errs = append(errs, errors.New("emitVarsOnly and emitReferenceMap are mutually exclusive"))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("maxDepth must not be negative, got %d", c.MaxDepth))
	}
	if _, err := token.CompilePattern(c.ReferencePattern); err != nil {
		errs = append(errs, err)
	}

	u := c.UnitPreferences
	if u.Dimension != "" && u.Dimension != transform.UnitPx && u.Dimension != transform.UnitRem {
		errs = append(errs, fmt.Errorf("unknown dimension unit %q", u.Dimension))
	}
	if u.Duration != "" && u.Duration != transform.UnitMs && u.Duration != transform.UnitS {
		errs = append(errs, fmt.Errorf("unknown duration unit %q", u.Duration))
	}
	switch u.Color {
	case "", transform.UnitHex, transform.UnitRGB, transform.UnitHSL, transform.UnitOKLCH:
	default:
		errs = append(errs, fmt.Errorf("unknown color notation %q", u.Color))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// FilePaths returns the list of file paths from all FileSpecs.
func (c *Config) FilePaths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, spec := range c.Files {
		paths = append(paths, spec.Path)
	}
	return paths
}

// PrefixForFile returns the nesting prefix declared for path, if any.
func (c *Config) PrefixForFile(path string) string {
	for _, spec := range c.Files {
		if spec.Path == path {
			return spec.Prefix
		}
	}
	return ""
}

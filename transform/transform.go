/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package transform provides the ordered value transform pipeline applied
// to resolved token values.
package transform

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/tokencraft/tokenpath"
)

// Unit preferences.
const (
	UnitPx    = "px"
	UnitRem   = "rem"
	UnitMs    = "ms"
	UnitS     = "s"
	UnitHex   = "hex"
	UnitRGB   = "rgb"
	UnitHSL   = "hsl"
	UnitOKLCH = "oklch"
)

// Units holds the preferred output units per token type.
type Units struct {
	Dimension string `yaml:"dimension" json:"dimension"`
	Duration  string `yaml:"duration" json:"duration"`
	Color     string `yaml:"color" json:"color"`
}

// DefaultUnits returns px, ms and hex.
func DefaultUnits() Units {
	return Units{Dimension: UnitPx, Duration: UnitMs, Color: UnitHex}
}

// WithDefaults fills empty fields from DefaultUnits.
func (u Units) WithDefaults() Units {
	d := DefaultUnits()
	if u.Dimension == "" {
		u.Dimension = d.Dimension
	}
	if u.Duration == "" {
		u.Duration = d.Duration
	}
	if u.Color == "" {
		u.Color = d.Color
	}
	return u
}

// Context describes the value being transformed.
type Context struct {
	// Path is the dot path of the token, or the output key for generated values.
	Path string

	// Type is the declared (or inherited) $type.
	Type string

	Theme    string
	Platform string
	Brand    string

	Units Units
}

// Matcher decides whether a rule applies.
type Matcher func(ctx Context) bool

// Rule is one step in a pipeline.
type Rule struct {
	Name  string
	Match Matcher
	Apply func(value any, ctx Context) any
}

// Pipeline applies rules in order. The zero value applies nothing.
type Pipeline struct {
	rules []Rule
}

// NewPipeline creates a pipeline from rules.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{rules: slices.Clone(rules)}
}

// Default returns a pipeline with the built-in rules.
func Default() *Pipeline {
	return NewPipeline(Builtin()...)
}

// With returns a new pipeline with rules appended.
func (p *Pipeline) With(rules ...Rule) *Pipeline {
	if p == nil {
		return NewPipeline(rules...)
	}
	return &Pipeline{rules: append(slices.Clone(p.rules), rules...)}
}

// Rules returns the rule names in order.
func (p *Pipeline) Rules() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.rules))
	for i, r := range p.rules {
		names[i] = r.Name
	}
	return names
}

// Apply runs every matching rule in order, each consuming the previous
// rule's output.
func (p *Pipeline) Apply(value any, ctx Context) any {
	if p == nil {
		return value
	}
	ctx.Units = ctx.Units.WithDefaults()
	for _, r := range p.rules {
		if r.Apply == nil {
			continue
		}
		if r.Match != nil && !r.Match(ctx) {
			continue
		}
		value = r.Apply(value, ctx)
	}
	return value
}

// MatchType matches any of the given $type values.
func MatchType(types ...string) Matcher {
	return func(ctx Context) bool {
		return slices.Contains(types, ctx.Type)
	}
}

// MatchPathSuffix matches paths whose last segment, or dotted tail,
// equals one of the suffixes.
func MatchPathSuffix(suffixes ...string) Matcher {
	return func(ctx Context) bool {
		for _, s := range suffixes {
			if ctx.Path == s || strings.HasSuffix(ctx.Path, tokenpath.Separator+s) || strings.HasSuffix(ctx.Path, "-"+s) {
				return true
			}
		}
		return false
	}
}

// MatchPathGlob matches the path, with segments joined by "/", against a
// doublestar glob such as "color/**" or "**/border-*".
// An invalid pattern never matches.
func MatchPathGlob(pattern string) Matcher {
	valid := doublestar.ValidatePattern(pattern)
	return func(ctx Context) bool {
		if !valid {
			return false
		}
		ok, err := doublestar.Match(pattern, strings.ReplaceAll(ctx.Path, tokenpath.Separator, "/"))
		return err == nil && ok
	}
}

// Any matches when at least one matcher does.
func Any(matchers ...Matcher) Matcher {
	return func(ctx Context) bool {
		for _, m := range matchers {
			if m(ctx) {
				return true
			}
		}
		return false
	}
}

// All matches when every matcher does.
func All(matchers ...Matcher) Matcher {
	return func(ctx Context) bool {
		for _, m := range matchers {
			if !m(ctx) {
				return false
			}
		}
		return true
	}
}

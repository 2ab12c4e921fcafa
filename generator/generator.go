/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package generator turns component token declarations into flat maps of
// CSS custom properties (or camel/pascal identifiers) and serializes them.
package generator

import (
	"encoding/json"
	"maps"
	"slices"

	"bennypowers.dev/tokencraft/config"
	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/resolver"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
	"bennypowers.dev/tokencraft/transform"
)

// Mode selects what a generated value holds.
type Mode int

const (
	// ModeFull resolves every declared value.
	ModeFull Mode = iota
	// ModeVarsOnly emits empty values, declaring the variable names only.
	ModeVarsOnly
	// ModeReferenceMap emits the raw declared values.
	ModeReferenceMap
)

func (m Mode) String() string {
	switch m {
	case ModeVarsOnly:
		return "vars-only"
	case ModeReferenceMap:
		return "reference-map"
	default:
		return "full"
	}
}

// ModeFor derives the mode from config. A ref-map output implies the
// reference map mode.
func ModeFor(cfg *config.Config) Mode {
	switch {
	case cfg.EmitReferenceMap || cfg.Output == config.OutputRefMap:
		return ModeReferenceMap
	case cfg.EmitVarsOnly:
		return ModeVarsOnly
	default:
		return ModeFull
	}
}

// Generator generates component outputs against one token tree.
type Generator struct {
	resolver *resolver.Resolver
	cfg      *config.Config
}

// New creates a generator for tree. Extra rules are appended to the
// built-in transform pipeline.
func New(tree map[string]any, cfg *config.Config, rules ...transform.Rule) (*Generator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	opts := resolver.OptionsFromConfig(cfg)
	opts.Transforms = rules
	r, err := resolver.New(tree, opts)
	if err != nil {
		return nil, err
	}
	return NewWithResolver(r, cfg), nil
}

// NewWithResolver wraps an existing resolver.
func NewWithResolver(r *resolver.Resolver, cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Generator{resolver: r, cfg: cfg}
}

// Resolver returns the underlying resolver.
func (g *Generator) Resolver() *resolver.Resolver {
	return g.resolver
}

// Generate walks decl and produces one entry per leaf. A leaf is any
// non-map value or a map carrying $value. In strict mode the first
// escalating diagnostic is returned as the error.
func (g *Generator) Generate(component string, decl map[string]any) (*Output, error) {
	r := g.resolver.WithSelection(g.resolver.Selection())
	out := &Output{
		Component: component,
		Mode:      ModeFor(g.cfg),
		Selector:  g.cfg.Selector,
		Values:    make(map[string]string),
		Types:     make(map[string]string),
	}

	w := walker{r: r, ctx: r.NewContext(), cfg: g.cfg, out: out, component: component}
	if err := w.walk(decl, nil, ""); err != nil {
		return nil, err
	}

	out.Diagnostics = r.Diagnostics()
	return out, nil
}

// Generate is a one-shot convenience for New followed by Generate.
func Generate(component string, decl, tree map[string]any, cfg *config.Config) (*Output, error) {
	g, err := New(tree, cfg)
	if err != nil {
		return nil, err
	}
	return g.Generate(component, decl)
}

type walker struct {
	r         *resolver.Resolver
	ctx       resolver.Context
	cfg       *config.Config
	out       *Output
	component string
}

func (w *walker) walk(node map[string]any, segments []string, inherited string) error {
	if t, ok := node["$type"].(string); ok {
		inherited = t
	}
	for _, k := range slices.Sorted(maps.Keys(node)) {
		if len(k) > 0 && k[0] == '$' {
			continue
		}
		path := append(segments[:len(segments):len(segments)], k)
		child := node[k]

		m, isMap := child.(map[string]any)
		if isMap && !tokenpath.IsTokenNode(m) {
			if err := w.walk(m, path, inherited); err != nil {
				return err
			}
			continue
		}

		value, typ := child, inherited
		if isMap {
			value = m["$value"]
			if t, ok := m["$type"].(string); ok {
				typ = t
			}
		}

		key := w.cfg.Case().Key(w.cfg.CSSVarPrefix, w.component, path...)
		s, err := w.value(value, tokenpath.Join(append([]string{w.component}, path...)...), typ)
		if err != nil {
			return err
		}
		w.out.Values[key] = s
		if typ != "" {
			w.out.Types[key] = typ
		}
	}
	return nil
}

func (w *walker) value(v any, path, typ string) (string, error) {
	switch w.out.Mode {
	case ModeVarsOnly:
		return "", nil
	case ModeReferenceMap:
		if s, ok := v.(string); ok {
			return s, nil
		}
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if s, ok := v.(string); ok {
		return w.r.ResolveInterpolated(w.ctx, s, s)
	}
	return token.Stringify(w.r.Transform(v, path, typ)), nil
}

// Output is the generated map for one component.
type Output struct {
	Component string
	Mode      Mode

	// Values maps output keys to generated values.
	Values map[string]string

	// Types maps output keys to the declared $type, when known.
	Types map[string]string

	// Selector wraps css-decl output.
	Selector string

	Diagnostics []diagnostic.Diagnostic
}

// Keys returns the output keys, sorted.
func (o *Output) Keys() []string {
	return slices.Sorted(maps.Keys(o.Values))
}

// HasErrors reports whether generation produced blocking diagnostics.
func (o *Output) HasErrors() bool {
	return diagnostic.HasErrors(o.Diagnostics)
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver resolves token references against a themeable token
// tree, producing either concrete values or CSS custom property
// placeholders.
package resolver

import (
	"fmt"
	"strings"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/naming"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
	"bennypowers.dev/tokencraft/transform"
)

// Resolver resolves paths in one token tree. It is safe for concurrent
// use; the tree must not be modified while a Resolver is in use.
type Resolver struct {
	tree     map[string]any
	opts     Options
	pattern  *token.ReferencePattern
	pipeline *transform.Pipeline
	log      *diagnostic.Log
}

// New creates a resolver for tree. $extends groups in the tree are
// expanded first; problems doing so are reported as diagnostics.
func New(tree map[string]any, opts Options) (*Resolver, error) {
	opts = opts.withDefaults()

	pattern, err := token.CompilePattern(opts.ReferencePattern)
	if err != nil {
		return nil, err
	}

	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = transform.Default()
	}
	pipeline = pipeline.With(opts.Transforms...)

	r := &Resolver{
		opts:     opts,
		pattern:  pattern,
		pipeline: pipeline,
		log:      diagnostic.NewLog(opts.logOptions()...),
	}

	expanded, diags := ExpandExtends(tree)
	r.tree = expanded
	for _, d := range diags {
		if err := r.report(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Tree returns the tree being resolved, with $extends expanded.
func (r *Resolver) Tree() map[string]any {
	return r.tree
}

// Options returns the effective options.
func (r *Resolver) Options() Options {
	return r.opts
}

// Pattern returns the compiled reference pattern.
func (r *Resolver) Pattern() *token.ReferencePattern {
	return r.pattern
}

// Pipeline returns the transform pipeline.
func (r *Resolver) Pipeline() *transform.Pipeline {
	return r.pipeline
}

// Selection returns the configured theme, platform and brand.
func (r *Resolver) Selection() token.Selection {
	return token.Selection{Theme: r.opts.Theme, Platform: r.opts.Platform, Brand: r.opts.Brand}
}

// Diagnostics returns everything reported so far.
func (r *Resolver) Diagnostics() []diagnostic.Diagnostic {
	return r.log.Diagnostics()
}

// HasErrors reports whether a blocking diagnostic was reported.
func (r *Resolver) HasErrors() bool {
	return r.log.HasErrors()
}

// WithSelection returns a resolver for another theme, platform and brand.
// The copy shares the tree, the pipeline and any configured cache, and
// starts with an empty diagnostic log.
func (r *Resolver) WithSelection(sel token.Selection) *Resolver {
	next := *r
	next.opts.Theme = sel.Theme
	next.opts.Platform = sel.Platform
	next.opts.Brand = sel.Brand
	next.log = diagnostic.NewLog(r.opts.logOptions()...)
	return &next
}

// NewContext returns a fresh context for the configured selection.
func (r *Resolver) NewContext() Context {
	return NewContext(r.Selection(), r.opts.Cache)
}

// Resolve resolves path in a fresh context.
func (r *Resolver) Resolve(path string) (any, error) {
	return r.ResolvePath(r.NewContext(), path)
}

// ResolvePath resolves a dot path. It returns nil, a transformed value,
// or in reference mode a var(--...) placeholder. The error is non-nil
// only in strict mode.
func (r *Resolver) ResolvePath(ctx Context, path string) (any, error) {
	v, _, err := r.resolvePath(ctx, path)
	return v, err
}

func (r *Resolver) references() bool {
	return r.opts.ResolveToReferences
}

// resolvePath reports whether the result is clean: computed without any
// diagnostic in its subtree. Only clean results are cached, so a value
// degraded by a cycle seen from one entry point never leaks to another.
func (r *Resolver) resolvePath(ctx Context, path string) (any, bool, error) {
	path = r.stripNamespace(path)
	if ctx.cache == nil {
		ctx.cache = NewMapCache()
	}

	key := ctx.key(path, r.references())
	if v, ok := ctx.cache.Get(key); ok {
		return v, true, nil
	}

	if ctx.Visiting(path) {
		chain := append(ctx.Visited(), path)
		d := diagnostic.New(diagnostic.Circular, path,
			fmt.Sprintf("circular reference: %s", strings.Join(chain, " -> ")))
		return nil, false, r.reportIn(ctx, d)
	}

	if ctx.Depth() >= r.opts.MaxDepth {
		d := diagnostic.New(diagnostic.DepthExceeded, path,
			fmt.Sprintf("reference depth %d reached", r.opts.MaxDepth)).
			WithHint("shorten the reference chain or raise maxDepth")
		return nil, false, r.reportIn(ctx, d)
	}

	ctx = ctx.Push(path)

	node, ok := token.Lookup(r.tree, path)
	if !ok {
		if r.references() {
			return r.placeholder(path, ""), true, nil
		}
		d := diagnostic.New(diagnostic.Missing, path, "token not found")
		return nil, false, r.reportIn(ctx, d)
	}

	sel := ctx.Selection()
	value := token.Classify(node.Value, sel).Select(sel).Raw()
	clean := true

	if override, ok := r.extensionOverride(node, ctx.Theme); ok {
		value = override
	}

	if node.Alias != "" {
		v, c, err := r.resolvePath(ctx, node.Alias)
		if err != nil {
			return nil, false, err
		}
		clean = clean && c
		if v != nil {
			value = v
		}
	} else if s, ok := value.(string); ok && r.pattern.Contains(s) {
		v, c, err := r.interpolate(ctx, s, s)
		if err != nil {
			return nil, false, err
		}
		clean = clean && c
		value = v
	}

	value = r.pipeline.Apply(value, transform.Context{
		Path:     path,
		Type:     node.Type,
		Theme:    ctx.Theme,
		Platform: ctx.Platform,
		Brand:    ctx.Brand,
		Units:    r.opts.Units,
	})

	if r.references() {
		value = r.placeholder(path, "")
	}

	if clean {
		ctx.cache.Set(key, value)
	}
	return value, clean, nil
}

// extensionOverride looks for a per-theme string override in the node's
// $extensions. Keys are tried in order design.paths.<theme>,
// theme.<theme>, <theme>; each first as a flat key, then as a nested path.
func (r *Resolver) extensionOverride(node *token.Node, theme string) (any, bool) {
	if theme == "" || len(node.Extensions) == 0 {
		return nil, false
	}
	for _, key := range []string{"design.paths." + theme, "theme." + theme, theme} {
		v, ok := node.Extensions[key]
		if !ok {
			v, ok = tokenpath.Get(node.Extensions, key)
		}
		if s, isString := v.(string); ok && isString {
			return s, true
		}
	}
	return nil, false
}

func (r *Resolver) stripNamespace(path string) string {
	path = strings.TrimSpace(path)
	ns := r.opts.ReferenceNamespace
	if ns == "" {
		return path
	}
	return strings.TrimPrefix(path, ns+tokenpath.Separator)
}

// placeholder returns var(--<systemTokenPrefix>-<path>), with fallback
// as the second argument when non-empty.
func (r *Resolver) placeholder(path, fallback string) string {
	return naming.Placeholder(r.opts.SystemTokenPrefix, r.stripNamespace(path), fallback)
}

// Placeholder returns the CSS variable reference for a token path.
func (r *Resolver) Placeholder(path string) string {
	return r.placeholder(path, "")
}

// Transform runs the pipeline over a value outside of path resolution,
// such as a literal in a component declaration.
func (r *Resolver) Transform(value any, path, typ string) any {
	return r.pipeline.Apply(value, transform.Context{
		Path:     path,
		Type:     typ,
		Theme:    r.opts.Theme,
		Platform: r.opts.Platform,
		Brand:    r.opts.Brand,
		Units:    r.opts.Units,
	})
}

func (r *Resolver) report(d diagnostic.Diagnostic) error {
	return r.log.Report(d)
}

// reportIn records d without escalating it while ctx is trying fallback
// candidates.
func (r *Resolver) reportIn(ctx Context, d diagnostic.Diagnostic) error {
	if ctx.held == nil {
		return r.report(d)
	}
	r.log.Record(d)
	ctx.held.hold(d)
	return nil
}

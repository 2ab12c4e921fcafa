/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package document

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/schema"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
)

// DefaultMaxDepth bounds set nesting and alias chains.
const DefaultMaxDepth = 32

// Loader loads the file part of a source reference.
type Loader interface {
	Load(ctx context.Context, ref string) (map[string]any, error)
}

// Options configures a Resolver.
type Options struct {
	// Loader resolves file references. Nil leaves them unresolved.
	Loader Loader

	// MaxDepth bounds set nesting and alias chains. Zero means DefaultMaxDepth.
	MaxDepth int

	// Strict returns escalating diagnostics as errors.
	Strict bool

	// ReferencePattern overrides the alias syntax; empty means {path}.
	ReferencePattern string

	OnWarn  diagnostic.Sink
	OnError diagnostic.Sink
}

// Resolver resolves one document against modifier inputs.
type Resolver struct {
	doc     *Document
	opts    Options
	pattern *token.ReferencePattern
}

// NewResolver creates a resolver for doc.
func NewResolver(doc *Document, opts Options) (*Resolver, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	pattern, err := token.CompilePattern(opts.ReferencePattern)
	if err != nil {
		return nil, err
	}
	return &Resolver{doc: doc, opts: opts, pattern: pattern}, nil
}

// Document returns the resolved document.
func (r *Resolver) Document() *Document {
	return r.doc
}

// Result is the outcome of a resolution.
type Result struct {
	Tokens      map[string]any
	Diagnostics []diagnostic.Diagnostic

	// State is the last state reached. A non-strict resolution always
	// reaches StateAliasesResolved.
	State State
}

// HasErrors reports whether the result carries blocking diagnostics.
func (r *Result) HasErrors() bool {
	return diagnostic.HasErrors(r.Diagnostics)
}

// Resolve runs the document through every state. inputs maps modifier
// names to context names. In strict mode the first escalating diagnostic
// aborts resolution and is returned as the error.
func (r *Resolver) Resolve(ctx context.Context, inputs map[string]string) (*Result, error) {
	run := &run{
		r:    r,
		ctx:  ctx,
		tree: map[string]any{},
		log: diagnostic.NewLog(
			diagnostic.WithStrict(r.opts.Strict),
			diagnostic.WithWarnSink(r.opts.OnWarn),
			diagnostic.WithErrorSink(r.opts.OnError),
		),
	}

	steps := []struct {
		next State
		fn   func() error
	}{
		{StateValidated, func() error { return run.validate(inputs) }},
		{StateSetsResolved, run.resolveSets},
		{StateModifiersApplied, run.applyModifiers},
		{StateAliasesResolved, run.resolveAliases},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.fn(); err != nil {
			return nil, err
		}
		run.state = step.next
	}

	return &Result{
		Tokens:      run.tree,
		Diagnostics: run.log.Diagnostics(),
		State:       run.state,
	}, nil
}

// run carries the state of one Resolve call.
type run struct {
	r        *Resolver
	ctx      context.Context
	log      *diagnostic.Log
	state    State
	tree     map[string]any
	selected map[string]string
}

func (run *run) report(d diagnostic.Diagnostic) error {
	return run.log.Report(d)
}

func (run *run) validate(inputs map[string]string) error {
	v, err := schema.DetectVersion(run.r.doc.raw, nil)
	switch {
	case err != nil:
		if err := run.report(diagnostic.New(diagnostic.TypeMismatch, "version", err.Error()).
			WithHint(`set "version" to "` + schema.V2025_10.String() + `"`)); err != nil {
			return err
		}
	case !v.Supported():
		if err := run.report(diagnostic.New(diagnostic.TypeMismatch, "version", "document declares no version").
			WithHint(`set "version" to "` + schema.V2025_10.String() + `"`)); err != nil {
			return err
		}
	}

	if len(run.r.doc.ResolutionOrder) == 0 {
		if err := run.report(diagnostic.New(diagnostic.Missing, "resolutionOrder", "resolution order is empty")); err != nil {
			return err
		}
	}

	run.selected = make(map[string]string, len(inputs))
	for _, name := range slices.Sorted(maps.Keys(inputs)) {
		value := inputs[name]
		mod, ok := run.r.doc.Modifier(name)
		if !ok {
			// Unknown modifiers are ignored, so the run can still succeed.
			// The warning never escalates and never counts toward HasErrors.
			if err := run.report(diagnostic.New(diagnostic.Missing, name,
				fmt.Sprintf("unknown modifier %q", name)).AsWarning()); err != nil {
				return err
			}
			continue
		}
		if _, ok := mod.Contexts[value]; !ok {
			d := diagnostic.New(diagnostic.TypeMismatch, name,
				fmt.Sprintf("context %q is not defined on modifier %q", value, name)).
				WithHint("expected one of " + strings.Join(mod.ContextNames(), ", "))
			if err := run.report(d); err != nil {
				return err
			}
			continue
		}
		run.selected[name] = value
	}
	return nil
}

func (run *run) resolveSets() error {
	for _, e := range run.r.doc.ResolutionOrder {
		if e.Kind != EntrySet {
			continue
		}

		var (
			tokens map[string]any
			err    error
		)
		if e.Set != nil {
			tokens, err = run.sources(e.Set.Sources, nil)
		} else {
			tokens, err = run.ref(e.Ref, nil)
		}
		if err != nil {
			return err
		}
		run.tree = tokenpath.Merge(run.tree, tokens)
	}
	return nil
}

func (run *run) applyModifiers() error {
	for _, e := range run.r.doc.ResolutionOrder {
		if e.Kind != EntryModifier {
			continue
		}

		mod := e.Modifier
		if mod == nil {
			var ok bool
			if mod, ok = run.r.doc.Modifiers[e.Name]; !ok {
				if err := run.report(diagnostic.New(diagnostic.Missing, e.Ref, "modifier is not defined")); err != nil {
					return err
				}
				continue
			}
		}

		name, ok := run.selected[mod.Name]
		if !ok {
			name = mod.Default
		}
		if name == "" {
			continue
		}

		sources, ok := mod.Contexts[name]
		if !ok {
			d := diagnostic.New(diagnostic.TypeMismatch, mod.Name,
				fmt.Sprintf("default context %q is not defined on modifier %q", name, mod.Name))
			if err := run.report(d); err != nil {
				return err
			}
			continue
		}

		stack := []string{tokenpath.Pointer([]string{"modifiers", mod.Name, "contexts", name})}
		tokens, err := run.sources(sources, stack)
		if err != nil {
			return err
		}
		run.tree = tokenpath.Merge(run.tree, tokens)
	}
	return nil
}

// sources deep-merges sources in order. Sources that fail to resolve
// contribute nothing.
func (run *run) sources(sources []Source, stack []string) (map[string]any, error) {
	merged := map[string]any{}
	for _, s := range sources {
		if !s.IsRef() {
			merged = tokenpath.Merge(merged, s.Tokens)
			continue
		}
		tokens, err := run.ref(s.Ref, stack)
		if err != nil {
			return nil, err
		}
		if tokens != nil {
			merged = tokenpath.Merge(merged, tokens)
		}
	}
	return merged, nil
}

// ref resolves a source reference. Local pointers address the document
// itself; a target carrying "sources" is a set, an array is a context's
// source list, and any other object is a token tree.
func (run *run) ref(ref string, stack []string) (map[string]any, error) {
	if i := slices.Index(stack, ref); i >= 0 {
		chain := append(slices.Clone(stack[i:]), ref)
		return nil, run.report(diagnostic.New(diagnostic.Circular, ref,
			"circular source reference: "+strings.Join(chain, " -> ")))
	}
	if len(stack) >= run.r.opts.MaxDepth {
		return nil, run.report(diagnostic.New(diagnostic.DepthExceeded, ref,
			fmt.Sprintf("source nesting exceeds max depth %d", run.r.opts.MaxDepth)))
	}
	stack = append(slices.Clip(stack), ref)

	file, segments, ok := tokenpath.ParsePointer(ref)
	if !ok {
		return nil, run.report(diagnostic.New(diagnostic.Missing, ref, "malformed reference"))
	}

	root := run.r.doc.raw
	if file != "" {
		if run.r.opts.Loader == nil {
			return nil, run.report(diagnostic.New(diagnostic.Missing, ref, "no loader for file reference"))
		}
		loaded, err := run.r.opts.Loader.Load(run.ctx, file)
		if err != nil {
			if ctxErr := run.ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, run.report(diagnostic.New(diagnostic.Missing, ref, err.Error()))
		}
		root = loaded
	}

	target, found := tokenpath.GetSegments(root, segments)
	if !found {
		return nil, run.report(diagnostic.New(diagnostic.Missing, ref, "reference target not found"))
	}

	switch t := target.(type) {
	case map[string]any:
		if raw, isSet := t["sources"]; isSet && file == "" {
			sources, err := parseSources(raw)
			if err != nil {
				return nil, run.report(diagnostic.New(diagnostic.TypeMismatch, ref, err.Error()))
			}
			return run.sources(sources, stack)
		}
		return tokenpath.Clone(t).(map[string]any), nil
	case []any:
		sources, err := parseSources(t)
		if err != nil {
			return nil, run.report(diagnostic.New(diagnostic.TypeMismatch, ref, err.Error()))
		}
		return run.sources(sources, stack)
	default:
		return nil, run.report(diagnostic.New(diagnostic.TypeMismatch, ref,
			fmt.Sprintf("reference target must be an object, got %T", target)))
	}
}

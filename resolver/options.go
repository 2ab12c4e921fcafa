/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/transform"
)

// DefaultMaxDepth bounds the visited stack.
const DefaultMaxDepth = 32

// DefaultFallbackDelimiter separates fallback candidates.
const DefaultFallbackDelimiter = "||"

// Options configures a Resolver. Start from DefaultOptions; the zero
// value disables reference output and chain building.
type Options struct {
	// Theme, Platform and Brand select context-map variants.
	Theme    string
	Platform string
	Brand    string

	// SystemTokenPrefix prefixes placeholder variable names.
	SystemTokenPrefix string

	// ReferenceNamespace is stripped from reference paths before lookup.
	ReferenceNamespace string

	// ResolveToReferences returns var(--...) placeholders instead of values.
	ResolveToReferences bool

	// EmitVarFallbackChain folds fallback chains into nested var() expressions.
	EmitVarFallbackChain bool

	FallbackDelimiter string

	// ReferencePattern is a regular expression with one capture group.
	ReferencePattern string

	MaxDepth int

	Units transform.Units

	// Pipeline replaces the built-in transforms when set.
	Pipeline *transform.Pipeline

	// Transforms are appended to the pipeline.
	Transforms []transform.Rule

	// Strict returns blocking diagnostics as errors.
	Strict bool

	OnWarn  diagnostic.Sink
	OnError diagnostic.Sink

	// Cache is shared by every call when set; otherwise each top-level
	// call gets its own.
	Cache Cache
}

// DefaultOptions returns reference output with fallback chains, the
// default delimiter, pattern and depth limit.
func DefaultOptions() Options {
	return Options{
		ResolveToReferences:  true,
		EmitVarFallbackChain: true,
		FallbackDelimiter:    DefaultFallbackDelimiter,
		MaxDepth:             DefaultMaxDepth,
		Units:                transform.DefaultUnits(),
	}
}

func (o Options) withDefaults() Options {
	if o.FallbackDelimiter == "" {
		o.FallbackDelimiter = DefaultFallbackDelimiter
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	o.Units = o.Units.WithDefaults()
	return o
}

func (o Options) logOptions() []diagnostic.Option {
	opts := []diagnostic.Option{diagnostic.WithStrict(o.Strict)}
	if o.OnWarn != nil {
		opts = append(opts, diagnostic.WithWarnSink(o.OnWarn))
	}
	if o.OnError != nil {
		opts = append(opts, diagnostic.WithErrorSink(o.OnError))
	}
	return opts
}

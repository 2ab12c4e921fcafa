/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"strings"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/token"
)

// ResolveInterpolated resolves a string that may contain references and
// fallback candidates, such as "{a} || {b} || #ccc".
//
// In reference mode with chain building, the candidates fold into a
// nested var() expression without checking that any path exists. In
// literal mode each candidate is tried in turn and the first that fully
// resolves wins; when none does, UNRESOLVED_FALLBACK is reported and
// fallback is returned. The error is non-nil only in strict mode.
func (r *Resolver) ResolveInterpolated(ctx Context, input, fallback string) (string, error) {
	v, _, err := r.interpolate(ctx, input, fallback)
	if err != nil {
		return "", err
	}
	return token.Stringify(v), nil
}

// Candidates splits input on the fallback delimiter and trims each part.
func (r *Resolver) Candidates(input string) []string {
	parts := strings.Split(input, r.opts.FallbackDelimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func (r *Resolver) interpolate(ctx Context, input, fallback string) (any, bool, error) {
	candidates := r.Candidates(input)

	if r.references() && (len(candidates) == 1 || r.opts.EmitVarFallbackChain) {
		clean, err := r.guard(ctx, candidates)
		if err != nil {
			return nil, false, err
		}
		return r.chain(candidates), clean, nil
	}

	// only the outermost chain escalates held diagnostics
	outer := ctx.held == nil
	if outer {
		ctx.held = &held{}
	}

	clean := true
	for _, cand := range candidates {
		v, ok, c, err := r.tryCandidate(ctx, cand)
		if err != nil {
			return nil, false, err
		}
		clean = clean && c
		if ok {
			return v, clean, nil
		}
	}

	d := diagnostic.New(diagnostic.UnresolvedFallback, ctx.Current(),
		fmt.Sprintf("no candidate of %q resolved", input))
	if err := r.reportIn(ctx, d); err != nil {
		return nil, false, err
	}
	if outer && r.log.Strict() && ctx.held.first != nil {
		return fallback, false, *ctx.held.first
	}
	return fallback, false, nil
}

// guard walks every reference of candidates so that cycles and overlong
// chains are reported in reference mode, where the resolved values are
// discarded in favor of placeholders. Missing targets are not reported.
func (r *Resolver) guard(ctx Context, candidates []string) (bool, error) {
	clean := true
	for _, cand := range candidates {
		for _, ref := range r.pattern.FindAll(cand) {
			_, c, err := r.resolvePath(ctx, ref.TokenPath)
			if err != nil {
				return false, err
			}
			clean = clean && c
		}
	}
	return clean, nil
}

// chain folds candidates right to left: each reference receives the
// expression built so far as its fallback argument, and a candidate
// without references replaces it.
func (r *Resolver) chain(candidates []string) string {
	acc := ""
	for i := len(candidates) - 1; i >= 0; i-- {
		cand := candidates[i]
		if cand == "" {
			continue
		}
		if !r.pattern.Contains(cand) {
			acc = cand
			continue
		}
		inner := acc
		acc = r.pattern.Replace(cand, func(ref token.Reference) string {
			return r.placeholder(ref.TokenPath, inner)
		})
	}
	return acc
}

// tryCandidate substitutes every reference in cand. A candidate is
// resolved when nothing failed, no reference markers remain and the
// result is not empty. A candidate that is exactly one reference yields
// the target's value unchanged, so numbers and objects keep their type.
func (r *Resolver) tryCandidate(ctx Context, cand string) (value any, ok, clean bool, err error) {
	if !r.pattern.Contains(cand) {
		return cand, cand != "", true, nil
	}

	if path, whole := r.pattern.Whole(cand); whole {
		v, c, err := r.resolvePath(ctx, path)
		if err != nil {
			return nil, false, false, err
		}
		return v, r.resolved(v), c, nil
	}

	clean = true
	failed := false
	out := r.pattern.Replace(cand, func(ref token.Reference) string {
		if err != nil {
			return ref.Raw
		}
		v, c, e := r.resolvePath(ctx, ref.TokenPath)
		if e != nil {
			err = e
			return ref.Raw
		}
		clean = clean && c
		if !r.resolved(v) {
			failed = true
			return ref.Raw
		}
		return token.Stringify(v)
	})
	if err != nil {
		return nil, false, false, err
	}
	return out, !failed && r.resolved(out), clean, nil
}

func (r *Resolver) resolved(v any) bool {
	switch x := token.Classify(v, token.Selection{}); x.Kind {
	case token.KindNull:
		return false
	case token.KindScalar:
		s, isString := x.Raw().(string)
		return !isString || (strings.TrimSpace(s) != "" && !r.pattern.Contains(s))
	case token.KindContextMap, token.KindStructured, token.KindList:
		return true
	default:
		return false
	}
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"slices"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/token"
)

// Context is the per-call resolution context: the requested selection,
// the stack of paths being resolved, and the memo cache. Contexts are
// values; Push returns a new context and never modifies the receiver.
type Context struct {
	Theme    string
	Platform string
	Brand    string

	visited []string
	cache   Cache
	held    *held
}

// held collects diagnostics reported while trying fallback candidates.
// Escalation is deferred until every candidate has failed.
type held struct {
	first *diagnostic.Diagnostic
}

func (h *held) hold(d diagnostic.Diagnostic) {
	if h.first == nil && d.Code.Escalates() && d.Severity == diagnostic.SeverityError {
		h.first = &d
	}
}

// NewContext creates a context for sel. A nil cache gets a fresh MapCache.
func NewContext(sel token.Selection, cache Cache) Context {
	if cache == nil {
		cache = NewMapCache()
	}
	return Context{
		Theme:    sel.Theme,
		Platform: sel.Platform,
		Brand:    sel.Brand,
		cache:    cache,
	}
}

// Selection returns the theme, platform and brand of the context.
func (c Context) Selection() token.Selection {
	return token.Selection{Theme: c.Theme, Platform: c.Platform, Brand: c.Brand}
}

// Push returns a context with path on top of the visited stack.
func (c Context) Push(path string) Context {
	next := c
	next.visited = append(slices.Clip(c.visited), path)
	return next
}

// Visiting reports whether path is on the visited stack.
func (c Context) Visiting(path string) bool {
	return slices.Contains(c.visited, path)
}

// Depth returns the size of the visited stack.
func (c Context) Depth() int {
	return len(c.visited)
}

// Current returns the path on top of the visited stack, if any.
func (c Context) Current() string {
	if len(c.visited) == 0 {
		return ""
	}
	return c.visited[len(c.visited)-1]
}

// Visited returns a copy of the visited stack, outermost first.
func (c Context) Visited() []string {
	return slices.Clone(c.visited)
}

// Cache returns the memo cache associated with the context.
func (c Context) Cache() Cache {
	return c.cache
}

func (c Context) key(path string, references bool) Key {
	return Key{
		Theme:      c.Theme,
		Platform:   c.Platform,
		Brand:      c.Brand,
		Path:       path,
		References: references,
	}
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package document resolves resolution documents: named sets of token
// sources merged in a declared order, with modifier contexts applied on
// top and aliases flattened last.
package document

import (
	"fmt"
	"maps"
	"slices"

	"bennypowers.dev/tokencraft/parser"
	"bennypowers.dev/tokencraft/tokenpath"
)

// State is the position of a resolution in the document state machine.
type State int

const (
	StateLoaded State = iota
	StateValidated
	StateSetsResolved
	StateModifiersApplied
	StateAliasesResolved
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "Loaded"
	case StateValidated:
		return "Validated"
	case StateSetsResolved:
		return "SetsResolved"
	case StateModifiersApplied:
		return "ModifiersApplied"
	case StateAliasesResolved:
		return "AliasesResolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Source is one entry of a set or modifier context: either an inline
// token object or a reference ("#/pointer", "file.json", "file.json#/pointer").
type Source struct {
	Ref    string
	Tokens map[string]any
}

// IsRef reports whether the source is a reference.
func (s Source) IsRef() bool {
	return s.Ref != ""
}

// Set is a named, ordered bundle of sources.
type Set struct {
	Name        string
	Description string
	Sources     []Source
}

// Modifier is a named family of alternative contexts.
type Modifier struct {
	Name        string
	Description string
	Contexts    map[string][]Source
	Default     string
}

// ContextNames returns the modifier's context names, sorted.
func (m *Modifier) ContextNames() []string {
	return slices.Sorted(maps.Keys(m.Contexts))
}

// EntryKind distinguishes resolution order entries.
type EntryKind int

const (
	EntrySet EntryKind = iota
	EntryModifier
)

// Entry is one step of the resolution order. Referenced entries carry
// Ref and Name; inline entries carry Set or Modifier.
type Entry struct {
	Kind     EntryKind
	Ref      string
	Name     string
	Set      *Set
	Modifier *Modifier
}

// Document is a parsed resolution document.
type Document struct {
	Name            string
	Version         string
	Description     string
	Sets            map[string]*Set
	Modifiers       map[string]*Modifier
	ResolutionOrder []Entry

	raw map[string]any
}

// Raw returns the decoded document, used for JSON Pointer lookups.
func (d *Document) Raw() map[string]any {
	return d.raw
}

// Modifier finds a modifier by name, declared or inline.
func (d *Document) Modifier(name string) (*Modifier, bool) {
	if m, ok := d.Modifiers[name]; ok {
		return m, true
	}
	for _, e := range d.ResolutionOrder {
		if e.Modifier != nil && e.Modifier.Name == name {
			return e.Modifier, true
		}
	}
	return nil, false
}

// Parse decodes a JSON, JSONC or YAML resolution document.
func Parse(data []byte) (*Document, error) {
	raw, err := parser.Decode(data)
	if err != nil {
		return nil, err
	}
	return FromMap(raw)
}

// FromMap builds a document from a decoded map. Only the shape is
// checked here; versions and names are validated during resolution.
func FromMap(raw map[string]any) (*Document, error) {
	d := &Document{
		Sets:      make(map[string]*Set),
		Modifiers: make(map[string]*Modifier),
		raw:       raw,
	}
	d.Name, _ = raw["name"].(string)
	d.Description, _ = raw["description"].(string)
	if v, ok := raw["version"]; ok {
		d.Version = fmt.Sprint(v)
	}

	if sets, ok := raw["sets"]; ok {
		m, ok := sets.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("sets must be an object, got %T", sets)
		}
		for name, v := range m {
			s, err := parseSet(name, v)
			if err != nil {
				return nil, err
			}
			d.Sets[name] = s
		}
	}

	if mods, ok := raw["modifiers"]; ok {
		m, ok := mods.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("modifiers must be an object, got %T", mods)
		}
		for name, v := range m {
			mod, err := parseModifier(name, v)
			if err != nil {
				return nil, err
			}
			d.Modifiers[name] = mod
		}
	}

	if order, ok := raw["resolutionOrder"]; ok {
		list, ok := order.([]any)
		if !ok {
			return nil, fmt.Errorf("resolutionOrder must be an array, got %T", order)
		}
		for i, v := range list {
			e, err := parseEntry(v)
			if err != nil {
				return nil, fmt.Errorf("resolutionOrder[%d]: %w", i, err)
			}
			d.ResolutionOrder = append(d.ResolutionOrder, e)
		}
	}

	return d, nil
}

func parseSet(name string, v any) (*Set, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("set %q must be an object, got %T", name, v)
	}
	sources, err := parseSources(m["sources"])
	if err != nil {
		return nil, fmt.Errorf("set %q: %w", name, err)
	}
	desc, _ := m["description"].(string)
	return &Set{Name: name, Description: desc, Sources: sources}, nil
}

func parseModifier(name string, v any) (*Modifier, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("modifier %q must be an object, got %T", name, v)
	}
	mod := &Modifier{Name: name, Contexts: make(map[string][]Source)}
	mod.Description, _ = m["description"].(string)
	mod.Default, _ = m["default"].(string)

	if raw, ok := m["contexts"]; ok {
		contexts, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("modifier %q: contexts must be an object, got %T", name, raw)
		}
		for ctxName, list := range contexts {
			sources, err := parseSources(list)
			if err != nil {
				return nil, fmt.Errorf("modifier %q context %q: %w", name, ctxName, err)
			}
			mod.Contexts[ctxName] = sources
		}
	}
	return mod, nil
}

func parseSources(v any) ([]Source, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("sources must be an array, got %T", v)
	}
	sources := make([]Source, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("sources[%d] must be an object, got %T", i, item)
		}
		if ref, ok := m["$ref"].(string); ok {
			sources = append(sources, Source{Ref: ref})
			continue
		}
		sources = append(sources, Source{Tokens: m})
	}
	return sources, nil
}

func parseEntry(v any) (Entry, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Entry{}, fmt.Errorf("entry must be an object, got %T", v)
	}

	if ref, ok := m["$ref"].(string); ok {
		e := Entry{Kind: EntrySet, Ref: ref}
		file, segments, ok := tokenpath.ParsePointer(ref)
		if ok && file == "" && len(segments) == 2 {
			switch segments[0] {
			case "sets":
				e.Name = segments[1]
			case "modifiers":
				e.Kind = EntryModifier
				e.Name = segments[1]
			}
		}
		return e, nil
	}

	name, _ := m["name"].(string)
	switch m["type"] {
	case "set":
		s, err := parseSet(name, m)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: EntrySet, Name: name, Set: s}, nil
	case "modifier":
		mod, err := parseModifier(name, m)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: EntryModifier, Name: name, Modifier: mod}, nil
	default:
		return Entry{}, fmt.Errorf("entry needs $ref or type set|modifier, got type %v", m["type"])
	}
}

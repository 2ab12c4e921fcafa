/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"encoding/json"
	"fmt"
	"strconv"

	"bennypowers.dev/tokencraft/tokenpath"
)

// Kind discriminates the Value union.
type Kind int

const (
	// KindNull is an absent value.
	KindNull Kind = iota

	// KindScalar is a string, number or boolean.
	KindScalar

	// KindContextMap is an object keyed by theme, platform or brand variants.
	KindContextMap

	// KindStructured is any other object, such as a typography record.
	KindStructured

	// KindList is an array, such as a font-family stack.
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindContextMap:
		return "context-map"
	case KindStructured:
		return "structured"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// DefaultVariants are keys that mark an object as a context map even when
// they are not part of the current selection.
var DefaultVariants = []string{
	"light", "dark", "hc", "high-contrast",
	"web", "mobile", "ios", "android", "desktop",
}

// Value is a classified token value.
type Value struct {
	Kind Kind
	raw  any
}

// Classify sorts a raw value into the union. An object is a context map
// when every key is a known variant or one of the selection's own
// theme, platform or brand names.
func Classify(raw any, sel Selection) Value {
	switch v := raw.(type) {
	case nil:
		return Value{Kind: KindNull}
	case string, bool, float64, float32, int, int64, int32, json.Number:
		return Value{Kind: KindScalar, raw: v}
	case []any:
		return Value{Kind: KindList, raw: v}
	case map[string]any:
		if isContextMap(v, sel) {
			return Value{Kind: KindContextMap, raw: v}
		}
		return Value{Kind: KindStructured, raw: v}
	default:
		return Value{Kind: KindScalar, raw: v}
	}
}

func isContextMap(m map[string]any, sel Selection) bool {
	if len(m) == 0 {
		return false
	}
	for k := range m {
		if k == sel.Theme || k == sel.Platform || k == sel.Brand {
			continue
		}
		known := false
		for _, v := range DefaultVariants {
			if k == v {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}

// Raw returns the underlying value.
func (v Value) Raw() any {
	return v.raw
}

// Map returns the object for context-map and structured values.
func (v Value) Map() map[string]any {
	m, _ := v.raw.(map[string]any)
	return m
}

// Select narrows a context map by trying brand, then theme, then
// platform, repeating while the selection is itself a context map.
// When nothing matches, the map is returned untouched.
func (v Value) Select(sel Selection) Value {
	current := v
	for range 3 {
		if current.Kind != KindContextMap {
			return current
		}
		picked, _, ok := tokenpath.First(current.Map(), sel.Brand, sel.Theme, sel.Platform)
		if !ok {
			return current
		}
		current = Classify(picked, sel)
	}
	return current
}

// String renders a scalar for substitution into a string.
func (v Value) String() string {
	switch x := v.raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		if v.Kind == KindStructured || v.Kind == KindContextMap || v.Kind == KindList {
			b, err := json.Marshal(x)
			if err == nil {
				return string(b)
			}
		}
		return fmt.Sprintf("%v", x)
	}
}

// Stringify renders any raw value the way Value.String does.
func Stringify(raw any) string {
	return Classify(raw, Selection{}).String()
}

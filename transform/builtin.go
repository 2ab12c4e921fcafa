/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transform

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/tokencraft/naming"
	"bennypowers.dev/tokencraft/token"
)

// Builtin returns the built-in rules in application order. Units are
// read from each call's Context.
func Builtin() []Rule {
	return []Rule{
		Dimension(),
		Duration(),
		Color(),
		Border(),
		Typography(),
	}
}

// Dimension suffixes numeric dimensions with the preferred unit.
// Structured {value, unit} dimensions render as written.
func Dimension() Rule {
	return Rule{
		Name:  "dimension",
		Match: MatchType(token.TypeDimension),
		Apply: func(v any, ctx Context) any {
			return dimension(v, ctx.Units.Dimension)
		},
	}
}

func dimension(v any, unit string) any {
	if f, ok := toFloat(v); ok {
		return formatNumber(f) + unit
	}
	if s, ok := valueUnit(v); ok {
		return s
	}
	return v
}

// Duration suffixes numeric milliseconds with ms, or converts to seconds.
func Duration() Rule {
	return Rule{
		Name:  "duration",
		Match: MatchType(token.TypeDuration),
		Apply: func(v any, ctx Context) any {
			if f, ok := toFloat(v); ok {
				if ctx.Units.Duration == UnitS {
					return formatNumber(f/1000) + UnitS
				}
				return formatNumber(f) + UnitMs
			}
			if s, ok := valueUnit(v); ok {
				return s
			}
			return v
		},
	}
}

// Color reformats parseable colors into the preferred notation.
// Structured color objects are rendered to CSS first.
func Color() Rule {
	return Rule{
		Name:  "color",
		Match: MatchType(token.TypeColor),
		Apply: func(v any, ctx Context) any {
			if m, ok := v.(map[string]any); ok {
				oc, ok := ParseObjectColor(m)
				if !ok {
					return v
				}
				v = oc.CSS()
			}
			s, ok := v.(string)
			if !ok {
				return v
			}
			if out, ok := FormatColor(s, ctx.Units.Color); ok {
				return out
			}
			return s
		},
	}
}

// Border prefixes a bare single-token value with "1px solid ".
// Structured {width, style, color} borders become shorthand.
func Border() Rule {
	return Rule{
		Name:  "border",
		Match: MatchType(token.TypeBorder),
		Apply: func(v any, ctx Context) any {
			switch x := v.(type) {
			case string:
				s := strings.TrimSpace(x)
				if s == "" || strings.ContainsAny(s, " \t\n") {
					return x
				}
				return "1px solid " + s
			case map[string]any:
				var parts []string
				if w, ok := x["width"]; ok {
					parts = append(parts, token.Stringify(dimension(w, ctx.Units.Dimension)))
				}
				if s, ok := x["style"].(string); ok {
					parts = append(parts, s)
				}
				if c, ok := x["color"]; ok {
					if m, ok := c.(map[string]any); ok {
						if oc, ok := ParseObjectColor(m); ok {
							c = oc.CSS()
						}
					}
					parts = append(parts, token.Stringify(c))
				}
				if len(parts) == 0 {
					return v
				}
				return strings.Join(parts, " ")
			default:
				return v
			}
		},
	}
}

// typographyOrder is the canonical declaration order.
var typographyOrder = []string{
	"fontFamily",
	"fontSize",
	"fontWeight",
	"fontStyle",
	"lineHeight",
	"letterSpacing",
	"textTransform",
	"textDecoration",
}

// Typography flattens a typography object into a CSS declaration list,
// e.g. "font-family: Inter, sans-serif; font-size: 16px".
func Typography() Rule {
	return Rule{
		Name:  "typography",
		Match: MatchType(token.TypeTypography),
		Apply: func(v any, ctx Context) any {
			m, ok := v.(map[string]any)
			if !ok || len(m) == 0 {
				return v
			}

			keys := make([]string, 0, len(m))
			for _, k := range typographyOrder {
				if _, ok := m[k]; ok {
					keys = append(keys, k)
				}
			}
			for _, k := range slices.Sorted(maps.Keys(m)) {
				if !slices.Contains(typographyOrder, k) && !strings.HasPrefix(k, "$") {
					keys = append(keys, k)
				}
			}

			decls := make([]string, 0, len(keys))
			for _, k := range keys {
				decls = append(decls, naming.ToKebab(k)+": "+typographyValue(k, m[k], ctx))
			}
			return strings.Join(decls, "; ")
		},
	}
}

func typographyValue(key string, v any, ctx Context) string {
	switch x := v.(type) {
	case []any:
		parts := make([]string, len(x))
		for i, p := range x {
			parts[i] = token.Stringify(p)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if s, ok := valueUnit(x); ok {
			return s
		}
		return token.Stringify(x)
	}
	switch key {
	case "fontSize", "letterSpacing":
		return token.Stringify(dimension(v, ctx.Units.Dimension))
	}
	return token.Stringify(v)
}

// valueUnit renders {value, unit} objects.
func valueUnit(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	f, ok := toFloat(m["value"])
	if !ok {
		return "", false
	}
	unit, _ := m["unit"].(string)
	return formatNumber(f) + unit, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

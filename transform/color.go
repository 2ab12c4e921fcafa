/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// AlphaThreshold is the value below which alpha is included in CSS output.
const AlphaThreshold = 0.999

// ObjectColor is a structured color value: colorSpace, components,
// optional alpha and optional hex.
type ObjectColor struct {
	ColorSpace string
	Components []any
	Alpha      *float64
	Hex        string
}

// ParseObjectColor reads a structured color. ok is false when m has no
// colorSpace or no components.
func ParseObjectColor(m map[string]any) (ObjectColor, bool) {
	space, _ := m["colorSpace"].(string)
	comps, _ := m["components"].([]any)
	if space == "" || len(comps) == 0 {
		return ObjectColor{}, false
	}
	oc := ObjectColor{ColorSpace: space, Components: comps}
	if a, ok := toFloat(m["alpha"]); ok {
		oc.Alpha = &a
	}
	oc.Hex, _ = m["hex"].(string)
	return oc, true
}

// CSS renders the color as a CSS color value.
func (o ObjectColor) CSS() string {
	if o.Hex != "" {
		return o.Hex
	}

	hasAlpha := o.Alpha != nil && *o.Alpha < AlphaThreshold

	if o.ColorSpace == "srgb" && !hasAlpha {
		if hex, ok := o.srgbHex(); ok {
			return hex
		}
	}

	comps := make([]string, len(o.Components))
	for i, c := range o.Components {
		if f, ok := toFloat(c); ok {
			comps[i] = formatNumber(round(f, 4))
			continue
		}
		comps[i] = fmt.Sprint(c)
	}
	body := strings.Join(comps, " ")
	if hasAlpha {
		body += " / " + formatNumber(round(*o.Alpha, 4))
	}

	switch o.ColorSpace {
	case "hsl", "hwb", "lab", "lch", "oklab", "oklch":
		return o.ColorSpace + "(" + body + ")"
	default:
		return "color(" + o.ColorSpace + " " + body + ")"
	}
}

func (o ObjectColor) srgbHex() (string, bool) {
	if len(o.Components) != 3 {
		return "", false
	}
	var rgb [3]int
	for i, c := range o.Components {
		f, ok := toFloat(c)
		if !ok {
			return "", false
		}
		rgb[i] = min(max(int(f*255+0.5), 0), 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), true
}

// FormatColor parses a CSS color string and renders it in the given
// notation (hex, rgb, hsl or oklch). ok is false when s does not parse
// as a color, in which case s should pass through unchanged.
func FormatColor(s, notation string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.HasPrefix(trimmed, "var(") || strings.ContainsAny(trimmed, "{}") {
		return s, false
	}
	c, err := csscolorparser.Parse(trimmed)
	if err != nil {
		return s, false
	}
	if (notation == UnitHex || notation == "") && strings.HasPrefix(trimmed, "#") {
		return trimmed, true
	}

	alpha := ""
	if c.A < AlphaThreshold {
		alpha = " / " + formatNumber(round(c.A, 3))
	}

	switch notation {
	case UnitRGB:
		r, g, b, _ := c.RGBA255()
		return fmt.Sprintf("rgb(%d %d %d%s)", r, g, b, alpha), true
	case UnitHSL:
		h, sat, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
		if math.IsNaN(h) {
			h = 0
		}
		return fmt.Sprintf("hsl(%s %s%% %s%%%s)",
			formatNumber(round(h, 2)),
			formatNumber(round(sat*100, 2)),
			formatNumber(round(l*100, 2)),
			alpha), true
	case UnitOKLCH:
		l, ch, h := colorful.Color{R: c.R, G: c.G, B: c.B}.OkLch()
		if math.IsNaN(h) || ch < 1e-4 {
			h, ch = 0, 0
		}
		return fmt.Sprintf("oklch(%s %s %s%s)",
			formatNumber(round(l, 4)),
			formatNumber(round(ch, 4)),
			formatNumber(round(h, 2)),
			alpha), true
	default:
		return c.HexString(), true
	}
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}

func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

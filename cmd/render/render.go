/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render provides shared rendering functions for CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/tokencraft/naming"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
)

// Formats lists the supported row output formats.
var Formats = []string{"table", "json", "css", "names", "markdown"}

// Row holds computed display values for a single resolved token.
type Row struct {
	Path    string // Dot path (e.g., "color.brand.primary")
	Name    string // CSS variable name with prefix
	Type    string // Token type or "-"
	Value   string // Display value
	IsColor bool   // Whether this is a color token with parseable value
}

// Rows flattens a resolved tree into display rows sorted by path. Group
// $type values are inherited.
func Rows(tree map[string]any, prefix string) []Row {
	var rows []Row
	collect(tree, nil, "", prefix, &rows)
	return rows
}

func collect(node map[string]any, segments []string, inherited, prefix string, rows *[]Row) {
	if t, ok := node["$type"].(string); ok {
		inherited = t
	}
	for _, k := range slices.Sorted(maps.Keys(node)) {
		if strings.HasPrefix(k, "$") {
			continue
		}
		child, ok := node[k].(map[string]any)
		if !ok {
			continue
		}
		path := append(segments[:len(segments):len(segments)], k)
		if !tokenpath.IsTokenNode(child) {
			collect(child, path, inherited, prefix, rows)
			continue
		}

		typ := inherited
		if t, ok := child["$type"].(string); ok {
			typ = t
		}
		dot := tokenpath.Join(path...)
		row := Row{
			Path:  dot,
			Name:  "--" + naming.ToKebab(prefix, dot),
			Type:  typ,
			Value: token.Stringify(child["$value"]),
		}
		if row.Type == "" {
			row.Type = "-"
		}
		row.IsColor = row.Type == token.TypeColor && ColorSwatch(row.Value) != ""
		*rows = append(*rows, row)
	}
}

// Filter keeps rows matching typ and whose path starts with group.
// Empty filters match everything.
func Filter(rows []Row, typ, group string) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if typ != "" && r.Type != typ {
			continue
		}
		if group != "" && r.Path != group && !strings.HasPrefix(r.Path, group+tokenpath.Separator) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Write renders rows in the named format.
func Write(w io.Writer, format string, rows []Row) error {
	switch format {
	case "", "table":
		return Table(w, rows)
	case "json":
		return JSON(w, rows)
	case "css":
		return CSS(w, rows)
	case "names":
		return Names(w, rows)
	case "markdown":
		return Markdown(w, rows)
	default:
		return fmt.Errorf("unsupported format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}

// ColumnWidths calculates the max width needed for each column.
func ColumnWidths(rows []Row) (name, typ, val int) {
	name, typ, val = 4, 4, 5 // minimums for headers
	for _, r := range rows {
		name = max(name, len(r.Name))
		typ = max(typ, len(r.Type))
		val = max(val, len(r.Value))
	}
	return
}

// ColorSwatch returns a 24-bit ANSI color block for the given color value.
func ColorSwatch(value string) string {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return ""
	}
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}

// Table renders rows as an aligned table.
func Table(w io.Writer, rows []Row) error {
	nameW, typeW, _ := ColumnWidths(rows)
	for _, r := range rows {
		swatch := ""
		if r.IsColor {
			swatch = ColorSwatch(r.Value)
		}
		if _, err := fmt.Fprintf(w, "%-*s  %-*s  %s%s\n", nameW, r.Name, typeW, r.Type, swatch, r.Value); err != nil {
			return err
		}
	}
	return nil
}

// JSON renders rows as an indented JSON array.
func JSON(w io.Writer, rows []Row) error {
	type rowOutput struct {
		Path  string `json:"path"`
		Name  string `json:"name"`
		Value string `json:"value"`
		Type  string `json:"type,omitempty"`
	}

	output := make([]rowOutput, 0, len(rows))
	for _, r := range rows {
		typ := r.Type
		if typ == "-" {
			typ = ""
		}
		output = append(output, rowOutput{Path: r.Path, Name: r.Name, Value: r.Value, Type: typ})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(output)
}

// CSS renders rows as CSS custom properties. Composite values that did
// not flatten to a string are skipped.
func CSS(w io.Writer, rows []Row) error {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	for _, r := range rows {
		if strings.HasPrefix(r.Value, "{") && strings.Contains(r.Value, ":") {
			continue
		}
		fmt.Fprintf(&sb, "  %s: %s;\n", r.Name, r.Value)
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// Names renders just the token names, one per line.
func Names(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.Name); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders rows as markdown tables grouped by type, in order of
// first occurrence.
func Markdown(w io.Writer, rows []Row) error {
	var typeOrder []string
	byType := make(map[string][]Row)
	for _, r := range rows {
		if _, exists := byType[r.Type]; !exists {
			typeOrder = append(typeOrder, r.Type)
		}
		byType[r.Type] = append(byType[r.Type], r)
	}

	var sb strings.Builder
	for i, typ := range typeOrder {
		group := byType[typ]
		if i > 0 {
			sb.WriteString("\n")
		}

		heading := typ
		if heading == "-" {
			heading = "untyped"
		}
		fmt.Fprintf(&sb, "## %s\n\n", toTitleCase(heading))

		nameW, valW := 4, 5
		for _, r := range group {
			nameW = max(nameW, len(r.Name))
			valW = max(valW, len(r.Value))
		}

		fmt.Fprintf(&sb, "| %-*s | %-*s |\n", nameW, "Name", valW, "Value")
		fmt.Fprintf(&sb, "|-%s-|-%s-|\n", strings.Repeat("-", nameW), strings.Repeat("-", valW))
		for _, r := range group {
			fmt.Fprintf(&sb, "| %-*s | %-*s |\n", nameW, r.Name, valW, strings.ReplaceAll(r.Value, "|", `\|`))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// toTitleCase converts a string to Title Case.
func toTitleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

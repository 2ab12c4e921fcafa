/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"bennypowers.dev/tokencraft/config"
	"bennypowers.dev/tokencraft/naming"
	"bennypowers.dev/tokencraft/token"
)

// Formatter serializes an Output.
type Formatter func(o *Output) ([]byte, error)

var formatters = map[string]Formatter{
	config.OutputCSSVarMap:  formatJSON,
	config.OutputRefMap:     formatJSON,
	config.OutputCSSDecl:    formatCSSDecl,
	config.OutputJSLiterals: formatJSLiterals,
	config.OutputSCSS:       formatSCSS,
	config.OutputAndroid:    formatAndroid,
}

// Format serializes the output. The empty format is css-var-map.
// Keys are always emitted in sorted order.
func (o *Output) Format(format string) ([]byte, error) {
	if format == "" {
		format = config.OutputCSSVarMap
	}
	f, ok := formatters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return f(o)
}

func formatJSON(o *Output) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o.Values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatCSSDecl(o *Output) ([]byte, error) {
	selector := o.Selector
	if selector == "" {
		selector = ":host"
	}

	var sb strings.Builder
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, k := range o.Keys() {
		name := k
		if !strings.HasPrefix(name, "--") {
			name = "--" + naming.ToKebab(name)
		}
		fmt.Fprintf(&sb, "  %s: %s;\n", name, o.Values[k])
	}
	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func formatJSLiterals(o *Output) ([]byte, error) {
	var sb strings.Builder
	for _, k := range o.Keys() {
		lit, err := jsString(o.Values[k])
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "export const %s = %s as const;\n", naming.ToCamel(k), lit)
	}
	return []byte(sb.String()), nil
}

func formatSCSS(o *Output) ([]byte, error) {
	var sb strings.Builder
	for _, k := range o.Keys() {
		fmt.Fprintf(&sb, "$%s: %s;\n", naming.ToKebab(k), o.Values[k])
	}
	return []byte(sb.String()), nil
}

func formatAndroid(o *Output) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	sb.WriteString("\n<resources>\n")
	for _, k := range o.Keys() {
		elem := xmlType(o.Types[k])
		fmt.Fprintf(&sb, "    <%s name=\"%s\">%s</%s>\n",
			elem, escapeXML(naming.ToSnake(k)), escapeXML(o.Values[k]), elem)
	}
	sb.WriteString("</resources>\n")
	return []byte(sb.String()), nil
}

func xmlType(tokenType string) string {
	switch tokenType {
	case token.TypeColor:
		return "color"
	case token.TypeDimension:
		return "dimen"
	case token.TypeNumber:
		return "integer"
	default:
		return "string"
	}
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// escapeXML escapes special XML characters.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for tokencraft.
package resolve

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tokencraft/cmd/workspace"
	"bennypowers.dev/tokencraft/resolver"
	"bennypowers.dev/tokencraft/token"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve <path|expression>...",
	Short: "Resolve token paths or interpolated expressions",
	Long: `Resolve token paths ("color.brand.primary") or expressions containing
references and fallback chains ("1px solid {color.border} || {color.fg}").

Examples:
  tokencraft resolve color.bg --theme dark
  tokencraft resolve '{color.accent}||{color.brand}' --literal
  tokencraft resolve space.md -f tokens/base.json -f tokens/theme.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringArrayP("file", "f", nil, "Token file (repeatable; defaults to config files)")
	Cmd.Flags().Bool("literal", false, "Resolve to values instead of var() references")
	Cmd.Flags().String("format", "text", "Output format: text, json")
}

// Result is one resolved input.
type Result struct {
	Input string `json:"input"`
	Value string `json:"value"`
}

func run(cmd *cobra.Command, args []string) error {
	files, _ := cmd.Flags().GetStringArray("file")
	literal, _ := cmd.Flags().GetBool("literal")
	format, _ := cmd.Flags().GetString("format")

	cfg, err := workspace.Config()
	if err != nil {
		return err
	}
	if literal {
		refs := false
		cfg.ResolveToReferences = &refs
	}

	r, err := workspace.Resolver(cmd.Context(), cfg, files)
	if err != nil {
		return err
	}

	results, err := Resolve(r, args)
	if err != nil {
		return err
	}
	workspace.Report(r.Diagnostics())

	if err := write(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}
	if workspace.Failed(r.Diagnostics(), cfg.Strict) {
		return fmt.Errorf("resolution reported %d diagnostics", len(r.Diagnostics()))
	}
	return nil
}

// Resolve resolves each input in one context. Inputs with references or
// fallback delimiters are interpolated; anything else is a dot path.
func Resolve(r *resolver.Resolver, inputs []string) ([]Result, error) {
	ctx := r.NewContext()
	delim := r.Options().FallbackDelimiter
	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		var value string
		if r.Pattern().Contains(in) || (delim != "" && strings.Contains(in, delim)) {
			v, err := r.ResolveInterpolated(ctx, in, in)
			if err != nil {
				return nil, err
			}
			value = v
		} else {
			v, err := r.ResolvePath(ctx, in)
			if err != nil {
				return nil, err
			}
			value = token.Stringify(v)
		}
		results = append(results, Result{Input: in, Value: value})
	}
	return results, nil
}

func write(w io.Writer, format string, results []Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	case "", "text":
		for _, res := range results {
			if len(results) == 1 {
				if _, err := fmt.Fprintln(w, res.Value); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s: %s\n", res.Input, res.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected text or json)", format)
	}
}

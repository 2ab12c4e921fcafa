/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package document provides the document command for tokencraft.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/tokencraft/cmd/workspace"
)

// Cmd is the document cobra command.
var Cmd = &cobra.Command{
	Use:   "document [resolver.json]",
	Short: "Resolve a resolution document",
	Long: `Resolve a resolution document: merge its sets in order, apply modifier
contexts, and flatten aliases. The document defaults to the "document" entry
of .config/design-tokens.yaml.

Modifier contexts come from --modifier name=context; --theme, --platform and
--brand select contexts of modifiers with those names.

Examples:
  tokencraft document resolver.json --modifier theme=dark
  tokencraft document --theme dark --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("format", "json", "Output format: json, yaml")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := workspace.Config()
	if err != nil {
		return err
	}
	path, err := workspace.DocumentPath(cfg, args)
	if err != nil {
		return err
	}

	r, err := workspace.DocumentResolver(cmd.Context(), cfg, path)
	if err != nil {
		return err
	}

	res, err := r.Resolve(cmd.Context(), r.Inputs(cfg.Selection()))
	if err != nil {
		return err
	}
	workspace.Report(res.Diagnostics)

	if err := Write(cmd.OutOrStdout(), format, res.Tokens); err != nil {
		return err
	}
	if workspace.Failed(res.Diagnostics, cfg.Strict) {
		return fmt.Errorf("resolution reported %d diagnostics", len(res.Diagnostics))
	}
	return nil
}

// Write serializes a resolved token tree as JSON or YAML.
func Write(w io.Writer, format string, tokens map[string]any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(tokens)
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(tokens); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unsupported format %q (expected json or yaml)", format)
	}
}

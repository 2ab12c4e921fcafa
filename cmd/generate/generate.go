/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package generate provides the generate command for tokencraft.
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tokencraft/cmd/workspace"
	"bennypowers.dev/tokencraft/config"
	"bennypowers.dev/tokencraft/fs"
	"bennypowers.dev/tokencraft/generator"
	"bennypowers.dev/tokencraft/parser"
)

// Cmd is the generate cobra command.
var Cmd = &cobra.Command{
	Use:   "generate <declaration>...",
	Short: "Generate component variables from token declarations",
	Long: `Generate CSS custom properties (or camel/pascal identifiers) for components.

Each declaration file is a JSON or YAML object mapping variable paths to
values, references ("{color.bg}") or fallback chains. The component name
defaults to the file name without its extension.

Output Formats:
  css-var-map  JSON map of variable to value (default)
  css-decl     CSS declaration block wrapped in --selector
  js-literals  TypeScript 'as const' exports
  ref-map      JSON map of variable to the declared reference
  scss         SCSS variables
  android      Android XML resources

Examples:
  tokencraft generate components/button.yaml
  tokencraft generate --format css-decl --selector ':host' -o button.css button.json
  tokencraft generate --vars-only --name-case camel button.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().String("format", "", "Output format: "+strings.Join(config.Outputs, ", "))
	Cmd.Flags().String("component", "", "Component name (single declaration only)")
	Cmd.Flags().String("selector", "", "Selector for css-decl output")
	Cmd.Flags().String("name-case", "", "Key case: kebab, camel, pascal")
	Cmd.Flags().Bool("vars-only", false, "Emit variable names with empty values")
	Cmd.Flags().StringArrayP("file", "f", nil, "Token file (repeatable; defaults to config files)")
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	component, _ := cmd.Flags().GetString("component")
	selector, _ := cmd.Flags().GetString("selector")
	nameCase, _ := cmd.Flags().GetString("name-case")
	varsOnly, _ := cmd.Flags().GetBool("vars-only")
	files, _ := cmd.Flags().GetStringArray("file")

	if component != "" && len(args) > 1 {
		return fmt.Errorf("--component only applies to a single declaration")
	}

	cfg, err := workspace.Config()
	if err != nil {
		return err
	}
	if format != "" {
		cfg.Output = format
	}
	if selector != "" {
		cfg.Selector = selector
	}
	if nameCase != "" {
		cfg.NameCase = nameCase
	}
	if varsOnly {
		cfg.EmitVarsOnly = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r, err := workspace.Resolver(cmd.Context(), cfg, files)
	if err != nil {
		return err
	}
	g := generator.NewWithResolver(r, cfg)

	filesystem := fs.NewOSFileSystem()
	var out []byte
	failed := false
	for _, path := range args {
		decl, err := parser.DecodeFile(filesystem, path)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", path, err)
		}

		name := component
		if name == "" {
			name = ComponentName(path)
		}

		result, err := g.Generate(name, decl)
		if err != nil {
			return fmt.Errorf("error generating %s: %w", path, err)
		}
		workspace.Report(result.Diagnostics)
		failed = failed || workspace.Failed(result.Diagnostics, cfg.Strict)

		data, err := result.Format(cfg.Output)
		if err != nil {
			return err
		}
		out = append(out, data...)
	}

	if output == "" {
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
	} else {
		if dir := filepath.Dir(output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("error creating %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return fmt.Errorf("error writing %s: %w", output, err)
		}
	}

	if failed {
		return fmt.Errorf("generation reported blocking diagnostics")
	}
	return nil
}

// ComponentName derives a component name from a declaration path:
// "components/my-button.tokens.yaml" -> "my-button".
func ComponentName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

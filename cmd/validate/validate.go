/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for tokencraft.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tokencraft/cmd/workspace"
	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/resolver"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
	"bennypowers.dev/tokencraft/validator"
)

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate design token files",
	Long: `Validate design token files: unknown types, invalid colors, legacy group
markers, reference cycles, dangling references, and
every diagnostic produced while resolving the selected theme. When the config
names a resolution document it is resolved and checked too.

With --strict, warnings fail validation as well.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only output errors")
	Cmd.Flags().Bool("no-document", false, "Skip the resolution document")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	noDocument, _ := cmd.Flags().GetBool("no-document")
	out := cmd.OutOrStdout()

	cfg, err := workspace.Config()
	if err != nil {
		return err
	}

	r, err := workspace.Resolver(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(out, "Validating %d tokens...\n", len(tokenpath.Leaves(r.Tree())))
	}

	ds, err := Check(cmd.Context(), r, cfg.Selection())
	if err != nil {
		return err
	}

	if !noDocument && cfg.Document != "" {
		path, err := workspace.DocumentPath(cfg, nil)
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(out, "Resolving %s...\n", path)
		}
		dr, err := workspace.DocumentResolver(cmd.Context(), cfg, path)
		if err != nil {
			return err
		}
		res, err := dr.ResolveTree(cmd.Context(), cfg.Selection())
		if err != nil {
			return err
		}
		ds = append(ds, res.Diagnostics...)
	}

	workspace.Report(ds)
	if workspace.Failed(ds, cfg.Strict) {
		return fmt.Errorf("validation failed with %d diagnostics", len(ds))
	}

	if !quiet {
		fmt.Fprintln(out, "All tokens valid.")
	}
	return nil
}

// Check reports structural warnings, the first reference cycle and every
// dangling reference in the resolver's tree, then the diagnostics of resolving it for sel.
// Findings already reported for the same path and code are dropped.
func Check(ctx context.Context, r *resolver.Resolver, sel token.Selection) ([]diagnostic.Diagnostic, error) {
	graph := resolver.BuildDependencyGraph(r.Tree(), r.Pattern())

	ds := validator.Consistency(r.Tree(), r.Pattern())
	if cycle := graph.FindCycle(); cycle != nil {
		ds = append(ds, diagnostic.New(diagnostic.Circular, cycle[0],
			"circular reference: "+strings.Join(cycle, " -> ")))
	}

	ns := r.Options().ReferenceNamespace
	for _, path := range graph.Dangling() {
		if ns != "" {
			if _, ok := token.Lookup(r.Tree(), strings.TrimPrefix(path, ns+tokenpath.Separator)); ok {
				continue
			}
		}
		ds = append(ds, diagnostic.New(diagnostic.Missing, path, "referenced token does not exist").
			WithHint("referenced by "+strings.Join(graph.Dependents(path), ", ")))
	}

	res, err := r.ResolveTree(ctx, sel)
	if err != nil {
		return nil, err
	}

	type key struct {
		code diagnostic.Code
		path string
	}
	seen := make(map[key]bool, len(ds))
	for _, d := range ds {
		seen[key{d.Code, d.Path}] = true
	}
	for _, d := range res.Diagnostics {
		k := key{d.Code, d.Path}
		if seen[k] {
			continue
		}
		seen[k] = true
		ds = append(ds, d)
	}
	return ds, nil
}

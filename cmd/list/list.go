/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for tokencraft.
package list

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tokencraft/cmd/render"
	"bennypowers.dev/tokencraft/cmd/workspace"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list [files...]",
	Short: "List resolved tokens",
	Long: `List every token resolved for the selected theme, platform and brand.

Token files default to the "files" entry of .config/design-tokens.yaml.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("type", "", "Filter by token type")
	Cmd.Flags().String("group", "", "Filter by group path (e.g. color.brand)")
	Cmd.Flags().Bool("references", false, "Show var() references instead of values")
	Cmd.Flags().String("format", "table", "Output format: "+strings.Join(render.Formats, ", "))
}

func run(cmd *cobra.Command, args []string) error {
	typeFilter, _ := cmd.Flags().GetString("type")
	groupFilter, _ := cmd.Flags().GetString("group")
	references, _ := cmd.Flags().GetBool("references")
	format, _ := cmd.Flags().GetString("format")

	cfg, err := workspace.Config()
	if err != nil {
		return err
	}
	cfg.ResolveToReferences = &references

	r, err := workspace.Resolver(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	res, err := r.ResolveTree(cmd.Context(), cfg.Selection())
	if err != nil {
		return err
	}
	workspace.Report(res.Diagnostics)

	rows := render.Filter(render.Rows(res.Tokens, cfg.SystemTokenPrefix), typeFilter, groupFilter)
	if err := render.Write(cmd.OutOrStdout(), format, rows); err != nil {
		return err
	}

	if workspace.Failed(res.Diagnostics, cfg.Strict) {
		return fmt.Errorf("resolution reported %d diagnostics", len(res.Diagnostics))
	}
	return nil
}

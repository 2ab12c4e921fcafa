/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package search provides the search command for tokencraft.
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tokencraft/cmd/render"
	"bennypowers.dev/tokencraft/cmd/workspace"
)

// Cmd is the search cobra command.
var Cmd = &cobra.Command{
	Use:   "search <query> [files...]",
	Short: "Search resolved tokens by path, value, or type",
	Long:  `Search resolved design tokens by path, CSS name, value, or type with optional regex support.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("name", false, "Search names only")
	Cmd.Flags().Bool("value", false, "Search values only")
	Cmd.Flags().String("type", "", "Filter by token type")
	Cmd.Flags().Bool("regex", false, "Query is a regex")
	Cmd.Flags().String("format", "table", "Output format: "+strings.Join(render.Formats, ", "))
}

// field selects what a query is matched against.
type field int

const (
	fieldAny field = iota
	fieldName
	fieldValue
)

func run(cmd *cobra.Command, args []string) error {
	query := args[0]
	files := args[1:]

	nameOnly, _ := cmd.Flags().GetBool("name")
	valueOnly, _ := cmd.Flags().GetBool("value")
	typeFilter, _ := cmd.Flags().GetString("type")
	useRegex, _ := cmd.Flags().GetBool("regex")
	format, _ := cmd.Flags().GetString("format")

	if nameOnly && valueOnly {
		return fmt.Errorf("--name and --value are mutually exclusive")
	}

	var pattern *regexp.Regexp
	if useRegex {
		var err error
		pattern, err = regexp.Compile(query)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
	}

	f := fieldAny
	switch {
	case nameOnly:
		f = fieldName
	case valueOnly:
		f = fieldValue
	}

	cfg, err := workspace.Config()
	if err != nil {
		return err
	}
	literal := false
	cfg.ResolveToReferences = &literal

	r, err := workspace.Resolver(cmd.Context(), cfg, files)
	if err != nil {
		return err
	}
	res, err := r.ResolveTree(cmd.Context(), cfg.Selection())
	if err != nil {
		return err
	}
	workspace.Report(res.Diagnostics)

	rows := render.Filter(render.Rows(res.Tokens, cfg.SystemTokenPrefix), typeFilter, "")
	return render.Write(cmd.OutOrStdout(), format, searchRows(rows, query, pattern, f))
}

func searchRows(rows []render.Row, query string, pattern *regexp.Regexp, f field) []render.Row {
	matches := make([]render.Row, 0)
	for _, r := range rows {
		var matched bool
		switch f {
		case fieldName:
			matched = matchString(r.Name, query, pattern) || matchString(r.Path, query, pattern)
		case fieldValue:
			matched = matchString(r.Value, query, pattern)
		default:
			matched = matchString(r.Name, query, pattern) ||
				matchString(r.Path, query, pattern) ||
				matchString(r.Value, query, pattern) ||
				matchString(r.Type, query, pattern)
		}
		if matched {
			matches = append(matches, r)
		}
	}
	return matches
}

func matchString(s, query string, pattern *regexp.Regexp) bool {
	if pattern != nil {
		return pattern.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

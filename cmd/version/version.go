/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command.
package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/tokencraft/internal/version"
)

// Cmd prints version and build information.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information for tokencraft, including the VCS revision
when the binary was built from a checkout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		return Write(cmd.OutOrStdout(), format, version.Info())
	},
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

// Write renders b as text or JSON.
func Write(w io.Writer, format string, b version.Build) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintf(w, "tokencraft %s\n", b)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	default:
		return fmt.Errorf("unsupported format %q (expected text or json)", format)
	}
}

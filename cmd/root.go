/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tokencraft.
package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tokencraft/cmd/document"
	"bennypowers.dev/tokencraft/cmd/generate"
	"bennypowers.dev/tokencraft/cmd/list"
	"bennypowers.dev/tokencraft/cmd/resolve"
	"bennypowers.dev/tokencraft/cmd/search"
	"bennypowers.dev/tokencraft/cmd/serve"
	"bennypowers.dev/tokencraft/cmd/validate"
	"bennypowers.dev/tokencraft/cmd/version"
	"bennypowers.dev/tokencraft/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tokencraft",
	Short: "Resolve design tokens and generate component variables",
	Long: `tokencraft resolves DTCG design token references across themes, platforms
and brands, generates component-level CSS variables, and evaluates resolver
documents that layer token sets and modifiers.

Persistent flags can also be set with TOKENCRAFT_* environment variables,
e.g. TOKENCRAFT_THEME=dark or TOKENCRAFT_FETCH_TIMEOUT=10s.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("root", ".", "Project directory containing .config/design-tokens.*")
	flags.String("theme", "", "Theme variant to select (e.g. light, dark)")
	flags.String("platform", "", "Platform variant to select (e.g. web, ios)")
	flags.String("brand", "", "Brand variant to select")
	flags.StringToString("modifier", nil, "Resolver document modifier contexts (name=context)")
	flags.Bool("strict", false, "Treat diagnostics as failures")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.Bool("remote", false, "Allow fetching npm: and https: token files over the network")
	flags.String("cdn", "unpkg", "CDN for npm: specifiers that are not installed locally (unpkg, jsdelivr, esm.sh)")
	flags.Duration("fetch-timeout", 30*time.Second, "Timeout for remote fetches")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("tokencraft")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(search.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(generate.Cmd)
	rootCmd.AddCommand(document.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

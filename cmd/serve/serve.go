/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package serve provides the serve command, a Model Context Protocol
// server over stdio.
package serve

import (
	"context"
	"fmt"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"bennypowers.dev/tokencraft/cmd/resolve"
	"bennypowers.dev/tokencraft/cmd/workspace"
	"bennypowers.dev/tokencraft/config"
	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/generator"
	"bennypowers.dev/tokencraft/internal/logger"
	"bennypowers.dev/tokencraft/internal/version"
	"bennypowers.dev/tokencraft/resolver"
	"bennypowers.dev/tokencraft/token"
)

// Cmd is the serve cobra command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server over stdio",
	Long: `Run a Model Context Protocol server over stdio exposing the resolve_token,
generate_component and resolve_document tools. Logging is silenced so that
stdout carries only protocol messages.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(io.Discard)

	cfg, err := workspace.Config()
	if err != nil {
		return err
	}
	r, err := workspace.Resolver(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}

	return NewServer(cfg, r).Run(cmd.Context(), &mcp.StdioTransport{})
}

// tools holds the state the tool handlers share.
type tools struct {
	cfg      *config.Config
	resolver *resolver.Resolver
}

// NewServer creates an MCP server resolving against r.
func NewServer(cfg *config.Config, r *resolver.Resolver) *mcp.Server {
	t := &tools{cfg: cfg, resolver: r}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tokencraft",
		Version: version.Get(),
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_token",
		Description: "Resolve token paths or interpolated expressions for a theme, platform and brand",
	}, t.resolveToken)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_component",
		Description: "Generate component variables from a declaration object",
	}, t.generateComponent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_document",
		Description: "Resolve the configured resolution document for a set of modifier contexts",
	}, t.resolveDocument)

	return server
}

// selection falls back to the configured theme, platform and brand.
func (t *tools) selection(theme, platform, brand string) token.Selection {
	sel := t.cfg.Selection()
	if theme != "" {
		sel.Theme = theme
	}
	if platform != "" {
		sel.Platform = platform
	}
	if brand != "" {
		sel.Brand = brand
	}
	return sel
}

// Finding is a diagnostic as reported to MCP clients.
type Finding struct {
	Code     string `json:"code"`
	Severity string `json:"severity" jsonschema:"error or warning"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
}

func findings(ds []diagnostic.Diagnostic) []Finding {
	if len(ds) == 0 {
		return nil
	}
	out := make([]Finding, len(ds))
	for i, d := range ds {
		out[i] = Finding{
			Code:     string(d.Code),
			Severity: d.Severity.String(),
			Path:     d.Path,
			Message:  d.Message,
			Hint:     d.Hint,
		}
	}
	return out
}

// ResolveTokenInput is the resolve_token input.
type ResolveTokenInput struct {
	Theme    string   `json:"theme,omitempty" jsonschema:"theme variant to select"`
	Platform string   `json:"platform,omitempty" jsonschema:"platform variant to select"`
	Brand    string   `json:"brand,omitempty" jsonschema:"brand variant to select"`
	Inputs   []string `json:"inputs" jsonschema:"token paths or expressions with {references} and || fallbacks"`
	Literal  bool     `json:"literal,omitempty" jsonschema:"resolve to values instead of var() references"`
}

// ResolveTokenOutput is the resolve_token output.
type ResolveTokenOutput struct {
	Results     []resolve.Result `json:"results"`
	Diagnostics []Finding        `json:"diagnostics,omitempty"`
}

func (t *tools) resolveToken(ctx context.Context, _ *mcp.CallToolRequest, in ResolveTokenInput) (*mcp.CallToolResult, ResolveTokenOutput, error) {
	if len(in.Inputs) == 0 {
		return nil, ResolveTokenOutput{}, fmt.Errorf("inputs must not be empty")
	}

	r := t.resolver.WithSelection(t.selection(in.Theme, in.Platform, in.Brand))
	if in.Literal {
		opts := r.Options()
		opts.ResolveToReferences = false
		lit, err := resolver.New(r.Tree(), opts)
		if err != nil {
			return nil, ResolveTokenOutput{}, err
		}
		r = lit
	}

	results, err := resolve.Resolve(r, in.Inputs)
	if err != nil {
		return nil, ResolveTokenOutput{}, err
	}
	return nil, ResolveTokenOutput{Results: results, Diagnostics: findings(r.Diagnostics())}, nil
}

// GenerateInput is the generate_component input.
type GenerateInput struct {
	Theme       string         `json:"theme,omitempty" jsonschema:"theme variant to select"`
	Platform    string         `json:"platform,omitempty" jsonschema:"platform variant to select"`
	Brand       string         `json:"brand,omitempty" jsonschema:"brand variant to select"`
	Component   string         `json:"component" jsonschema:"component name used in variable names"`
	Declaration map[string]any `json:"declaration" jsonschema:"nested object of variable paths to values, references or fallback chains"`
	Format      string         `json:"format,omitempty" jsonschema:"css-var-map, css-decl, js-literals, ref-map, scss or android"`
}

// GenerateOutput is the generate_component output.
type GenerateOutput struct {
	Output      string    `json:"output"`
	Diagnostics []Finding `json:"diagnostics,omitempty"`
}

func (t *tools) generateComponent(ctx context.Context, _ *mcp.CallToolRequest, in GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
	format := in.Format
	if format == "" {
		format = t.cfg.Output
	}

	cfg := *t.cfg
	cfg.Output = format
	if err := cfg.Validate(); err != nil {
		return nil, GenerateOutput{}, err
	}

	g := generator.NewWithResolver(t.resolver.WithSelection(t.selection(in.Theme, in.Platform, in.Brand)), &cfg)
	out, err := g.Generate(in.Component, in.Declaration)
	if err != nil {
		return nil, GenerateOutput{}, err
	}
	data, err := out.Format(format)
	if err != nil {
		return nil, GenerateOutput{}, err
	}
	return nil, GenerateOutput{Output: string(data), Diagnostics: findings(out.Diagnostics)}, nil
}

// ResolveDocumentInput is the resolve_document input.
type ResolveDocumentInput struct {
	Path      string            `json:"path,omitempty" jsonschema:"resolution document; defaults to the configured document"`
	Modifiers map[string]string `json:"modifiers,omitempty" jsonschema:"modifier name to context name"`
}

// ResolveDocumentOutput is the resolve_document output.
type ResolveDocumentOutput struct {
	Tokens      map[string]any `json:"tokens"`
	Diagnostics []Finding      `json:"diagnostics,omitempty"`
}

func (t *tools) resolveDocument(ctx context.Context, _ *mcp.CallToolRequest, in ResolveDocumentInput) (*mcp.CallToolResult, ResolveDocumentOutput, error) {
	var args []string
	if in.Path != "" {
		args = []string{in.Path}
	}
	path, err := workspace.DocumentPath(t.cfg, args)
	if err != nil {
		return nil, ResolveDocumentOutput{}, err
	}

	r, err := workspace.DocumentResolver(ctx, t.cfg, path)
	if err != nil {
		return nil, ResolveDocumentOutput{}, err
	}
	res, err := r.Resolve(ctx, in.Modifiers)
	if err != nil {
		return nil, ResolveDocumentOutput{}, err
	}
	return nil, ResolveDocumentOutput{Tokens: res.Tokens, Diagnostics: findings(res.Diagnostics)}, nil
}

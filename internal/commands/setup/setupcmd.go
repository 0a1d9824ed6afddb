// Package setup implements the "setup" command: the full provisioning flow
// from environment probe to persisted Claude Desktop configuration.
package setup

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sparkst/claude-mcp-quickstart/internal/catalog"
	"github.com/sparkst/claude-mcp-quickstart/internal/config"
)

// Run returns the "setup" command.
func Run(cfg *config.Config, opts *Options) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Install MCP servers and write the Claude Desktop configuration",
		UsageText: `mcp-quickstart setup [options]

Probes for Node.js, detects API keys from the environment, git config and
well-known dotfiles, installs the MCP server catalog with npm, writes the
Claude Desktop configuration (backing up any existing one), and creates the
onboarding workspace.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "profile",
				Usage:       "Install profile: full or minimal",
				Value:       cfg.Profile,
				DefaultText: "full",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d, err := newDeps(cfg, opts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			if err := runFlow(ctx, d, cfg, opts, catalog.Profile(cmd.String("profile"))); err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			if n := d.journal.ErrorCount(); n > 0 {
				return cli.Exit(fmt.Sprintf("setup completed with %d errors", n), 1)
			}
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/sparkst/claude-mcp-quickstart/internal/commands/detect"
	"github.com/sparkst/claude-mcp-quickstart/internal/commands/doctor"
	"github.com/sparkst/claude-mcp-quickstart/internal/commands/setup"
	"github.com/sparkst/claude-mcp-quickstart/internal/config"
	"github.com/sparkst/claude-mcp-quickstart/internal/printer"
	"github.com/sparkst/claude-mcp-quickstart/internal/version"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the mcp-quickstart cli.
func New(cfg *config.Config) *urfavecli.Command {
	opts := &setup.Options{}
	return &urfavecli.Command{
		Name:                  "mcp-quickstart",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Set up MCP servers for Claude Desktop in one command",
		DefaultCommand:        "setup",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Show debug-level output",
				Destination: &opts.Verbose,
			},
			&urfavecli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "Answer yes to every prompt (overwrite without asking)",
				Destination: &opts.Yes,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			setup.Run(cfg, opts),
			doctor.Run(cfg),
			detect.Run(cfg),
		},
	}
}

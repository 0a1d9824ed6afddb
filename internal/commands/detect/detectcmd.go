// Package detect implements the "detect" command: it reports which API keys
// the credential chain can find, with masked values and their provenance.
package detect

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sparkst/claude-mcp-quickstart/internal/config"
	"github.com/sparkst/claude-mcp-quickstart/internal/credentials"
	"github.com/sparkst/claude-mcp-quickstart/internal/printer"
	"github.com/sparkst/claude-mcp-quickstart/internal/runner"
)

// Run returns the "detect" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "detect",
		Usage: "Show which API keys are detectable and where they come from",
		Action: func(ctx context.Context, _ *cli.Command) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			sources := credentials.DefaultSources(runner.NewExecRunner(), home, cfg.DisabledSources)
			resolver := credentials.NewResolver(sources...)
			printReport(resolver.Resolve(ctx, credentials.Keys()))
			return nil
		},
	}
}

func printReport(resolved map[credentials.Key]credentials.Resolved) {
	printer.PrintBold("Detected credentials")
	for _, key := range credentials.Keys() {
		r := resolved[key]
		if !r.Found() {
			printer.PrintWarning(fmt.Sprintf("%-16s not found", key))
			continue
		}
		printer.PrintSuccess(fmt.Sprintf("%-16s %s  (%s)", key, mask(r.Value), provenance(r)))
	}
}

// mask keeps the first four characters so a user can recognize which token
// was picked up without the full secret reaching the terminal.
func mask(value string) string {
	const visible = 4
	if len(value) <= visible {
		return strings.Repeat("*", len(value))
	}
	return value[:visible] + strings.Repeat("*", len(value)-visible)
}

func provenance(r credentials.Resolved) string {
	if r.Detail == "" {
		return string(r.Source)
	}
	return fmt.Sprintf("%s: %s", r.Source, r.Detail)
}

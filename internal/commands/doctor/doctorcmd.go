// Package doctor implements the "doctor" command: a read-only health report
// of the local toolchain and the current Claude Desktop configuration.
package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sparkst/claude-mcp-quickstart/internal/config"
	"github.com/sparkst/claude-mcp-quickstart/internal/descriptor"
	"github.com/sparkst/claude-mcp-quickstart/internal/paths"
	"github.com/sparkst/claude-mcp-quickstart/internal/printer"
	"github.com/sparkst/claude-mcp-quickstart/internal/probe"
	"github.com/sparkst/claude-mcp-quickstart/internal/runner"
)

// Run returns the "doctor" command.
func Run(_ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check the local toolchain and the current configuration",
		Action: func(ctx context.Context, _ *cli.Command) error {
			descriptorPath, err := paths.DescriptorPath()
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			if err := report(ctx, runner.NewExecRunner(), descriptorPath); err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			return nil
		},
	}
}

// report prints the toolchain checks and a summary of the configuration at
// descriptorPath. It returns an error only when Node.js is missing, since
// nothing installed here can run without it.
func report(ctx context.Context, r runner.Runner, descriptorPath string) error {
	printer.PrintBold("Toolchain")
	var nodeCheck probe.Check
	for _, tool := range []string{probe.ToolNode, probe.ToolGit, probe.ToolNPM} {
		check := probe.Probe(ctx, r, tool)
		if tool == probe.ToolNode {
			nodeCheck = check
		}
		printCheck(check)
	}

	fmt.Println()
	printer.PrintBold("Configuration")
	printDescriptorSummary(descriptorPath)

	if !nodeCheck.Present {
		return &probe.EnvironmentMissingError{Tool: probe.ToolNode}
	}
	return nil
}

func printCheck(c probe.Check) {
	if c.Present {
		printer.PrintSuccess(fmt.Sprintf("%-4s %s", c.Tool, c.Detail))
		return
	}
	detail := c.Detail
	if detail == "" {
		detail = "not found"
	}
	printer.PrintError(fmt.Sprintf("%-4s %s", c.Tool, detail))
}

func printDescriptorSummary(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			printer.PrintWarning(fmt.Sprintf("no configuration at %s (run \"mcp-quickstart setup\" to create one)", path))
			return
		}
		printer.PrintError(fmt.Sprintf("failed to read %s: %v", path, err))
		return
	}

	d, err := descriptor.Parse(data)
	if err != nil {
		printer.PrintError(fmt.Sprintf("invalid configuration at %s: %v", path, err))
		return
	}

	names := d.Names()
	if len(names) == 0 {
		printer.PrintWarning(fmt.Sprintf("%s defines no servers", path))
		return
	}
	printer.PrintSuccess(fmt.Sprintf("%d servers configured: %s", len(names), strings.Join(names, ", ")))
}

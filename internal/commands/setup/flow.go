package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh/spinner"

	"github.com/sparkst/claude-mcp-quickstart/internal/catalog"
	"github.com/sparkst/claude-mcp-quickstart/internal/config"
	"github.com/sparkst/claude-mcp-quickstart/internal/configfile"
	"github.com/sparkst/claude-mcp-quickstart/internal/credentials"
	"github.com/sparkst/claude-mcp-quickstart/internal/descriptor"
	"github.com/sparkst/claude-mcp-quickstart/internal/installer"
	"github.com/sparkst/claude-mcp-quickstart/internal/paths"
	"github.com/sparkst/claude-mcp-quickstart/internal/printer"
	"github.com/sparkst/claude-mcp-quickstart/internal/probe"
	"github.com/sparkst/claude-mcp-quickstart/internal/projects"
	"github.com/sparkst/claude-mcp-quickstart/internal/runner"
	"github.com/sparkst/claude-mcp-quickstart/internal/tui"
	"github.com/sparkst/claude-mcp-quickstart/internal/workspace"
)

// Options carries the root command's global flags into the setup flow.
type Options struct {
	Verbose bool
	Yes     bool
}

// deps bundles the flow's collaborators so tests can substitute fakes.
type deps struct {
	runner         runner.Runner
	journal        *printer.Journal
	prompter       tui.Prompter
	interactive    bool
	home           string
	serversDir     string
	workspacePath  string
	descriptorPath string
	discover       func() []string
	persist        func(*descriptor.ConfigDescriptor, string) (*configfile.BackupRecord, error)
}

func newDeps(cfg *config.Config, opts *Options) (*deps, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	serversDir := cfg.ServersDir
	if serversDir == "" {
		if serversDir, err = paths.ServersDir(); err != nil {
			return nil, err
		}
	}
	workspacePath := cfg.Workspace
	if workspacePath == "" {
		if workspacePath, err = paths.WorkspaceDir(); err != nil {
			return nil, err
		}
	}
	descriptorPath, err := paths.DescriptorPath()
	if err != nil {
		return nil, err
	}

	manager := configfile.NewManager()
	return &deps{
		runner:         runner.NewExecRunner(),
		journal:        printer.NewJournal(opts.Verbose),
		prompter:       tui.NewPrompter(),
		interactive:    tui.IsInteractive(),
		home:           home,
		serversDir:     serversDir,
		workspacePath:  workspacePath,
		descriptorPath: descriptorPath,
		discover:       func() []string { return projects.Discover(home) },
		persist:        manager.Persist,
	}, nil
}

// runFlow executes the full provisioning sequence: environment gate, project
// and credential discovery, module installation, descriptor synthesis and
// persistence, then workspace materialization. Individual module failures are
// recorded and the run continues; only a missing runtime or a persistence
// failure aborts with an error.
func runFlow(ctx context.Context, d *deps, cfg *config.Config, opts *Options, profile catalog.Profile) error {
	printBanner()

	check, err := probe.RequireNode(ctx, d.runner)
	if err != nil {
		var envErr *probe.EnvironmentMissingError
		if errors.As(err, &envErr) {
			d.journal.Error("%s", envErr.Suggestion())
		}
		return err
	}
	d.journal.Success("Node.js found (%s)", check.Detail)

	projectPaths := d.discover()
	if len(projectPaths) > 0 {
		d.journal.Success("Found %d existing projects", len(projectPaths))
	}

	resolver := credentials.NewResolver(credentials.DefaultSources(d.runner, d.home, cfg.DisabledSources)...)
	resolved := d.resolveCredentials(ctx, resolver, opts)
	found := 0
	for _, res := range resolved {
		if res.Found() {
			found++
		}
	}
	if found > 0 {
		d.journal.Success("Found %d API keys", found)
	} else {
		d.journal.Warn("No API keys found; placeholders will be written for hand-editing")
	}

	if proceed, err := d.confirmOverwrite(opts); err != nil {
		return err
	} else if !proceed {
		d.journal.Info("Setup aborted; existing configuration left untouched")
		return nil
	}

	modules, err := catalog.ForProfile(profile)
	if err != nil {
		return err
	}

	d.journal.Info("Installing MCP servers...")
	results, err := installer.New(d.runner, d.serversDir, d.journal).Install(ctx, modules)
	if err != nil {
		d.journal.Error("installation could not start: %v", err)
	}
	installed := installer.InstalledNames(results)

	if len(installed) == 0 {
		d.journal.Error("no servers installed successfully")
	} else {
		d.journal.Info("Generating Claude configuration...")
		desc := descriptor.Synthesize(descriptor.Inputs{
			Installed:   installed,
			Credentials: resolved,
			ServersDir:  d.serversDir,
			Workspace:   d.workspacePath,
			Projects:    projectPaths,
		})

		record, err := d.persist(desc, d.descriptorPath)
		if record != nil {
			d.journal.Info("Backed up existing config to %s", filepath.Base(record.BackupPath))
		}
		if err != nil {
			d.journal.Error("failed to write configuration: %v", err)
			return err
		}
		d.journal.Success("Configuration written to %s", d.descriptorPath)
	}

	if err := workspace.Materialize(d.workspacePath); err != nil {
		d.journal.Warn("failed to create workspace: %v", err)
	} else {
		d.journal.Success("Workspace ready at %s", d.workspacePath)
	}

	printReport(d, len(installed), len(projectPaths), found)
	return nil
}

func (d *deps) resolveCredentials(ctx context.Context, resolver *credentials.Resolver, opts *Options) map[credentials.Key]credentials.Resolved {
	var resolved map[credentials.Key]credentials.Resolved
	resolve := func() {
		resolved = resolver.Resolve(ctx, credentials.Keys())
	}

	if d.interactive && !opts.Verbose {
		if err := spinner.New().Title("Detecting API keys...").Action(resolve).Run(); err == nil {
			return resolved
		}
	}
	d.journal.Info("Detecting API keys...")
	resolve()
	return resolved
}

// confirmOverwrite asks before replacing an existing descriptor. Auto-confirm
// mode and non-interactive contexts skip the prompt; the backup taken during
// persistence is the safety net either way.
func (d *deps) confirmOverwrite(opts *Options) (bool, error) {
	if opts.Yes || !d.interactive {
		return true, nil
	}
	if _, err := os.Stat(d.descriptorPath); err != nil {
		return true, nil
	}
	return d.prompter.Confirm(
		"Overwrite existing Claude configuration?",
		"The current file will be backed up next to it first.",
	)
}

func printBanner() {
	fmt.Println()
	printer.PrintBold("MCP Quickstart Installer")
	printer.PrintFaint(strings.Repeat("=", 40))
}

func printReport(d *deps, installed, projectCount, keysFound int) {
	fmt.Println()
	printer.PrintFaint(strings.Repeat("=", 40))
	if d.journal.ErrorCount() == 0 {
		printer.PrintSuccess("Setup Complete!")
	} else {
		printer.PrintWarning(fmt.Sprintf("Completed with %d errors", d.journal.ErrorCount()))
	}
	d.journal.Summary()

	fmt.Println()
	printer.PrintInfo(fmt.Sprintf("Installed: %d servers", installed))
	printer.PrintInfo(fmt.Sprintf("Projects:  %d workspaces", projectCount))
	printer.PrintInfo(fmt.Sprintf("API keys:  %d detected", keysFound))
	printer.PrintInfo(fmt.Sprintf("Config:    %s", d.descriptorPath))
	printer.PrintInfo(fmt.Sprintf("Workspace: %s", d.workspacePath))

	fmt.Println()
	printer.PrintBold("Next steps:")
	fmt.Println("  1. Restart Claude Desktop")
	fmt.Println("  2. Test with: \"Show me my MCP capabilities\"")
	fmt.Println("  3. See the test guide in your workspace (test-mcp.md)")
}

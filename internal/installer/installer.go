// Package installer installs the MCP server catalog into a dedicated npm
// project directory, one module at a time, tracking per-module outcomes.
// A failed module never aborts the rest of the catalog; severity of the
// failure is decided by the module's Required flag.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/sparkst/claude-mcp-quickstart/internal/catalog"
	"github.com/sparkst/claude-mcp-quickstart/internal/core"
	"github.com/sparkst/claude-mcp-quickstart/internal/printer"
	"github.com/sparkst/claude-mcp-quickstart/internal/runner"
)

// InstallResult records the outcome of one module installation attempt.
// Produced once per attempted module and never mutated afterwards.
type InstallResult struct {
	Module    catalog.ModuleSpec
	Succeeded bool

	// Diagnostic carries the captured stderr of a failed install. It is
	// surfaced as text only, never parsed.
	Diagnostic string
}

// Installer installs modules into a fixed working directory. The directory is
// passed explicitly to every subprocess; the process-wide working directory
// is never changed.
type Installer struct {
	runner  runner.Runner
	dir     string
	journal *printer.Journal
}

// New creates an Installer that installs into dir.
func New(r runner.Runner, dir string, journal *printer.Journal) *Installer {
	return &Installer{runner: r, dir: dir, journal: journal}
}

// Install installs the given modules strictly in order, one subprocess per
// module. It returns exactly one InstallResult per input module, in input
// order, regardless of individual failures. The returned error covers only
// directory/manifest preparation; module failures are recorded in the
// results and the journal.
func (i *Installer) Install(ctx context.Context, modules []catalog.ModuleSpec) ([]InstallResult, error) {
	if err := i.prepare(ctx); err != nil {
		return nil, err
	}

	results := make([]InstallResult, 0, len(modules))
	for idx, mod := range modules {
		i.journal.Info("Installing %s [%d/%d]...", mod.Name, idx+1, len(modules))
		results = append(results, i.installOne(ctx, mod))
	}
	return results, nil
}

// prepare creates the install directory and its npm manifest. Re-running
// against an existing manifest is a no-op; `npm init` is never invoked twice.
func (i *Installer) prepare(ctx context.Context) error {
	if err := os.MkdirAll(i.dir, core.PermDir); err != nil {
		return fmt.Errorf("failed to create install directory %q: %w", i.dir, err)
	}

	manifest := filepath.Join(i.dir, "package.json")
	if _, err := os.Stat(manifest); err == nil {
		return i.markPrivate(manifest)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %q: %w", manifest, err)
	}

	res := i.runner.Run(ctx, runner.Request{
		Name:    "npm",
		Args:    []string{"init", "-y"},
		Dir:     i.dir,
		Timeout: core.TimeoutProbe,
	})
	if !res.Succeeded {
		return fmt.Errorf("npm init failed in %q: %s", i.dir, res.Diagnostic())
	}

	return i.markPrivate(manifest)
}

// markPrivate sets "private": true in the npm manifest so the server
// directory can never be published by accident. Already-private manifests are
// left untouched.
func (i *Installer) markPrivate(manifest string) error {
	data, err := os.ReadFile(manifest)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", manifest, err)
	}
	if gjson.GetBytes(data, "private").Exists() {
		return nil
	}

	updated, err := sjson.SetBytes(data, "private", true)
	if err != nil {
		return fmt.Errorf("failed to update %q: %w", manifest, err)
	}
	if err := os.WriteFile(manifest, updated, core.PermFile); err != nil {
		return fmt.Errorf("failed to write %q: %w", manifest, err)
	}
	return nil
}

func (i *Installer) installOne(ctx context.Context, mod catalog.ModuleSpec) InstallResult {
	res := i.runner.Run(ctx, runner.Request{
		Name:    "npm",
		Args:    []string{"install", mod.Package},
		Dir:     i.dir,
		Timeout: core.TimeoutInstall,
	})

	if res.Succeeded {
		i.journal.Success("%s installed", mod.Name)
		return InstallResult{Module: mod, Succeeded: true}
	}

	result := InstallResult{Module: mod, Succeeded: false, Diagnostic: res.Diagnostic()}
	if mod.Required {
		// A required failure is an error-level event but deliberately does
		// not abort the remaining catalog: partial progress beats failing
		// mid-run, and a rerun picks up where this one left off.
		i.journal.Error("failed to install required module %s", mod.Name)
	} else {
		i.journal.Warn("optional module %s skipped", mod.Name)
	}
	i.journal.Debug("npm install %s: %s", mod.Package, result.Diagnostic)
	return result
}

// InstalledNames returns the names of the successfully installed modules, in
// result order.
func InstalledNames(results []InstallResult) []string {
	var names []string
	for _, res := range results {
		if res.Succeeded {
			names = append(names, res.Module.Name)
		}
	}
	return names
}

// Package probe checks the host environment for the external tools the
// installer depends on. Probes never fail the caller; absence is a value, and
// only the orchestrator decides whether a missing tool is fatal.
package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/sparkst/claude-mcp-quickstart/internal/core"
	"github.com/sparkst/claude-mcp-quickstart/internal/runner"
)

// Tools probed by the installer. Node hosts the installed servers and is the
// hard gate; git and npm are advisory.
const (
	ToolNode = "node"
	ToolGit  = "git"
	ToolNPM  = "npm"
)

// Check is the outcome of probing one tool.
type Check struct {
	Tool    string
	Present bool

	// Detail is the tool's version string when present, or a diagnostic
	// explaining why the probe failed.
	Detail string
}

// EnvironmentMissingError indicates a required runtime is absent. It is the
// only condition that halts the setup flow before installation.
type EnvironmentMissingError struct {
	Tool string
	Hint string
}

func (e *EnvironmentMissingError) Error() string {
	return fmt.Sprintf("required tool %q is not available", e.Tool)
}

// Suggestion returns a user-facing instruction for resolving the error.
func (e *EnvironmentMissingError) Suggestion() string {
	return fmt.Sprintf("%s is required. %s", e.Tool, e.Hint)
}

// Probe checks whether tool is present by invoking `<tool> --version`
// with a bounded timeout. A zero exit within the timeout means present; a
// timeout, launch failure, or non-zero exit means absent. It never returns
// an error.
func Probe(ctx context.Context, r runner.Runner, tool string) Check {
	res := r.Run(ctx, runner.Request{
		Name:    tool,
		Args:    []string{"--version"},
		Timeout: core.TimeoutProbe,
	})

	if res.Succeeded {
		return Check{
			Tool:    tool,
			Present: true,
			Detail:  strings.TrimSpace(res.Stdout),
		}
	}

	detail := res.Diagnostic()
	if res.TimedOut {
		detail = fmt.Sprintf("version check timed out after %v", core.TimeoutProbe)
	}
	if detail == "" {
		detail = "version check exited with a non-zero status"
	}
	return Check{Tool: tool, Present: false, Detail: detail}
}

// RequireNode gates the setup flow on the Node.js runtime. It returns an
// EnvironmentMissingError when Node is absent.
func RequireNode(ctx context.Context, r runner.Runner) (Check, error) {
	check := Probe(ctx, r, ToolNode)
	if !check.Present {
		return check, &EnvironmentMissingError{
			Tool: ToolNode,
			Hint: "Please install it from https://nodejs.org and run setup again.",
		}
	}
	return check, nil
}

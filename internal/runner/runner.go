// Package runner wraps subprocess execution with bounded timeouts, captured
// output, and an explicit working directory. Every shell-out in the installer
// goes through this seam so commands never mutate the process-wide cwd and
// tests can substitute a fake.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// Request describes a single subprocess invocation.
type Request struct {
	Name string
	Args []string

	// Dir is the working directory for the command. Empty means the caller's
	// current directory; callers that care must always set it.
	Dir string

	// Timeout bounds the invocation. Zero means no timeout.
	Timeout time.Duration
}

// Result holds the outcome of a subprocess invocation. A non-zero exit code
// is not an error here; callers decide severity from Succeeded.
type Result struct {
	Succeeded bool
	Stdout    string
	Stderr    string
	TimedOut  bool

	// Err is set for launch failures (binary not found, context errors),
	// not for clean non-zero exits.
	Err error
}

// Diagnostic returns the most useful failure text: captured stderr when
// present, otherwise the launch error.
func (r Result) Diagnostic() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return ""
}

// Runner executes subprocesses.
type Runner interface {
	Run(ctx context.Context, req Request) Result
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates an ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

var _ Runner = (*ExecRunner)(nil)

// Run executes the request, blocking until the command exits or the timeout
// elapses. It never panics or propagates the command failure as a Go error
// beyond Result.Err.
func (*ExecRunner) Run(ctx context.Context, req Request) Result {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, req.Name, req.Args...)
	cmd.Dir = req.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Succeeded: err == nil,
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Launch failure rather than a non-zero exit.
			res.Err = err
		}
	}
	return res
}

// Package testutils provides shared helpers for CLI and output testing.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/urfave/cli/v3"
)

// BuildCLIForTests builds a minimal root command wrapping the given
// subcommands, mirroring the production root without its global side effects.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:     "mcp-quickstart",
		Usage:    "test harness",
		Commands: commands,
	}
}

// RunCLITest runs the command with the given args from dir and fails the test
// on error.
func RunCLITest(t *testing.T, cmd *cli.Command, args []string, dir string) {
	t.Helper()
	if dir != "" {
		t.Chdir(dir)
	}
	if err := cmd.Run(context.Background(), args); err != nil {
		t.Fatalf("cli run failed: %v", err)
	}
}

// RunCLITestErr runs the command with the given args from dir and returns the
// error for assertions.
func RunCLITestErr(t *testing.T, cmd *cli.Command, args []string, dir string) error {
	t.Helper()
	if dir != "" {
		t.Chdir(dir)
	}
	return cmd.Run(context.Background(), args)
}

// CaptureStdout captures everything written to os.Stdout while fn runs.
func CaptureStdout(fn func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	fn()

	os.Stdout = orig
	if err := w.Close(); err != nil {
		return "", err
	}
	<-done
	if copyErr != nil {
		return "", copyErr
	}
	return buf.String(), nil
}

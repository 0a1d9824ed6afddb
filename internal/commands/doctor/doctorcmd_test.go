package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sparkst/claude-mcp-quickstart/internal/probe"
	"github.com/sparkst/claude-mcp-quickstart/internal/runner"
	"github.com/sparkst/claude-mcp-quickstart/internal/testutils"
)

type stubRunner struct {
	missing map[string]bool
}

func (s *stubRunner) Run(_ context.Context, req runner.Request) runner.Result {
	if s.missing[req.Name] {
		return runner.Result{Succeeded: false, Stderr: "command not found"}
	}
	return runner.Result{Succeeded: true, Stdout: "v1.0.0\n"}
}

func TestReport_AllToolsPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	content := `{
  "mcpServers": {
    "filesystem": {"command": "node", "args": []},
    "memory": {"command": "npx", "args": ["-y", "@modelcontextprotocol/server-memory"]}
  }
}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var reportErr error
	output, err := testutils.CaptureStdout(func() {
		reportErr = report(context.Background(), &stubRunner{}, path)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	if reportErr != nil {
		t.Fatalf("unexpected error: %v", reportErr)
	}

	for _, want := range []string{"node", "git", "npm", "2 servers configured", "filesystem", "memory"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestReport_NodeMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")

	var reportErr error
	_, err := testutils.CaptureStdout(func() {
		reportErr = report(context.Background(), &stubRunner{missing: map[string]bool{"node": true}}, path)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	var envErr *probe.EnvironmentMissingError
	if !errors.As(reportErr, &envErr) {
		t.Fatalf("expected EnvironmentMissingError, got %v", reportErr)
	}
}

func TestReport_MissingDescriptorIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")

	var reportErr error
	output, err := testutils.CaptureStdout(func() {
		reportErr = report(context.Background(), &stubRunner{}, path)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	if reportErr != nil {
		t.Fatalf("unexpected error: %v", reportErr)
	}
	if !strings.Contains(output, "no configuration") {
		t.Errorf("output missing the no-configuration notice:\n%s", output)
	}
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sparkst/claude-mcp-quickstart/internal/config"
	"github.com/sparkst/claude-mcp-quickstart/internal/testutils"
)

func TestRunCLI_InvalidConfigFile(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("profile: nonsense\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvConfigPath, cfgPath)

	err := runCLI([]string{"mcp-quickstart", "doctor"})
	if err == nil {
		t.Fatal("expected error for invalid profile, got nil")
	}
	if !strings.Contains(err.Error(), "profile") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCLI_Help(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Chdir(t.TempDir())

	var runErr error
	output, err := testutils.CaptureStdout(func() {
		runErr = runCLI([]string{"mcp-quickstart", "--help"})
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	if runErr != nil {
		t.Fatalf("unexpected error: %v", runErr)
	}
	for _, want := range []string{"setup", "doctor", "detect"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

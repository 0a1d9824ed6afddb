// Package workspace materializes the onboarding workspace: a fixed directory
// with a test guide and a project template. Unlike the descriptor, these
// files carry no user data, so they are overwritten without backup.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sparkst/claude-mcp-quickstart/internal/core"
)

// Materialize creates the workspace directory if absent and writes the static
// onboarding documents, replacing any prior copies. Safe to run repeatedly.
func Materialize(dir string) error {
	templateDir := filepath.Join(dir, "project-template")
	if err := os.MkdirAll(templateDir, core.PermDir); err != nil {
		return fmt.Errorf("failed to create workspace %q: %w", dir, err)
	}

	files := map[string]string{
		filepath.Join(dir, "test-mcp.md"):        testGuideContent,
		filepath.Join(templateDir, "README.md"):  projectReadmeContent,
		filepath.Join(templateDir, ".gitignore"): projectGitignoreContent,
	}

	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), core.PermFile); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
	}
	return nil
}

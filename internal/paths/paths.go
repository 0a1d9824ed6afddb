// Package paths resolves the fixed, OS-dependent locations the installer
// reads and writes: the Claude Desktop descriptor, the server install
// directory, and the onboarding workspace.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DescriptorFileName is the file Claude Desktop reads at startup.
const DescriptorFileName = "claude_desktop_config.json"

// ClaudeConfigDir returns the platform-specific application-support directory
// holding the Claude Desktop descriptor.
func ClaudeConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Claude"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "Claude"), nil
	default:
		return filepath.Join(home, ".config", "claude"), nil
	}
}

// DescriptorPath returns the full path of the persisted descriptor.
func DescriptorPath() (string, error) {
	dir, err := ClaudeConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DescriptorFileName), nil
}

// ServersDir returns the directory MCP server packages are installed into.
func ServersDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mcp-servers"), nil
}

// WorkspaceDir returns the onboarding workspace directory.
func WorkspaceDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "claude-mcp-workspace"), nil
}

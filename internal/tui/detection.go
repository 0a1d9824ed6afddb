// Package tui provides interactive prompt helpers and the logic deciding
// whether prompting is appropriate at all.
package tui

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive determines if the current environment supports interactive
// prompts. It returns false when stdout is not a terminal (redirected to a
// file or pipe) or when a CI/CD environment is detected, so prompts are
// skipped automatically in non-interactive contexts.
func IsInteractive() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // G115: fd is a small value, no overflow risk
		return false
	}

	ciEnvs := []string{
		"CI",
		"CONTINUOUS_INTEGRATION",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_HOME",
		"BUILDKITE",
		"DRONE",
		"TF_BUILD",
	}
	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return false
		}
	}

	return true
}

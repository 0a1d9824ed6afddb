package tui

import "testing"

func TestIsInteractive_CI(t *testing.T) {
	// Under `go test` stdout is usually not a terminal, and with CI set the
	// answer must be false regardless.
	t.Setenv("CI", "true")

	if IsInteractive() {
		t.Error("expected non-interactive with CI set")
	}
}

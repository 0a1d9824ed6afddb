package probe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sparkst/claude-mcp-quickstart/internal/runner"
)

// fakeRunner returns canned results keyed by command name.
type fakeRunner struct {
	results map[string]runner.Result
	calls   []runner.Request
}

func (f *fakeRunner) Run(_ context.Context, req runner.Request) runner.Result {
	f.calls = append(f.calls, req)
	if res, ok := f.results[req.Name]; ok {
		return res
	}
	return runner.Result{Succeeded: false, Err: errors.New("not found")}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name        string
		result      runner.Result
		wantPresent bool
		wantDetail  string
	}{
		{
			name:        "tool present",
			result:      runner.Result{Succeeded: true, Stdout: "v20.11.0\n"},
			wantPresent: true,
			wantDetail:  "v20.11.0",
		},
		{
			name:        "tool exits non-zero",
			result:      runner.Result{Succeeded: false, Stderr: "segfault"},
			wantPresent: false,
			wantDetail:  "segfault",
		},
		{
			name:        "probe times out",
			result:      runner.Result{Succeeded: false, TimedOut: true},
			wantPresent: false,
			wantDetail:  "timed out",
		},
		{
			name:        "launch failure",
			result:      runner.Result{Succeeded: false, Err: errors.New("executable file not found")},
			wantPresent: false,
			wantDetail:  "executable file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{results: map[string]runner.Result{"node": tt.result}}
			check := Probe(context.Background(), r, "node")

			if check.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", check.Present, tt.wantPresent)
			}
			if !strings.Contains(check.Detail, tt.wantDetail) {
				t.Errorf("Detail = %q, want substring %q", check.Detail, tt.wantDetail)
			}
		})
	}
}

func TestProbe_UsesVersionFlag(t *testing.T) {
	r := &fakeRunner{results: map[string]runner.Result{"git": {Succeeded: true}}}
	Probe(context.Background(), r, "git")

	if len(r.calls) != 1 {
		t.Fatalf("expected one subprocess call, got %d", len(r.calls))
	}
	req := r.calls[0]
	if len(req.Args) != 1 || req.Args[0] != "--version" {
		t.Errorf("expected --version args, got %v", req.Args)
	}
	if req.Timeout <= 0 {
		t.Error("expected a bounded timeout on the probe")
	}
}

func TestRequireNode(t *testing.T) {
	t.Run("node present", func(t *testing.T) {
		r := &fakeRunner{results: map[string]runner.Result{"node": {Succeeded: true, Stdout: "v20.0.0"}}}
		check, err := RequireNode(context.Background(), r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !check.Present {
			t.Error("expected node to be reported present")
		}
	})

	t.Run("node absent", func(t *testing.T) {
		r := &fakeRunner{results: map[string]runner.Result{}}
		_, err := RequireNode(context.Background(), r)

		var envErr *EnvironmentMissingError
		if !errors.As(err, &envErr) {
			t.Fatalf("expected EnvironmentMissingError, got %v", err)
		}
		if envErr.Tool != ToolNode {
			t.Errorf("Tool = %q, want %q", envErr.Tool, ToolNode)
		}
		if !strings.Contains(envErr.Suggestion(), "nodejs.org") {
			t.Errorf("expected install hint in suggestion, got %q", envErr.Suggestion())
		}
	})
}

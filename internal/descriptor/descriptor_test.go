package descriptor

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/sparkst/claude-mcp-quickstart/internal/credentials"
)

func resolved(key credentials.Key, value string) credentials.Resolved {
	return credentials.Resolved{Key: key, Value: value, Source: credentials.SourceEnvVar}
}

func unresolved(key credentials.Key) credentials.Resolved {
	return credentials.Resolved{Key: key, Source: credentials.SourceNone}
}

func baseInputs() Inputs {
	return Inputs{
		ServersDir: "/home/u/.mcp-servers",
		Workspace:  "/home/u/claude-mcp-workspace",
		Credentials: map[credentials.Key]credentials.Resolved{
			credentials.KeyGitHubToken: unresolved(credentials.KeyGitHubToken),
			credentials.KeyBraveKey:    unresolved(credentials.KeyBraveKey),
		},
	}
}

func TestSynthesize_FilesystemOnly(t *testing.T) {
	in := baseInputs()
	in.Installed = []string{"filesystem"}

	d := Synthesize(in)

	if len(d.Servers) != 1 {
		t.Fatalf("expected exactly one entry, got %v", d.Names())
	}
	entry := d.Servers[0]
	if entry.Name != "filesystem" {
		t.Errorf("Name = %q, want filesystem", entry.Name)
	}
	if entry.Spec.Command != "node" {
		t.Errorf("Command = %q, want node", entry.Spec.Command)
	}
	if len(entry.Spec.Args) != 2 || entry.Spec.Args[1] != in.Workspace {
		t.Errorf("Args = %v, want script + workspace", entry.Spec.Args)
	}

	// The serialized entry must have no env field at all.
	data, err := Encode(d)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if gjson.GetBytes(data, "mcpServers.filesystem.env").Exists() {
		t.Errorf("filesystem entry has an env field: %s", data)
	}
}

func TestSynthesize_GitHubCredential(t *testing.T) {
	in := baseInputs()
	in.Installed = []string{"github"}
	in.Credentials[credentials.KeyGitHubToken] = resolved(credentials.KeyGitHubToken, "abc123")

	data, err := Encode(Synthesize(in))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	got := gjson.GetBytes(data, "mcpServers.github.env.GITHUB_PERSONAL_ACCESS_TOKEN").String()
	if got != "abc123" {
		t.Errorf("token = %q, want abc123", got)
	}
	if cmd := gjson.GetBytes(data, "mcpServers.github.command").String(); cmd != "npx" {
		t.Errorf("command = %q, want npx", cmd)
	}
}

func TestSynthesize_PlaceholderForUnresolved(t *testing.T) {
	in := baseInputs()
	in.Installed = []string{"github", "brave-search"}

	data, err := Encode(Synthesize(in))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if got := gjson.GetBytes(data, "mcpServers.github.env.GITHUB_PERSONAL_ACCESS_TOKEN").String(); got != "PLACEHOLDER_GITHUB_TOKEN" {
		t.Errorf("github token = %q, want placeholder", got)
	}
	if got := gjson.GetBytes(data, "mcpServers.brave-search.env.BRAVE_API_KEY").String(); got != "PLACEHOLDER_BRAVE_KEY" {
		t.Errorf("brave key = %q, want placeholder", got)
	}
}

func TestSynthesize_UnknownModuleOmitted(t *testing.T) {
	in := baseInputs()
	// puppeteer is installable but has no launch template; a name outside the
	// catalog entirely must also produce no entry.
	in.Installed = []string{"puppeteer", "not-a-module", "memory"}

	d := Synthesize(in)

	if len(d.Servers) != 1 || d.Servers[0].Name != "memory" {
		t.Errorf("expected only memory, got %v", d.Names())
	}
}

func TestSynthesize_FailedModuleOmitted(t *testing.T) {
	in := baseInputs()
	// github failed to install: it is simply not in the installed set.
	in.Installed = []string{"filesystem", "memory"}

	d := Synthesize(in)

	for _, name := range d.Names() {
		if name == "github" {
			t.Error("descriptor contains a module that was not installed")
		}
	}
}

func TestSynthesize_ProjectServers(t *testing.T) {
	t.Run("capped and named after the directory", func(t *testing.T) {
		in := baseInputs()
		in.Installed = []string{"filesystem"}
		in.Projects = []string{"/r/alpha", "/r/beta", "/r/gamma", "/r/delta"}

		d := Synthesize(in)

		want := []string{"filesystem", "project-alpha", "project-beta", "project-gamma"}
		if !reflect.DeepEqual(d.Names(), want) {
			t.Errorf("Names = %v, want %v", d.Names(), want)
		}
		if args := d.Servers[1].Spec.Args; args[len(args)-1] != "/r/alpha" {
			t.Errorf("project server args = %v, want path as last arg", args)
		}
	})

	t.Run("no project servers without filesystem", func(t *testing.T) {
		in := baseInputs()
		in.Installed = []string{"memory"}
		in.Projects = []string{"/r/alpha"}

		d := Synthesize(in)
		if len(d.Servers) != 1 {
			t.Errorf("expected only memory, got %v", d.Names())
		}
	})
}

func TestSynthesize_Deterministic(t *testing.T) {
	in := baseInputs()
	in.Installed = []string{"memory", "github", "filesystem", "brave-search", "sqlite"}
	in.Credentials[credentials.KeyGitHubToken] = resolved(credentials.KeyGitHubToken, "tok")

	first, err := Encode(Synthesize(in))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	second, err := Encode(Synthesize(in))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different bytes")
	}

	// Entries follow catalog order, not the order of the installed list.
	want := []string{"filesystem", "github", "brave-search", "memory", "sqlite"}
	if !reflect.DeepEqual(Synthesize(in).Names(), want) {
		t.Errorf("Names = %v, want catalog order %v", Synthesize(in).Names(), want)
	}
}

func TestEncode_PrettyPrinted(t *testing.T) {
	in := baseInputs()
	in.Installed = []string{"memory"}

	data, err := Encode(Synthesize(in))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if !strings.HasPrefix(string(data), "{\n  \"mcpServers\": {") {
		t.Errorf("expected two-space indented output, got %q", string(data[:30]))
	}
}

func TestRoundTrip(t *testing.T) {
	in := baseInputs()
	in.Installed = []string{"filesystem", "github", "memory"}
	in.Credentials[credentials.KeyGitHubToken] = resolved(credentials.KeyGitHubToken, "tok")
	in.Projects = []string{"/r/alpha"}

	original := Synthesize(in)
	data, err := Encode(original)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !reflect.DeepEqual(original, parsed) {
		t.Errorf("round trip mismatch:\noriginal: %+v\nparsed:   %+v", original, parsed)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"missing mcpServers", `{"servers": {}}`},
		{"mcpServers not an object", `{"mcpServers": []}`},
		{"bad launch spec", `{"mcpServers": {"x": {"command": 42}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected parse error, got nil")
			}
		})
	}
}

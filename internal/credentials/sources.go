package credentials

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/sparkst/claude-mcp-quickstart/internal/core"
	"github.com/sparkst/claude-mcp-quickstart/internal/runner"
)

// envAliases maps each key to its environment variable aliases, primary name
// first. Legacy names are kept so existing shells keep working.
var envAliases = map[Key][]string{
	KeyGitHubToken:  {"GITHUB_TOKEN", "GH_TOKEN", "GITHUB_PERSONAL_ACCESS_TOKEN"},
	KeyBraveKey:     {"BRAVE_API_KEY", "BRAVE_SEARCH_KEY"},
	KeyOpenAIKey:    {"OPENAI_API_KEY"},
	KeyAnthropicKey: {"ANTHROPIC_API_KEY", "CLAUDE_API_KEY"},
}

// EnvSource resolves keys from environment variable aliases.
type EnvSource struct {
	getenv func(string) string
}

// NewEnvSource creates an EnvSource. A nil getenv defaults to os.Getenv.
func NewEnvSource(getenv func(string) string) *EnvSource {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &EnvSource{getenv: getenv}
}

func (*EnvSource) Name() string     { return "environment" }
func (*EnvSource) Kind() SourceKind { return SourceEnvVar }

func (s *EnvSource) Lookup(_ context.Context, key Key) (string, string, bool) {
	for _, alias := range envAliases[key] {
		if value := s.getenv(alias); value != "" {
			return value, alias, true
		}
	}
	return "", "", false
}

// gitConfigKeys maps credential keys to the git config entries that may hold
// them. Only the GitHub token has a conventional home in git config.
var gitConfigKeys = map[Key]string{
	KeyGitHubToken: "github.token",
}

// GitConfigSource resolves keys from the user's global git configuration via
// a `git config --global` subprocess.
type GitConfigSource struct {
	runner runner.Runner
}

// NewGitConfigSource creates a GitConfigSource using the given runner.
func NewGitConfigSource(r runner.Runner) *GitConfigSource {
	return &GitConfigSource{runner: r}
}

func (*GitConfigSource) Name() string     { return "git-config" }
func (*GitConfigSource) Kind() SourceKind { return SourceGitConfig }

func (s *GitConfigSource) Lookup(ctx context.Context, key Key) (string, string, bool) {
	configKey, ok := gitConfigKeys[key]
	if !ok {
		return "", "", false
	}

	res := s.runner.Run(ctx, runner.Request{
		Name:    "git",
		Args:    []string{"config", "--global", configKey},
		Timeout: core.TimeoutProbe,
	})
	if !res.Succeeded {
		return "", "", false
	}

	value := strings.TrimSpace(res.Stdout)
	if value == "" {
		return "", "", false
	}
	return value, configKey, true
}

// dotfilePatterns maps keys to the KEY=value assignment patterns scanned for
// in shell dotfiles. The captured group is the candidate value.
var dotfilePatterns = map[Key]*regexp.Regexp{
	KeyGitHubToken: regexp.MustCompile(`(?:GITHUB_TOKEN|GH_TOKEN)=([^\s\n]+)`),
	KeyBraveKey:    regexp.MustCompile(`BRAVE_API_KEY=([^\s\n]+)`),
	KeyOpenAIKey:   regexp.MustCompile(`OPENAI_API_KEY=([^\s\n]+)`),
}

// ghHostsFileName is the gh CLI hosts file, parsed as YAML rather than
// pattern-scanned.
const ghHostsFileName = "hosts.yml"

// DotfileSource scans a fixed list of well-known files for credential
// assignments. It is a best-effort fallback: unreadable or binary files are
// skipped silently and never abort resolution of other keys or files.
type DotfileSource struct {
	files    []string
	readFile func(string) ([]byte, error)
}

// DefaultDotfiles returns the scanned files for the given home directory.
func DefaultDotfiles(home string) []string {
	return []string{
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".zshrc"),
		filepath.Join(home, ".env"),
		filepath.Join(home, ".config", "gh", ghHostsFileName),
	}
}

// NewDotfileSource creates a DotfileSource over the given files. A nil
// readFile defaults to os.ReadFile.
func NewDotfileSource(files []string, readFile func(string) ([]byte, error)) *DotfileSource {
	if readFile == nil {
		readFile = os.ReadFile
	}
	return &DotfileSource{files: files, readFile: readFile}
}

func (*DotfileSource) Name() string     { return "dotfiles" }
func (*DotfileSource) Kind() SourceKind { return SourceDotfile }

func (s *DotfileSource) Lookup(_ context.Context, key Key) (string, string, bool) {
	for _, file := range s.files {
		data, err := s.readFile(file)
		if err != nil {
			continue
		}

		if filepath.Base(file) == ghHostsFileName {
			if key == KeyGitHubToken {
				if value := ghHostsToken(data); value != "" {
					return value, file, true
				}
			}
			continue
		}

		pattern, ok := dotfilePatterns[key]
		if !ok {
			continue
		}
		if m := pattern.FindSubmatch(data); m != nil {
			value := strings.Trim(string(m[1]), `"'`)
			if value != "" {
				return value, file, true
			}
		}
	}
	return "", "", false
}

// ghHostsToken extracts the github.com oauth token from a gh hosts file.
// Parse failures are treated as a miss.
func ghHostsToken(data []byte) string {
	var hosts map[string]struct {
		OAuthToken string `yaml:"oauth_token"`
	}
	if err := yaml.Unmarshal(data, &hosts); err != nil {
		return ""
	}
	return strings.TrimSpace(hosts["github.com"].OAuthToken)
}

// DefaultSources returns the production source chain in rank order, omitting
// any source whose Name appears in disabled.
func DefaultSources(r runner.Runner, home string, disabled []string) []Source {
	all := []Source{
		NewEnvSource(nil),
		NewGitConfigSource(r),
		NewDotfileSource(DefaultDotfiles(home), nil),
	}

	if len(disabled) == 0 {
		return all
	}

	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}

	var out []Source
	for _, src := range all {
		if !skip[src.Name()] {
			out = append(out, src)
		}
	}
	return out
}

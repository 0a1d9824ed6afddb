package descriptor

import (
	"path/filepath"

	"github.com/sparkst/claude-mcp-quickstart/internal/catalog"
	"github.com/sparkst/claude-mcp-quickstart/internal/credentials"
)

// maxProjectServers caps how many discovered projects get their own
// filesystem server entry.
const maxProjectServers = 3

// Inputs is everything synthesis needs. Synthesize performs no I/O and no
// subprocess calls; all state arrives here.
type Inputs struct {
	// Installed holds the names of successfully installed modules.
	Installed []string

	// Credentials maps each key to its resolution outcome. Missing or
	// unresolved keys substitute their placeholder token.
	Credentials map[credentials.Key]credentials.Resolved

	// ServersDir is the npm install directory holding node_modules.
	ServersDir string

	// Workspace is the onboarding workspace directory.
	Workspace string

	// Projects are discovered repository paths; each gets a dedicated
	// filesystem server when the filesystem module is installed.
	Projects []string
}

func (in Inputs) credential(key credentials.Key) string {
	if res, ok := in.Credentials[key]; ok {
		return res.ValueOrPlaceholder()
	}
	return credentials.Placeholder(key)
}

// nodeScript returns the entry script path of an installed server package.
func (in Inputs) nodeScript(pkg string) string {
	return filepath.Join(in.ServersDir, "node_modules", pkg, "dist", "index.js")
}

// launchTemplates maps module names to their launch spec builders. Modules
// without a template (for instance puppeteer, which ships its own launcher
// semantics the assistant does not know) are omitted from the descriptor
// rather than given a malformed entry.
var launchTemplates = map[string]func(in Inputs) LaunchSpec{
	"filesystem": func(in Inputs) LaunchSpec {
		return LaunchSpec{
			Command: "node",
			Args:    []string{in.nodeScript("@modelcontextprotocol/server-filesystem"), in.Workspace},
		}
	},
	"github": func(in Inputs) LaunchSpec {
		return LaunchSpec{
			Command: "npx",
			Args:    []string{"-y", "@modelcontextprotocol/server-github"},
			Env: map[string]string{
				"GITHUB_PERSONAL_ACCESS_TOKEN": in.credential(credentials.KeyGitHubToken),
			},
		}
	},
	"brave-search": func(in Inputs) LaunchSpec {
		return LaunchSpec{
			Command: "npx",
			Args:    []string{"-y", "@modelcontextprotocol/server-brave-search"},
			Env: map[string]string{
				"BRAVE_API_KEY": in.credential(credentials.KeyBraveKey),
			},
		}
	},
	"memory": func(in Inputs) LaunchSpec {
		return LaunchSpec{
			Command: "node",
			Args:    []string{in.nodeScript("@modelcontextprotocol/server-memory")},
		}
	},
	"sqlite": func(in Inputs) LaunchSpec {
		return LaunchSpec{
			Command: "node",
			Args: []string{
				in.nodeScript("@modelcontextprotocol/server-sqlite"),
				filepath.Join(in.Workspace, "data.db"),
			},
		}
	},
}

// Synthesize builds the descriptor for the installed module set. Entries
// appear in catalog order, followed by per-project filesystem servers.
// Installed modules without a launch template are silently omitted.
func Synthesize(in Inputs) *ConfigDescriptor {
	installed := make(map[string]bool, len(in.Installed))
	for _, name := range in.Installed {
		installed[name] = true
	}

	d := &ConfigDescriptor{}
	for _, mod := range catalog.Full() {
		if !installed[mod.Name] {
			continue
		}
		template, ok := launchTemplates[mod.Name]
		if !ok {
			continue
		}
		d.Add(mod.Name, template(in))
	}

	if installed["filesystem"] {
		projects := in.Projects
		if len(projects) > maxProjectServers {
			projects = projects[:maxProjectServers]
		}
		for _, project := range projects {
			d.Add("project-"+filepath.Base(project), LaunchSpec{
				Command: "node",
				Args:    []string{in.nodeScript("@modelcontextprotocol/server-filesystem"), project},
			})
		}
	}

	return d
}

// Package catalog defines the static set of installable MCP server modules.
// The catalog is fixed at build time; the install profile only selects which
// slice of it a run installs.
package catalog

import "fmt"

// ModuleSpec describes one installable MCP server module.
type ModuleSpec struct {
	// Name is the logical module name, unique within a catalog, and the key
	// the descriptor uses for the server entry.
	Name string

	// Package is the npm package identifier passed to `npm install`.
	Package string

	// Required controls failure severity: a failed required module is an
	// error-level event, a failed optional module only a warning. Neither
	// aborts the remaining catalog.
	Required bool
}

// Profile selects which modules a run installs.
type Profile string

const (
	// ProfileFull installs every module, optional ones included.
	ProfileFull Profile = "full"

	// ProfileMinimal installs only the required core modules.
	ProfileMinimal Profile = "minimal"
)

// full is the complete module catalog in install order.
var full = []ModuleSpec{
	{Name: "filesystem", Package: "@modelcontextprotocol/server-filesystem", Required: true},
	{Name: "github", Package: "@modelcontextprotocol/server-github", Required: true},
	{Name: "brave-search", Package: "@modelcontextprotocol/server-brave-search", Required: true},
	{Name: "memory", Package: "@modelcontextprotocol/server-memory", Required: true},
	{Name: "puppeteer", Package: "@modelcontextprotocol/server-puppeteer", Required: false},
	{Name: "sqlite", Package: "@modelcontextprotocol/server-sqlite", Required: false},
}

// Full returns the complete catalog in install order.
func Full() []ModuleSpec {
	out := make([]ModuleSpec, len(full))
	copy(out, full)
	return out
}

// Minimal returns only the required modules, preserving catalog order.
func Minimal() []ModuleSpec {
	var out []ModuleSpec
	for _, m := range full {
		if m.Required {
			out = append(out, m)
		}
	}
	return out
}

// ForProfile returns the catalog slice for the given profile.
func ForProfile(p Profile) ([]ModuleSpec, error) {
	switch p {
	case ProfileFull, "":
		return Full(), nil
	case ProfileMinimal:
		return Minimal(), nil
	default:
		return nil, fmt.Errorf("unknown install profile %q (expected %q or %q)", p, ProfileFull, ProfileMinimal)
	}
}

// Validate checks the catalog's uniqueness invariant on module names.
func Validate(modules []ModuleSpec) error {
	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		if m.Name == "" {
			return fmt.Errorf("module with package %q has an empty name", m.Package)
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate module name %q in catalog", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

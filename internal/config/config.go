// Package config loads the optional tool configuration. Most users run with
// defaults; a config file can select the install profile, relocate the
// workspace and server directories, or disable individual credential sources.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/sparkst/claude-mcp-quickstart/internal/catalog"
)

// Config file candidates, checked in order.
const (
	YAMLConfigFile = ".mcpquickstart.yaml"
	TOMLConfigFile = ".mcpquickstart.toml"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "MCP_QUICKSTART_CONFIG"

// Config is the tool configuration.
type Config struct {
	// Profile selects the module catalog slice: "full" or "minimal".
	Profile string `yaml:"profile" toml:"profile"`

	// Workspace overrides the onboarding workspace directory.
	Workspace string `yaml:"workspace" toml:"workspace"`

	// ServersDir overrides the npm install directory.
	ServersDir string `yaml:"servers-dir" toml:"servers-dir"`

	// DisabledSources lists credential source names to skip, e.g.
	// "dotfiles" to turn off the dotfile scan.
	DisabledSources []string `yaml:"disabled-sources,omitempty" toml:"disabled-sources,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{Profile: string(catalog.ProfileFull)}
}

// Validate checks field values that have a closed domain.
func (c *Config) Validate() error {
	if _, err := catalog.ForProfile(catalog.Profile(c.Profile)); err != nil {
		return err
	}
	return nil
}

// LoadFn is replaceable in tests.
var LoadFn = Load

// Load resolves the configuration. Highest priority is an explicit path in
// the MCP_QUICKSTART_CONFIG environment variable; then the YAML and TOML
// candidates in the current directory; then defaults.
func Load() (*Config, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return loadFile(envPath)
	}

	for _, candidate := range []string{YAMLConfigFile, TOMLConfigFile} {
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		}
	}

	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := &Config{}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (expected .yaml or .toml)", path)
	}

	if cfg.Profile == "" {
		cfg.Profile = string(catalog.ProfileFull)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Package descriptor models the persisted launch descriptor Claude Desktop
// reads at startup, and synthesizes it from the installed module set and the
// resolved credentials. Synthesis is pure and deterministic; entry order
// follows the module catalog so identical inputs always produce identical
// bytes.
package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// LaunchSpec is the exact subprocess invocation the assistant uses to start
// one MCP server.
type LaunchSpec struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// ServerEntry pairs a module name with its launch spec.
type ServerEntry struct {
	Name string
	Spec LaunchSpec
}

// ConfigDescriptor is the full descriptor: an ordered mapping of module name
// to launch spec. Order is catalog order; it carries no semantics but keeps
// output reproducible.
type ConfigDescriptor struct {
	Servers []ServerEntry
}

// Add appends a server entry.
func (d *ConfigDescriptor) Add(name string, spec LaunchSpec) {
	d.Servers = append(d.Servers, ServerEntry{Name: name, Spec: spec})
}

// Names returns the server names in entry order.
func (d *ConfigDescriptor) Names() []string {
	names := make([]string, len(d.Servers))
	for i, e := range d.Servers {
		names[i] = e.Name
	}
	return names
}

// MarshalJSON emits the wire shape
// {"mcpServers": {<name>: {...}, ...}} preserving entry order.
func (d *ConfigDescriptor) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"mcpServers":{`)
	for i, entry := range d.Servers {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		spec, err := json.Marshal(entry.Spec)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal launch spec for %q: %w", entry.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(spec)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// Encode serializes the descriptor pretty-printed with a two-space indent,
// the format Claude Desktop and humans both read.
func Encode(d *ConfigDescriptor) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Parse reads a serialized descriptor back, preserving the document's entry
// order.
func Parse(data []byte) (*ConfigDescriptor, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("descriptor is not valid JSON")
	}

	servers := gjson.GetBytes(data, "mcpServers")
	if !servers.Exists() {
		return nil, fmt.Errorf("descriptor has no mcpServers object")
	}
	if !servers.IsObject() {
		return nil, fmt.Errorf("mcpServers is not an object")
	}

	d := &ConfigDescriptor{}
	var parseErr error
	servers.ForEach(func(key, value gjson.Result) bool {
		var spec LaunchSpec
		if err := json.Unmarshal([]byte(value.Raw), &spec); err != nil {
			parseErr = fmt.Errorf("invalid launch spec for %q: %w", key.String(), err)
			return false
		}
		d.Add(key.String(), spec)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return d, nil
}

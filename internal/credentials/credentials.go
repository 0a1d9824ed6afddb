// Package credentials resolves the API keys and tokens referenced by MCP
// server launch specs. Each logical key is searched across ranked sources
// (environment aliases, git configuration, well-known dotfiles) and the first
// non-empty value wins. Resolution only checks presence; it never verifies a
// value against the service it belongs to.
package credentials

import (
	"context"
	"strings"
)

// Key is the logical identifier of one credential.
type Key string

// The credential keys the launch spec templates reference.
const (
	KeyGitHubToken  Key = "github_token"
	KeyBraveKey     Key = "brave_key"
	KeyOpenAIKey    Key = "openai_key"
	KeyAnthropicKey Key = "anthropic_key"
)

// Keys returns every known credential key in resolution order.
func Keys() []Key {
	return []Key{KeyGitHubToken, KeyBraveKey, KeyOpenAIKey, KeyAnthropicKey}
}

// SourceKind identifies which ranked source produced a value.
type SourceKind string

const (
	SourceEnvVar    SourceKind = "env"
	SourceGitConfig SourceKind = "git-config"
	SourceDotfile   SourceKind = "dotfile"
	SourceNone      SourceKind = "none"
)

// Resolved is the outcome of resolving one key.
type Resolved struct {
	Key    Key
	Value  string
	Source SourceKind

	// Detail names where the value came from: the environment variable, the
	// git config key, or the file path that matched.
	Detail string
}

// Found reports whether any source yielded a value.
func (r Resolved) Found() bool {
	return r.Value != ""
}

// ValueOrPlaceholder returns the resolved value, or the key's hand-editable
// placeholder when nothing was found. Downstream consumers always get a
// value, never an absent field.
func (r Resolved) ValueOrPlaceholder() string {
	if r.Found() {
		return r.Value
	}
	return Placeholder(r.Key)
}

// Placeholder returns the token substituted for an unresolved key, e.g.
// PLACEHOLDER_GITHUB_TOKEN.
func Placeholder(k Key) string {
	return "PLACEHOLDER_" + strings.ToUpper(string(k))
}

// Source is one ranked credential source. Lookup returns the value, a detail
// string naming where it was found, and whether it was found. Implementations
// must swallow their own I/O errors; a failed lookup is just a miss.
type Source interface {
	Name() string
	Kind() SourceKind
	Lookup(ctx context.Context, key Key) (value, detail string, ok bool)
}

// Resolver searches sources in rank order.
type Resolver struct {
	sources []Source
}

// NewResolver creates a Resolver over the given sources, highest rank first.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve looks up every key. Per key, sources are consulted in rank order
// and the first non-empty value wins; lower-ranked sources are not touched
// after a hit. Unresolved keys are still present in the result with
// SourceNone.
func (r *Resolver) Resolve(ctx context.Context, keys []Key) map[Key]Resolved {
	out := make(map[Key]Resolved, len(keys))
	for _, key := range keys {
		out[key] = r.resolveOne(ctx, key)
	}
	return out
}

func (r *Resolver) resolveOne(ctx context.Context, key Key) Resolved {
	for _, src := range r.sources {
		if value, detail, ok := src.Lookup(ctx, key); ok && value != "" {
			return Resolved{Key: key, Value: value, Source: src.Kind(), Detail: detail}
		}
	}
	return Resolved{Key: key, Source: SourceNone}
}

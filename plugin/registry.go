// Package plugin provides a minimal, in-memory PluginLoader for tests and
// for cmd/tabc. A real deployment would resolve "import plugin" paths
// against the filesystem or a JS runtime; that loader is explicitly out of
// this module's scope (spec §1) and left to the embedding application.
package plugin

import (
	"fmt"

	"github.com/tabscript-lang/tsc"
)

// Registry maps logical plugin names to entry points and satisfies
// tsc.PluginLoader via Registry.Load.
type Registry struct {
	entries map[string]tsc.PluginEntry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]tsc.PluginEntry{}}
}

// Register associates name with an entry point, for later resolution by
// Load (and therefore by "import plugin name { ... }" in TabScript source).
func (r *Registry) Register(name string, entry tsc.PluginEntry) {
	r.entries[name] = entry
}

// Load implements tsc.PluginLoader.
func (r *Registry) Load(path string) (tsc.PluginEntry, error) {
	entry, ok := r.entries[path]
	if !ok {
		return nil, fmt.Errorf("plugin: no plugin registered for %q", path)
	}
	return entry, nil
}

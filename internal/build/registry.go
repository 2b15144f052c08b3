package build

import (
	"sort"

	"git.home.luguber.info/inful/docxbuilder/internal/tools"
)

// Registry is an immutable name to tool table. Lookups are exact and
// case-sensitive.
type Registry struct {
	tools map[string]tools.Tool
}

// NewRegistry builds a registry from ts. A later tool replaces an earlier
// one with the same name.
func NewRegistry(ts ...tools.Tool) *Registry {
	m := make(map[string]tools.Tool, len(ts))
	for _, t := range ts {
		m[t.Name] = t
	}
	return &Registry{tools: m}
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (tools.Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len reports how many tools are registered.
func (r *Registry) Len() int { return len(r.tools) }

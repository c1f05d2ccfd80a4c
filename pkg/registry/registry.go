// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const Version = "1.0.0"

// Default returns the built-in generator table in canonical order.
func Default() *GeneratorRegistry {
	entries := []struct {
		kind, prefix, description string
		tags                      []string
	}{
		{"Universe", "u", "Top-level setting containing worlds, characters, cultures and technologies", []string{"root"}},
		{"World", "w", "A planet or location inside a universe", []string{"place"}},
		{"Character", "ch", "An intelligent being and its story", []string{"being"}},
		{"Culture", "cu", "A society with its own values and traditions", []string{"society"}},
		{"Technology", "t", "An innovation and its impact", []string{"artifact"}},
	}

	reg := &GeneratorRegistry{Version: Version}
	for _, e := range entries {
		reg.Generators = append(reg.Generators, Generator{
			Kind:        e.kind,
			DisplayName: e.kind,
			Description: e.description,
			Route:       "/generate/" + strings.ToLower(e.kind),
			IDPrefix:    e.prefix,
			DefaultName: "New " + e.kind,
			InputSchema: GenerationRequestSchema(),
			Tags:        e.tags,
		})
	}
	return reg
}

// LoadRegistry reads an override file and applies it on top of Default.
// Overrides may toggle generators and replace descriptions or tags; the
// kind, route and identifier prefix of a generator are fixed.
func LoadRegistry(path string) (*GeneratorRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var override GeneratorRegistry
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return Default().Merge(&override)
}

// Merge returns a copy of r with override applied.
func (r *GeneratorRegistry) Merge(override *GeneratorRegistry) (*GeneratorRegistry, error) {
	merged := r.clone()
	if override.Version != "" {
		merged.Version = override.Version
	}
	merged.LastUpdated = override.LastUpdated

	for _, o := range override.Generators {
		idx := merged.indexOf(o.Kind)
		if idx < 0 {
			return nil, fmt.Errorf("unknown generator kind %q", o.Kind)
		}
		g := &merged.Generators[idx]
		if o.Enabled != nil {
			enabled := *o.Enabled
			g.Enabled = &enabled
		}
		if o.Description != "" {
			g.Description = o.Description
		}
		if o.DisplayName != "" {
			g.DisplayName = o.DisplayName
		}
		if len(o.Tags) > 0 {
			g.Tags = append([]string(nil), o.Tags...)
		}
	}
	return merged, nil
}

// Lookup finds a generator by kind, case-insensitively.
func (r *GeneratorRegistry) Lookup(kind string) (Generator, bool) {
	if idx := r.indexOf(kind); idx >= 0 {
		return r.Generators[idx], true
	}
	return Generator{}, false
}

// LookupRoute finds a generator by its HTTP route.
func (r *GeneratorRegistry) LookupRoute(route string) (Generator, bool) {
	for _, g := range r.Generators {
		if g.Route == route {
			return g, true
		}
	}
	return Generator{}, false
}

// Enabled lists generators that are switched on, in registry order.
func (r *GeneratorRegistry) Enabled() []Generator {
	out := make([]Generator, 0, len(r.Generators))
	for _, g := range r.Generators {
		if g.IsEnabled() {
			out = append(out, g)
		}
	}
	return out
}

func (r *GeneratorRegistry) indexOf(kind string) int {
	for i, g := range r.Generators {
		if strings.EqualFold(g.Kind, kind) {
			return i
		}
	}
	return -1
}

func (r *GeneratorRegistry) clone() *GeneratorRegistry {
	out := &GeneratorRegistry{
		Version:     r.Version,
		LastUpdated: r.LastUpdated,
		Generators:  make([]Generator, len(r.Generators)),
	}
	copy(out.Generators, r.Generators)
	return out
}

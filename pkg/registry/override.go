// pkg/registry/override.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ReadOverride reads an override file as written, without merging it onto
// Default. A missing file yields an empty override.
func ReadOverride(path string) (*GeneratorRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GeneratorRegistry{Version: Version}, nil
		}
		return nil, err
	}
	var override GeneratorRegistry
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &override, nil
}

// SaveOverride stamps LastUpdated and writes the override as indented JSON.
func SaveOverride(reg *GeneratorRegistry, path string) error {
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// SetField updates one overridable field of kind, adding an entry for kind
// when the override does not mention it yet.
func (r *GeneratorRegistry) SetField(kind, field, value string) error {
	base, ok := Default().Lookup(kind)
	if !ok {
		return fmt.Errorf("unknown generator kind %q", kind)
	}

	idx := r.indexOf(base.Kind)
	if idx < 0 {
		r.Generators = append(r.Generators, Generator{Kind: base.Kind})
		idx = len(r.Generators) - 1
	}
	g := &r.Generators[idx]

	switch field {
	case "enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid enabled value: %w", err)
		}
		g.Enabled = &enabled
	case "description":
		g.Description = value
	case "displayName":
		g.DisplayName = value
	case "tags":
		var tags []string
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		g.Tags = tags
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

// Validate checks a merged registry for duplicate kinds or routes and
// missing required fields.
func (r *GeneratorRegistry) Validate() error {
	if len(r.Generators) == 0 {
		return fmt.Errorf("registry contains no generators")
	}

	kinds := make(map[string]bool)
	routes := make(map[string]bool)
	for _, g := range r.Generators {
		if g.Kind == "" {
			return fmt.Errorf("generator missing required field: Kind")
		}
		key := strings.ToLower(g.Kind)
		if kinds[key] {
			return fmt.Errorf("duplicate generator kind: %s", g.Kind)
		}
		kinds[key] = true

		if g.Route == "" || !strings.HasPrefix(g.Route, "/") {
			return fmt.Errorf("generator %s has invalid route %q", g.Kind, g.Route)
		}
		if routes[g.Route] {
			return fmt.Errorf("duplicate generator route: %s", g.Route)
		}
		routes[g.Route] = true

		if g.IDPrefix == "" {
			return fmt.Errorf("generator %s missing required field: IDPrefix", g.Kind)
		}
		if g.DefaultName == "" {
			return fmt.Errorf("generator %s missing required field: DefaultName", g.Kind)
		}
		if g.InputSchema == nil {
			return fmt.Errorf("generator %s missing required field: InputSchema", g.Kind)
		}
	}
	return nil
}

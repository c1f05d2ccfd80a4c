// pkg/registry/schema.go
package registry

type GeneratorRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Generators  []Generator `json:"generators"`
}

type Generator struct {
	Kind        string                 `json:"kind"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	Route       string                 `json:"route"`
	IDPrefix    string                 `json:"idPrefix"`
	DefaultName string                 `json:"defaultName"`
	Enabled     *bool                  `json:"enabled,omitempty"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	Tags        []string               `json:"tags"`
}

// IsEnabled treats a missing flag as enabled.
func (g Generator) IsEnabled() bool {
	return g.Enabled == nil || *g.Enabled
}

// GenerationRequestSchema is the JSON schema every /generate/* body must satisfy:
// an object whose optional universeId and prompt are strings (or null).
func GenerationRequestSchema() map[string]interface{} {
	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]interface{}{
			"universeId": map[string]interface{}{
				"type":        []interface{}{"string", "null"},
				"description": "Universe the entity belongs to (accepted, currently unused)",
			},
			"prompt": map[string]interface{}{
				"type":        []interface{}{"string", "null"},
				"description": "Free-text generation hint (accepted, currently unused)",
			},
		},
		"additionalProperties": true,
	}
}

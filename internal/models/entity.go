// internal/models/entity.go
package models

import "strings"

// EntityType is the fixed enumeration of generatable content types.
type EntityType string

const (
	EntityTypeUniverse   EntityType = "Universe"
	EntityTypeWorld      EntityType = "World"
	EntityTypeCharacter  EntityType = "Character"
	EntityTypeCulture    EntityType = "Culture"
	EntityTypeTechnology EntityType = "Technology"
)

// EntityTypes lists every kind in canonical order.
var EntityTypes = []EntityType{
	EntityTypeUniverse,
	EntityTypeWorld,
	EntityTypeCharacter,
	EntityTypeCulture,
	EntityTypeTechnology,
}

// ParseEntityType accepts any casing ("world", "World", "WORLD").
func ParseEntityType(s string) (EntityType, bool) {
	for _, t := range EntityTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// Slug is the lowercase form used in routes and config keys.
func (t EntityType) Slug() string {
	return strings.ToLower(string(t))
}

// GenerationRequest is the body accepted by every /generate/* endpoint.
// Both fields are optional and do not influence generated content.
type GenerationRequest struct {
	UniverseID *string `json:"universeId,omitempty"`
	Prompt     *string `json:"prompt,omitempty"`
}

// GeneratedEntity is the record returned for every generation.
type GeneratedEntity struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	Markdown  string     `json:"markdown"`
	Type      EntityType `json:"type"`
	CreatedAt string     `json:"createdAt"`
}

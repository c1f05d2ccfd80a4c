// internal/generator/handler.go
package generator

import (
	"context"
	"strings"
	"time"

	apperrors "canon-builder/internal/common/errors"
	"canon-builder/internal/common/logger"
	"canon-builder/internal/common/metrics"
	"canon-builder/internal/common/observability"
	"canon-builder/internal/models"
	"canon-builder/pkg/registry"
)

const Component = "entity-generator"

// Handler produces entity records for every registered kind. It holds no
// mutable state and is safe for concurrent use.
type Handler struct {
	config   *Config
	registry *registry.GeneratorRegistry
	obs      *observability.Observability
	logger   logger.Logger
}

// NewHandler wires a generator. reg and obs may be nil: the built-in registry
// is used and no telemetry is recorded.
func NewHandler(config *Config, reg *registry.GeneratorRegistry, obs *observability.Observability, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.NewID == nil {
		config.NewID = NewEntityID
	}
	if reg == nil {
		reg = registry.Default()
	}
	return &Handler{
		config:   config,
		registry: reg,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": Component}),
	}
}

// Execute generates one entity of the given kind. The request is accepted for
// interface compatibility; its fields do not influence the output.
func (h *Handler) Execute(ctx context.Context, kind models.EntityType, _ *models.GenerationRequest) (*models.GeneratedEntity, error) {
	gen, ok := h.registry.Lookup(string(kind))
	if !ok {
		return nil, apperrors.NewUnsupportedEntityTypeError(string(kind))
	}
	if !gen.IsEnabled() {
		return nil, apperrors.NewGeneratorDisabledError(gen.Kind)
	}
	body, ok := markdownBodies[kind]
	if !ok {
		return nil, apperrors.NewUnsupportedEntityTypeError(string(kind))
	}

	ctx, span := h.obs.StartGeneration(ctx, gen.Kind)
	defer span.End()
	start := time.Now()

	name := gen.DefaultName
	entity := &models.GeneratedEntity{
		ID:        h.config.NewID(gen.IDPrefix),
		Name:      name,
		Title:     name,
		Markdown:  RenderMarkdown(name, body),
		Type:      kind,
		CreatedAt: h.config.Now().Format(TimestampLayout),
	}

	metrics.EntitiesGenerated.WithLabelValues(gen.Kind).Inc()
	h.obs.RecordGeneration(ctx, gen.Kind, "success")
	h.obs.RecordGenerationDuration(ctx, time.Since(start), gen.Kind)

	h.logger.Debug("entity generated", map[string]interface{}{
		"entityId":   entity.ID,
		"entityType": gen.Kind,
	})

	return entity, nil
}

func (h *Handler) GenerateUniverse(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedEntity, error) {
	return h.Execute(ctx, models.EntityTypeUniverse, req)
}

func (h *Handler) GenerateWorld(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedEntity, error) {
	return h.Execute(ctx, models.EntityTypeWorld, req)
}

func (h *Handler) GenerateCharacter(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedEntity, error) {
	return h.Execute(ctx, models.EntityTypeCharacter, req)
}

func (h *Handler) GenerateCulture(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedEntity, error) {
	return h.Execute(ctx, models.EntityTypeCulture, req)
}

func (h *Handler) GenerateTechnology(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedEntity, error) {
	return h.Execute(ctx, models.EntityTypeTechnology, req)
}

// RenderMarkdown places name in the top-level heading above body.
func RenderMarkdown(name, body string) string {
	return "# " + name + "\n\n" + body
}

// Heading returns the text of the first "# " line, or "" when absent.
func Heading(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

// internal/api/handler.go
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "canon-builder/internal/common/errors"
	"canon-builder/internal/common/logger"
	"canon-builder/internal/common/validation"
	"canon-builder/internal/generator"
	"canon-builder/internal/models"
	"canon-builder/pkg/registry"
)

const defaultMaxBodyBytes = 1 << 20

// Options configures the HTTP boundary.
type Options struct {
	ServiceName        string
	MaxBodyBytes       int64
	CORSAllowedOrigins []string
	// IsEnabled lets configuration switch generators off; nil enables all.
	IsEnabled func(kind string) bool
}

type Handler struct {
	opts       Options
	generator  *generator.Handler
	registry   *registry.GeneratorRegistry
	validators map[models.EntityType]*validation.Validator
	errors     *apperrors.ErrorHandler
	logger     logger.Logger
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ReadyResponse struct {
	Status     string   `json:"status"`
	Service    string   `json:"service"`
	Generators []string `json:"generators"`
}

func NewHandler(opts Options, gen *generator.Handler, reg *registry.GeneratorRegistry, log logger.Logger) (*Handler, error) {
	if opts.ServiceName == "" {
		opts.ServiceName = "canon-builder"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.IsEnabled == nil {
		opts.IsEnabled = func(string) bool { return true }
	}
	if reg == nil {
		reg = registry.Default()
	}

	validators := make(map[models.EntityType]*validation.Validator, len(reg.Generators))
	for _, g := range reg.Generators {
		kind, ok := models.ParseEntityType(g.Kind)
		if !ok {
			return nil, fmt.Errorf("registry kind %q has no entity type", g.Kind)
		}
		v, err := validation.NewValidator(g.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("input schema for %s: %w", g.Kind, err)
		}
		validators[kind] = v
	}

	return &Handler{
		opts:       opts,
		generator:  gen,
		registry:   reg,
		validators: validators,
		errors:     apperrors.NewErrorHandler(log),
		logger:     log,
	}, nil
}

// activeGenerators lists generators enabled in both the registry and config.
func (h *Handler) activeGenerators() []registry.Generator {
	var out []registry.Generator
	for _, g := range h.registry.Enabled() {
		if h.opts.IsEnabled(g.Kind) {
			out = append(out, g)
		}
	}
	return out
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.opts.ServiceName,
	})
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	active := h.activeGenerators()
	kinds := make([]string, 0, len(active))
	for _, g := range active {
		kinds = append(kinds, g.Kind)
	}
	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status:     "ready",
		Service:    h.opts.ServiceName,
		Generators: kinds,
	})
}

// Generate returns the POST handler for one entity kind.
func (h *Handler) Generate(kind models.EntityType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := h.decodeRequest(w, r, kind)
		if err != nil {
			h.errors.WriteError(w, r, err)
			return
		}

		entity, err := h.generator.Execute(r.Context(), kind, req)
		if err != nil {
			h.errors.WriteError(w, r, err)
			return
		}

		h.writeJSON(w, http.StatusOK, entity)
	}
}

// decodeRequest reads the body, treating an empty body as {}, and checks it
// against the generator's input schema before binding it.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, kind models.EntityType) (*models.GenerationRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewRequestTooLargeError(tooLarge.Limit)
		}
		return nil, apperrors.NewInvalidRequestBodyError(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var document interface{}
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, apperrors.NewInvalidRequestBodyError(err)
	}

	validator, ok := h.validators[kind]
	if !ok {
		return nil, apperrors.NewUnsupportedEntityTypeError(string(kind))
	}
	result, err := validator.Validate(document)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, apperrors.NewRequestValidationFailedError(result.GetErrorMessages())
	}

	var req models.GenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, apperrors.NewInvalidRequestBodyError(err)
	}
	return &req, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", map[string]interface{}{"error": err})
	}
}

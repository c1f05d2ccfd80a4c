// internal/api/routes.go
package api

import (
	"net/http"

	"canon-builder/internal/models"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the route table once; it is not modified after startup.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	for _, g := range h.activeGenerators() {
		kind, ok := models.ParseEntityType(g.Kind)
		if !ok {
			continue
		}
		mux.HandleFunc("POST "+g.Route, h.Generate(kind))
		h.logger.Info("generator route registered", map[string]interface{}{
			"route":      g.Route,
			"entityType": g.Kind,
		})
	}

	var handler http.Handler = mux
	handler = h.instrument(handler)
	handler = h.cors(handler)
	handler = h.requestID(handler)
	handler = h.recoverer(handler)
	return handler
}

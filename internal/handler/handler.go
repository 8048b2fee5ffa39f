package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"railplan/internal/transit"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	graph   *transit.Graph
	planner *transit.Planner
	logger  *slog.Logger
}

// New creates a Handler.
func New(graph *transit.Graph, planner *transit.Planner, logger *slog.Logger) *Handler {
	return &Handler{graph: graph, planner: planner, logger: logger}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encoding response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes a request body, rejecting unknown fields and
// oversized payloads.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

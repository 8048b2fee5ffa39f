package handler

import "net/http"

// Health reports liveness plus basic graph stats.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"stations": len(h.graph.Stations),
		"edges":    h.graph.EdgeCount(),
	})
}

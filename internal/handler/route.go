package handler

import (
	"net/http"
	"strings"

	"railplan/internal/transit"
)

// routeRequest is the ordered city list for one itinerary: departure,
// any waypoints, arrival. Entity extraction from free text happens
// upstream; this endpoint takes the extracted cities directly.
type routeRequest struct {
	Cities []string `json:"cities"`
}

type routeResponse struct {
	Legs   []transit.LegResult `json:"legs"`
	Errors []string            `json:"errors"`
}

// Route computes a multi-leg itinerary for an ordered list of cities.
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cities := make([]string, 0, len(req.Cities))
	for _, c := range req.Cities {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			cities = append(cities, trimmed)
		}
	}
	if len(cities) < 2 {
		h.writeError(w, http.StatusBadRequest, "need at least a departure and an arrival city")
		return
	}

	legs, legErrors, err := h.planner.Plan(cities)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if legErrors == nil {
		legErrors = []string{}
	}

	h.writeJSON(w, http.StatusOK, routeResponse{Legs: legs, Errors: legErrors})
}

package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"railplan/internal/config"
	"railplan/internal/handler"
	"railplan/internal/transit"
)

// Server is the HTTP server for the itinerary API.
type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Server with all routes registered.
func New(cfg *config.Config, graph *transit.Graph, planner *transit.Planner, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	h := handler.New(graph, planner, logger)

	mux.HandleFunc("POST /api/route", h.Route)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	return &Server{mux: mux, cfg: cfg, logger: logger}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("server starting", "addr", addr)
	return http.ListenAndServe(addr, withMiddleware(s.mux, s.logger))
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"railplan/internal/config"
	"railplan/internal/dataset"
	"railplan/internal/server"
	"railplan/internal/storage"
	"railplan/internal/transit"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	// CLI flags
	importOnly := flag.Bool("import", false, "Import schedule data, then exit")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the schedule CSV tables")
	flag.StringVar(&cfg.GraphPath, "graph", cfg.GraphPath, "Path of the graph snapshot")
	flag.Parse()
	cfg.ImportData = *importOnly

	ctx := context.Background()

	db, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	importer := dataset.NewImporter(db, logger)

	// Handle --import flag: force a re-import and drop the stale snapshot.
	if cfg.ImportData {
		logger.Info("force importing schedule data")
		if err := importer.Import(ctx, cfg.DataDir); err != nil {
			logger.Error("schedule import failed", "error", err)
			os.Exit(1)
		}
		if transit.GraphExists(cfg.GraphPath) {
			os.Remove(cfg.GraphPath)
		}
		logger.Info("schedule import complete")
		return
	}

	if err := importer.EnsureData(ctx, cfg.DataDir); err != nil {
		logger.Error("failed to ensure schedule data", "error", err)
		os.Exit(1)
	}

	graph, err := buildOrLoadGraph(ctx, cfg, db, logger)
	if err != nil {
		logger.Error("failed to prepare graph", "error", err)
		os.Exit(1)
	}

	municipalities, err := db.LoadMunicipalities(ctx)
	if err != nil {
		logger.Error("failed to load municipality table", "error", err)
		os.Exit(1)
	}

	resolver := transit.NewResolver(graph, municipalities)
	planner := transit.NewPlanner(graph, resolver, logger)

	srv := server.New(cfg, graph, planner, logger)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildOrLoadGraph loads the graph snapshot when one exists, otherwise
// builds the graph from the schedule tables and saves a snapshot for the
// next start.
func buildOrLoadGraph(ctx context.Context, cfg *config.Config, db *storage.DB, logger *slog.Logger) (*transit.Graph, error) {
	if transit.GraphExists(cfg.GraphPath) {
		logger.Info("loading graph snapshot", "path", cfg.GraphPath)
		return transit.LoadGraph(cfg.GraphPath)
	}

	logger.Info("building graph from schedule tables")
	stations, err := db.LoadStations(ctx)
	if err != nil {
		return nil, err
	}
	events, err := db.LoadStopEvents(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := db.LoadTrips(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := db.LoadLines(ctx)
	if err != nil {
		return nil, err
	}

	graph, err := transit.Build(stations, events, trips, lines, logger)
	if err != nil {
		return nil, err
	}

	if err := transit.SaveGraph(graph, cfg.GraphPath); err != nil {
		// Not fatal: the graph is usable, only the next start pays again.
		logger.Warn("failed to save graph snapshot", "error", err)
	} else {
		logger.Info("graph snapshot saved", "path", cfg.GraphPath)
	}
	return graph, nil
}

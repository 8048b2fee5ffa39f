package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"railplan/internal/storage"
	"railplan/internal/transit"
)

// serviceTypes are the per-service subdirectories of the data directory.
// Their tables are concatenated and de-duplicated before import.
var serviceTypes = []string{"tgv", "ter", "intercites"}

// municipalitiesFile maps municipalities to the station labels within
// them. Semicolon-separated, unlike the schedule tables.
const municipalitiesFile = "liste-des-gares.csv"

// Importer loads the schedule CSV tables into SQLite.
type Importer struct {
	db     *storage.DB
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(db *storage.DB, logger *slog.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// EnsureData imports the schedule tables if the database is empty.
// Called on startup.
func (imp *Importer) EnsureData(ctx context.Context, dir string) error {
	if imp.db.HasData(ctx) {
		imp.logger.Info("schedule data already present")
		return nil
	}
	imp.logger.Info("no schedule data found, performing initial import")
	return imp.Import(ctx, dir)
}

// Import loads every schedule table from the data directory into SQLite.
// The whole operation runs in a single transaction for atomicity.
func (imp *Importer) Import(ctx context.Context, dir string) error {
	start := time.Now()

	tx, err := imp.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := imp.clearTables(ctx, tx); err != nil {
		return err
	}

	for _, service := range serviceTypes {
		serviceDir := filepath.Join(dir, service)
		if _, err := os.Stat(serviceDir); err != nil {
			return fmt.Errorf("service directory %s: %w", serviceDir, err)
		}
		if err := imp.importService(ctx, tx, serviceDir); err != nil {
			return fmt.Errorf("import %s: %w", service, err)
		}
	}

	if err := imp.importMunicipalities(ctx, tx, filepath.Join(dir, municipalitiesFile)); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO dataset_metadata (key, value) VALUES ('imported_at', ?)`, now); err != nil {
		return fmt.Errorf("set imported_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	imp.logger.Info("schedule import complete",
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func (imp *Importer) clearTables(ctx context.Context, tx *sql.Tx) error {
	tables := []string{
		"stop_events", "trips", "lines", "stations",
		"municipality_stations", "dataset_metadata",
	}
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", t)); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}
	return nil
}

// importService loads one service type's tables. Rows already imported
// from another service type are skipped via INSERT OR IGNORE, which is
// how duplicates across the tgv/ter/intercites extracts are collapsed.
func (imp *Importer) importService(ctx context.Context, tx *sql.Tx, dir string) error {
	if err := imp.importStations(ctx, tx, filepath.Join(dir, "stops.csv")); err != nil {
		return err
	}
	if err := imp.importLines(ctx, tx, filepath.Join(dir, "routes.csv")); err != nil {
		return err
	}
	if err := imp.importTrips(ctx, tx, filepath.Join(dir, "trips.csv")); err != nil {
		return err
	}
	return imp.streamStopEvents(ctx, tx, filepath.Join(dir, "stop_times.csv"))
}

func (imp *Importer) importStations(ctx context.Context, tx *sql.Tx, path string) error {
	records, err := ParseFile[StationRecord](path, ',')
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO stations (station_id, station_name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare stations: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.StopID, r.StopName); err != nil {
			return fmt.Errorf("insert station %s: %w", r.StopID, err)
		}
	}
	imp.logger.Info("imported stations", "path", filepath.Base(path), "count", len(records))
	return nil
}

func (imp *Importer) importLines(ctx context.Context, tx *sql.Tx, path string) error {
	records, err := ParseFile[LineRecord](path, ',')
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO lines (line_id, line_name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare lines: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.RouteID, r.RouteLongName); err != nil {
			return fmt.Errorf("insert line %s: %w", r.RouteID, err)
		}
	}
	imp.logger.Info("imported lines", "count", len(records))
	return nil
}

func (imp *Importer) importTrips(ctx context.Context, tx *sql.Tx, path string) error {
	records, err := ParseFile[TripRecord](path, ',')
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO trips (trip_id, line_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare trips: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.TripID, r.RouteID); err != nil {
			return fmt.Errorf("insert trip %s: %w", r.TripID, err)
		}
	}
	imp.logger.Info("imported trips", "count", len(records))
	return nil
}

// streamStopEvents reads stop_times.csv row by row, converting clock
// strings to seconds as they go in. Conversion keeps hours past 24 so
// trips crossing midnight stay ordered.
func (imp *Importer) streamStopEvents(ctx context.Context, tx *sql.Tx, path string) error {
	streamer, err := OpenStream[StopTimeRecord](path, ',')
	if err != nil {
		return err
	}
	defer streamer.Close()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO stop_events
		 (trip_id, station_id, arrival_time, departure_time, stop_sequence)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare stop_events: %w", err)
	}
	defer stmt.Close()

	count := 0
	var rec StopTimeRecord
	for {
		err := streamer.Next(&rec)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read stop_times row %d: %w", count, err)
		}

		arrival, err := transit.ParseClock(rec.ArrivalTime)
		if err != nil {
			return fmt.Errorf("stop_times row %d: %w", count, err)
		}
		departure, err := transit.ParseClock(rec.DepartureTime)
		if err != nil {
			return fmt.Errorf("stop_times row %d: %w", count, err)
		}
		sequence, err := strconv.Atoi(strings.TrimSpace(rec.StopSequence))
		if err != nil {
			return fmt.Errorf("stop_times row %d: bad stop_sequence %q", count, rec.StopSequence)
		}

		if _, err := stmt.ExecContext(ctx, rec.TripID, rec.StopID, arrival, departure, sequence); err != nil {
			return fmt.Errorf("insert stop_event row %d: %w", count, err)
		}
		count++

		if count%500000 == 0 {
			imp.logger.Info("importing stop events", "rows", count)
		}
	}

	imp.logger.Info("imported stop events", "count", count)
	return nil
}

// importMunicipalities loads the semicolon-separated station directory.
// Hyphens in station labels are flattened to spaces so labels match the
// station display names used in the graph.
func (imp *Importer) importMunicipalities(ctx context.Context, tx *sql.Tx, path string) error {
	records, err := ParseFile[MunicipalityRecord](path, ';')
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO municipality_stations (municipality, station_label) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare municipality_stations: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		municipality := strings.TrimSpace(r.Municipality)
		label := strings.ReplaceAll(strings.TrimSpace(r.StationLabel), "-", " ")
		if municipality == "" || label == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, municipality, label); err != nil {
			return fmt.Errorf("insert municipality %s: %w", municipality, err)
		}
	}
	imp.logger.Info("imported municipality stations", "count", len(records))
	return nil
}

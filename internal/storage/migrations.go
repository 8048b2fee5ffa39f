package storage

import "fmt"

// migrate creates the schedule schema if it doesn't exist.
func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Info("database migrations applied")
	return nil
}

var migrations = []string{
	// Stations
	`CREATE TABLE IF NOT EXISTS stations (
		station_id   TEXT PRIMARY KEY,
		station_name TEXT NOT NULL
	)`,

	// Service lines
	`CREATE TABLE IF NOT EXISTS lines (
		line_id   TEXT PRIMARY KEY,
		line_name TEXT NOT NULL
	)`,

	// Trips
	`CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		line_id TEXT NOT NULL REFERENCES lines(line_id)
	)`,

	// Stop events. Times are seconds since midnight, converted once at
	// ingestion; values above 86400 are trips crossing midnight.
	`CREATE TABLE IF NOT EXISTS stop_events (
		trip_id        TEXT NOT NULL REFERENCES trips(trip_id),
		station_id     TEXT NOT NULL REFERENCES stations(station_id),
		arrival_time   INTEGER NOT NULL,
		departure_time INTEGER NOT NULL,
		stop_sequence  INTEGER NOT NULL,
		PRIMARY KEY (trip_id, stop_sequence)
	)`,

	// Municipality -> station label fragments
	`CREATE TABLE IF NOT EXISTS municipality_stations (
		municipality  TEXT NOT NULL,
		station_label TEXT NOT NULL,
		PRIMARY KEY (municipality, station_label)
	)`,

	// Import bookkeeping
	`CREATE TABLE IF NOT EXISTS dataset_metadata (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stop_events_trip
		ON stop_events(trip_id, stop_sequence)`,
}

package storage

import (
	"context"
	"fmt"
	"strings"

	"railplan/internal/transit"
)

// LoadStations returns every station row.
func (db *DB) LoadStations(ctx context.Context) ([]transit.Station, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT station_id, station_name FROM stations`)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var stations []transit.Station
	for rows.Next() {
		var s transit.Station
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// LoadStopEvents returns every stop event ordered by trip and sequence.
func (db *DB) LoadStopEvents(ctx context.Context) ([]transit.StopEvent, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT trip_id, station_id, arrival_time, departure_time, stop_sequence
		 FROM stop_events
		 ORDER BY trip_id, stop_sequence`)
	if err != nil {
		return nil, fmt.Errorf("query stop events: %w", err)
	}
	defer rows.Close()

	var events []transit.StopEvent
	for rows.Next() {
		var ev transit.StopEvent
		if err := rows.Scan(&ev.TripID, &ev.StationID, &ev.Arrival, &ev.Departure, &ev.Sequence); err != nil {
			return nil, fmt.Errorf("scan stop event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LoadTrips returns the trip-to-line mapping.
func (db *DB) LoadTrips(ctx context.Context) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT trip_id, line_id FROM trips`)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer rows.Close()

	trips := make(map[string]string)
	for rows.Next() {
		var tripID, lineID string
		if err := rows.Scan(&tripID, &lineID); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips[tripID] = lineID
	}
	return trips, rows.Err()
}

// LoadLines returns the line-to-display-name mapping.
func (db *DB) LoadLines(ctx context.Context) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT line_id, line_name FROM lines`)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[string]string)
	for rows.Next() {
		var lineID, name string
		if err := rows.Scan(&lineID, &name); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		lines[lineID] = name
	}
	return lines, rows.Err()
}

// LoadMunicipalities returns the municipality-to-station-label table with
// uppercased municipality keys, ready for case-insensitive resolution.
func (db *DB) LoadMunicipalities(ctx context.Context) (map[string][]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT municipality, station_label FROM municipality_stations`)
	if err != nil {
		return nil, fmt.Errorf("query municipalities: %w", err)
	}
	defer rows.Close()

	municipalities := make(map[string][]string)
	for rows.Next() {
		var municipality, label string
		if err := rows.Scan(&municipality, &label); err != nil {
			return nil, fmt.Errorf("scan municipality: %w", err)
		}
		key := strings.ToUpper(strings.TrimSpace(municipality))
		municipalities[key] = append(municipalities[key], label)
	}
	return municipalities, rows.Err()
}

package dataset

// Records below mirror the source schedule tables column-for-column.
// Values stay strings at this boundary; conversion to typed fields
// happens once, during import.

type StationRecord struct {
	StopID   string `csv:"stop_id"`
	StopName string `csv:"stop_name"`
}

type StopTimeRecord struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  string `csv:"stop_sequence"`
}

type TripRecord struct {
	TripID  string `csv:"trip_id"`
	RouteID string `csv:"route_id"`
}

type LineRecord struct {
	RouteID       string `csv:"route_id"`
	RouteLongName string `csv:"route_long_name"`
}

// MunicipalityRecord is one row of the national station directory,
// mapping a municipality to a station label within it.
type MunicipalityRecord struct {
	Municipality string `csv:"COMMUNE"`
	StationLabel string `csv:"LIBELLE"`
}

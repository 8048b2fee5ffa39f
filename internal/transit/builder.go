package transit

import (
	"fmt"
	"log/slog"
	"sort"
)

// TransferPrefix marks the service label of an edge that represents a
// change of trip rather than a scheduled movement.
const TransferPrefix = "Transfer: "

// StopEvent is one timed visit of a trip to a station, used only during
// graph construction. Arrival and Departure are seconds since midnight
// and may exceed 24h for trips crossing midnight.
type StopEvent struct {
	TripID    string
	StationID string
	Arrival   int
	Departure int
	Sequence  int
}

// InconsistencyError reports a stop event referencing a trip or line that
// is missing from the reference tables. The dataset is assumed
// pre-validated, so this aborts graph construction.
type InconsistencyError struct {
	TripID string
	LineID string
}

func (e *InconsistencyError) Error() string {
	if e.LineID != "" {
		return fmt.Sprintf("dataset inconsistency: line %q referenced by trip %q not found", e.LineID, e.TripID)
	}
	return fmt.Sprintf("dataset inconsistency: trip %q not found", e.TripID)
}

// Build assembles the station graph from the schedule tables.
//
// Events are walked in a single pass ordered by (trip, sequence) across the
// whole dataset. Consecutive events of the same trip become movement edges
// weighted by arrival minus previous departure, kept only when strictly
// positive. At a trip boundary the trailing stop of the previous trip is
// connected to the leading stop of the next trip in iteration order with a
// transfer edge, whether or not the two stations coincide.
//
// lineByTrip maps trip ID to line ID, lineNames maps line ID to the
// human-readable service designation.
func Build(stations []Station, events []StopEvent, lineByTrip map[string]string, lineNames map[string]string, logger *slog.Logger) (*Graph, error) {
	g := NewGraph()
	for _, s := range stations {
		g.AddStation(s)
	}

	ordered := make([]StopEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TripID != ordered[j].TripID {
			return ordered[i].TripID < ordered[j].TripID
		}
		return ordered[i].Sequence < ordered[j].Sequence
	})

	serviceName := func(tripID string) (string, error) {
		lineID, ok := lineByTrip[tripID]
		if !ok {
			return "", &InconsistencyError{TripID: tripID}
		}
		name, ok := lineNames[lineID]
		if !ok {
			return "", &InconsistencyError{TripID: tripID, LineID: lineID}
		}
		return name, nil
	}

	var prev *StopEvent
	for i := range ordered {
		ev := ordered[i]

		if prev != nil && prev.TripID == ev.TripID {
			if prev.Sequence < ev.Sequence {
				travel := ev.Arrival - prev.Departure
				if travel > 0 {
					name, err := serviceName(ev.TripID)
					if err != nil {
						return nil, err
					}
					g.AddEdge(Edge{
						From:          prev.StationID,
						To:            ev.StationID,
						TravelSeconds: travel,
						TripID:        ev.TripID,
						ServiceLabel:  name,
					})
				}
			}
		} else if prev != nil {
			name, err := serviceName(ev.TripID)
			if err != nil {
				return nil, err
			}
			travel := ev.Arrival - prev.Departure
			if travel < 0 {
				travel = 0
			}
			g.AddEdge(Edge{
				From:          prev.StationID,
				To:            ev.StationID,
				TravelSeconds: travel,
				TripID:        prev.TripID,
				ServiceLabel:  TransferPrefix + name,
				Transfer:      true,
			})
		}

		prev = &ordered[i]
	}

	logger.Info("graph built",
		"stations", len(g.Stations),
		"edges", g.EdgeCount(),
		"stop_events", len(ordered),
	)
	return g, nil
}

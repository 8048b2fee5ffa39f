package transit

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Planner chains shortest-route queries across an ordered list of cities.
type Planner struct {
	graph    *Graph
	resolver *Resolver
	logger   *slog.Logger
}

// NewPlanner creates a Planner.
func NewPlanner(g *Graph, resolver *Resolver, logger *slog.Logger) *Planner {
	return &Planner{graph: g, resolver: resolver, logger: logger}
}

// LegResult is the outcome of one departure-to-arrival leg: either a
// populated itinerary or an error message.
type LegResult struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Itinerary *Itinerary `json:"itinerary,omitempty"`
	Err       string     `json:"error,omitempty"`
}

// Plan computes one leg per consecutive city pair: departure to first
// waypoint, waypoint to waypoint, and finally to the arrival city. Each
// leg independently picks the fastest itinerary over every combination of
// candidate departure and arrival stations. Legs that fail leave an error
// marker in place and never abort the remaining legs, so callers can
// render partial journeys with explicit gaps.
//
// The chain is greedy: each leg is optimized on its own, and the winning
// station for one leg becomes a fixed constraint on the next. The
// concatenation is therefore not guaranteed to be the globally fastest
// multi-leg journey.
func (p *Planner) Plan(cities []string) ([]LegResult, []string, error) {
	if len(cities) < 2 {
		return nil, nil, fmt.Errorf("itinerary needs at least a departure and an arrival city, got %d", len(cities))
	}

	legs := make([]LegResult, 0, len(cities)-1)
	var legErrors []string

	for i := 0; i < len(cities)-1; i++ {
		leg := p.planLeg(cities[i], cities[i+1])
		if leg.Err != "" {
			legErrors = append(legErrors, leg.Err)
		}
		legs = append(legs, leg)
	}

	p.logger.Info("itinerary planned", "cities", len(cities), "legs", len(legs), "failed_legs", len(legErrors))
	return legs, legErrors, nil
}

// planLeg resolves both cities and keeps the fastest itinerary over the
// candidate station cross product.
func (p *Planner) planLeg(from, to string) LegResult {
	leg := LegResult{From: from, To: to}

	departures := p.resolver.Stations(from)
	if len(departures) == 0 {
		leg.Err = "No station found for " + from
		return leg
	}
	arrivals := p.resolver.Stations(to)
	if len(arrivals) == 0 {
		leg.Err = "No station found for " + to
		return leg
	}

	var best *Itinerary
	bestSeconds := 0
	for _, dep := range departures {
		for _, arr := range arrivals {
			it, err := p.graph.ShortestRoute(dep, arr)
			if err != nil {
				if errors.Is(err, ErrNoPath) {
					continue
				}
				leg.Err = err.Error()
				return leg
			}
			secs := comparableSeconds(it.Duration)
			if best == nil || secs < bestSeconds {
				best = it
				bestSeconds = secs
			}
		}
	}

	if best == nil {
		leg.Err = "No route found"
		return leg
	}
	leg.Itinerary = best
	return leg
}

// comparableSeconds reads only the hours and minutes of a rendered
// "HH:MM:SS" duration. Candidate itineraries within the same minute
// compare equal, and ties keep the first candidate in iteration order.
func comparableSeconds(duration string) int {
	parts := strings.SplitN(duration, ":", 3)
	if len(parts) < 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*3600 + m*60
}

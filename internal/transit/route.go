package transit

import (
	"container/heap"
	"errors"
	"fmt"
)

// ErrNoPath signals that no sequence of movements connects two stations.
// It is an expected outcome, not a failure.
var ErrNoPath = errors.New("no path between stations")

// transferPenaltySeconds is added to the reported duration for every
// change of trip along a route. It is applied when summarizing the path,
// not during path selection, so the chosen route minimizes pure travel
// time only.
const transferPenaltySeconds = 600

// Segment is one traversed edge rendered for output.
type Segment struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Service string `json:"service"`
}

// Itinerary is the rendered result of one shortest-route query.
type Itinerary struct {
	Segments  []Segment `json:"segments"`
	Duration  string    `json:"duration"` // HH:MM:SS, hours may exceed 24
	Transfers []string  `json:"transfers"`
}

// ShortestRoute computes the minimum-travel-time route between two station
// IDs and renders it as an itinerary. Returns ErrNoPath when the
// destination is unreachable or either endpoint is unknown.
func (g *Graph) ShortestRoute(from, to string) (*Itinerary, error) {
	if _, ok := g.Stations[from]; !ok {
		return nil, ErrNoPath
	}
	if _, ok := g.Stations[to]; !ok {
		return nil, ErrNoPath
	}

	path, err := g.shortestPath(from, to)
	if err != nil {
		return nil, err
	}
	return g.summarize(path), nil
}

// shortestPath runs Dijkstra from one station, stopping at the
// destination, and returns the traversed edges in order. Every parallel
// edge is relaxed individually so the cheapest of concurrent trips wins.
func (g *Graph) shortestPath(from, to string) ([]Edge, error) {
	if from == to {
		return nil, nil
	}

	dist := map[string]int{from: 0}
	prevEdge := make(map[string]Edge)
	visited := make(map[string]bool)

	pq := &edgeQueue{}
	heap.Init(pq)
	heap.Push(pq, &queueItem{station: from, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		current := item.station
		if current == to {
			break
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, e := range g.Adjacency[current] {
			candidate := dist[current] + e.TravelSeconds
			if best, ok := dist[e.To]; !ok || candidate < best {
				dist[e.To] = candidate
				prevEdge[e.To] = e
				heap.Push(pq, &queueItem{station: e.To, priority: candidate})
			}
		}
	}

	if _, ok := dist[to]; !ok {
		return nil, ErrNoPath
	}

	var path []Edge
	for current := to; current != from; {
		e, ok := prevEdge[current]
		if !ok {
			return nil, ErrNoPath
		}
		path = append(path, e)
		current = e.From
	}
	// Reverse into travel order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// summarize walks a path edge by edge, recomputing the total duration with
// the fixed transfer penalty for every trip change and rendering each edge
// as a segment.
func (g *Graph) summarize(path []Edge) *Itinerary {
	it := &Itinerary{
		Segments:  make([]Segment, 0, len(path)),
		Transfers: []string{},
	}

	total := 0
	prevTrip := ""
	for i, e := range path {
		if i > 0 && e.TripID != prevTrip {
			total += transferPenaltySeconds
			it.Transfers = append(it.Transfers, fmt.Sprintf("Transfer: %s -> %s", prevTrip, e.TripID))
		}
		total += e.TravelSeconds
		prevTrip = e.TripID

		it.Segments = append(it.Segments, Segment{
			From:    g.StationName(e.From),
			To:      g.StationName(e.To),
			Service: e.ServiceLabel,
		})
	}

	it.Duration = FormatDuration(total)
	return it
}

type queueItem struct {
	station  string
	priority int
}

type edgeQueue []*queueItem

func (q edgeQueue) Len() int            { return len(q) }
func (q edgeQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q edgeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *edgeQueue) Push(x interface{}) { *q = append(*q, x.(*queueItem)) }
func (q *edgeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

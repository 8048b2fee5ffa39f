package transit

// Station is a graph node representing one stop location.
type Station struct {
	ID   string
	Name string
}

// Edge is a directed movement between two stations. Parallel edges between
// the same pair of stations are kept: different trips may connect the same
// two stations with different timings.
type Edge struct {
	From          string
	To            string
	TravelSeconds int
	TripID        string
	ServiceLabel  string
	Transfer      bool
}

// Graph is a directed multigraph of stations and timed movements.
// It is built once at startup and never mutated afterwards, so all
// query methods are safe for concurrent readers.
type Graph struct {
	Stations  map[string]Station
	Adjacency map[string][]Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Stations:  make(map[string]Station),
		Adjacency: make(map[string][]Edge),
	}
}

// AddStation registers a station node. The last write wins on duplicate IDs.
func (g *Graph) AddStation(s Station) {
	g.Stations[s.ID] = s
}

// AddEdge appends a directed edge. Existing edges between the same pair
// are retained.
func (g *Graph) AddEdge(e Edge) {
	g.Adjacency[e.From] = append(g.Adjacency[e.From], e)
}

// StationName returns the display name for a station ID, or the ID itself
// if the station is unknown.
func (g *Graph) StationName(id string) string {
	if s, ok := g.Stations[id]; ok {
		return s.Name
	}
	return id
}

// EdgeCount returns the total number of edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.Adjacency {
		n += len(edges)
	}
	return n
}

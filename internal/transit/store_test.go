package transit

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func TestGraphStoreRoundTrip(t *testing.T) {
	g := NewGraph()
	g.AddStation(Station{ID: "a", Name: "Gare A"})
	g.AddStation(Station{ID: "b", Name: "Gare B"})
	g.AddEdge(Edge{From: "a", To: "b", TravelSeconds: 1800, TripID: "t1", ServiceLabel: "TGV 6001"})
	g.AddEdge(Edge{From: "a", To: "b", TravelSeconds: 2400, TripID: "t2", ServiceLabel: "TER 8860"})
	g.AddEdge(Edge{From: "b", To: "a", TravelSeconds: 0, TripID: "t1", ServiceLabel: TransferPrefix + "TER 8860", Transfer: true})

	path := filepath.Join(t.TempDir(), "snapshot.gob")

	if GraphExists(path) {
		t.Fatal("GraphExists true before save")
	}
	if err := SaveGraph(g, path); err != nil {
		t.Fatalf("SaveGraph: %v", err)
	}
	if !GraphExists(path) {
		t.Fatal("GraphExists false after save")
	}

	loaded, err := LoadGraph(path)
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}

	if !reflect.DeepEqual(loaded.Stations, g.Stations) {
		t.Errorf("stations differ after round trip:\n got %v\nwant %v", loaded.Stations, g.Stations)
	}
	if !reflect.DeepEqual(edgeMultiset(loaded), edgeMultiset(g)) {
		t.Errorf("edge multisets differ after round trip:\n got %v\nwant %v", edgeMultiset(loaded), edgeMultiset(g))
	}
}

func TestLoadGraphMissingFile(t *testing.T) {
	if _, err := LoadGraph(filepath.Join(t.TempDir(), "absent.gob")); err == nil {
		t.Error("expected error loading a missing snapshot")
	}
}

func TestGraphExistsOnDirectory(t *testing.T) {
	if GraphExists(t.TempDir()) {
		t.Error("GraphExists must be false for a directory")
	}
}

// edgeMultiset renders every edge, including parallel ones, in a
// canonical order for comparison.
func edgeMultiset(g *Graph) []string {
	var all []string
	for _, edges := range g.Adjacency {
		for _, e := range edges {
			all = append(all, fmt.Sprintf("%s>%s w=%d trip=%s label=%s transfer=%t",
				e.From, e.To, e.TravelSeconds, e.TripID, e.ServiceLabel, e.Transfer))
		}
	}
	sort.Strings(all)
	return all
}

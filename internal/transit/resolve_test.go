package transit

import (
	"reflect"
	"testing"
)

func resolverFixture() *Resolver {
	g := NewGraph()
	g.AddStation(Station{ID: "87391003", Name: "Paris Montparnasse Hall 1 - 2"})
	g.AddStation(Station{ID: "87547000", Name: "Paris Gare de Lyon"})
	g.AddStation(Station{ID: "87722025", Name: "Lyon Part Dieu"})
	g.AddStation(Station{ID: "87594002", Name: "Briouze"})

	municipalities := map[string][]string{
		"PARIS":   {"Paris Montparnasse", "Paris Gare de Lyon"},
		"LYON":    {"Lyon Part Dieu"},
		"BRIOUZE": {"Halte Ferroviaire"}, // label matches no station name
	}
	return NewResolver(g, municipalities)
}

func TestResolverFindsStationsByLabel(t *testing.T) {
	r := resolverFixture()

	got := r.Stations("Paris")
	want := []string{"87391003", "87547000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stations(Paris) = %v, want %v", got, want)
	}
}

func TestResolverIsCaseInsensitive(t *testing.T) {
	r := resolverFixture()

	lower := r.Stations("paris")
	upper := r.Stations("PARIS")
	mixed := r.Stations("PaRiS")
	if !reflect.DeepEqual(lower, upper) || !reflect.DeepEqual(lower, mixed) {
		t.Errorf("case variants disagree: %v / %v / %v", lower, upper, mixed)
	}
	if len(lower) == 0 {
		t.Fatal("expected candidates for paris")
	}
}

func TestResolverLabelIsSubstringMatch(t *testing.T) {
	r := resolverFixture()

	// "Lyon Part Dieu" label must not match "Paris Gare de Lyon" even
	// though both contain "Lyon".
	got := r.Stations("Lyon")
	want := []string{"87722025"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stations(Lyon) = %v, want %v", got, want)
	}
}

func TestResolverFallsBackToMunicipalityName(t *testing.T) {
	r := resolverFixture()

	// Briouze's station label matches nothing, but the municipality name
	// itself appears in a station name.
	got := r.Stations("briouze")
	want := []string{"87594002"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stations(briouze) = %v, want %v", got, want)
	}
}

func TestResolverUnknownMunicipality(t *testing.T) {
	r := resolverFixture()

	if got := r.Stations("Atlantis"); len(got) != 0 {
		t.Errorf("Stations(Atlantis) = %v, want empty", got)
	}
}

func TestResolverTrimsInput(t *testing.T) {
	r := resolverFixture()

	if got := r.Stations("  lyon  "); len(got) != 1 {
		t.Errorf("Stations with surrounding spaces = %v, want one candidate", got)
	}
}

package dataset

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"railplan/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixtureDataDir lays out a minimal schedule dataset. The same station
// appears in two service types to exercise de-duplication.
func fixtureDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"tgv/stops.csv":      "stop_id,stop_name\ns1,Paris Gare de Lyon\ns2,Lyon Part Dieu\n",
		"tgv/routes.csv":     "route_id,route_long_name\nr1,TGV 6001\n",
		"tgv/trips.csv":      "trip_id,route_id\nt1,r1\n",
		"tgv/stop_times.csv": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\nt1,08:00:00,08:00:00,s1,0\nt1,10:00:00,10:00:00,s2,1\n",

		"ter/stops.csv":      "stop_id,stop_name\ns2,Lyon Part Dieu\ns3,Valence Ville\n",
		"ter/routes.csv":     "route_id,route_long_name\nr2,TER 8860\n",
		"ter/trips.csv":      "trip_id,route_id\nt2,r2\n",
		"ter/stop_times.csv": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\nt2,25:10:00,25:10:00,s2,0\nt2,26:00:00,26:00:00,s3,1\n",

		"intercites/stops.csv":      "stop_id,stop_name\n",
		"intercites/routes.csv":     "route_id,route_long_name\n",
		"intercites/trips.csv":      "trip_id,route_id\n",
		"intercites/stop_times.csv": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n",

		"liste-des-gares.csv": "COMMUNE;LIBELLE\nParis;Paris-Gare-de-Lyon\nLyon;Lyon Part Dieu\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), discardLogger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	imp := NewImporter(db, discardLogger())
	if err := imp.Import(ctx, fixtureDataDir(t)); err != nil {
		t.Fatalf("Import: %v", err)
	}

	if !db.HasData(ctx) {
		t.Fatal("HasData false after import")
	}

	stations, err := db.LoadStations(ctx)
	if err != nil {
		t.Fatalf("LoadStations: %v", err)
	}
	if len(stations) != 3 {
		t.Errorf("got %d stations, want 3 (s2 shared across service types must collapse)", len(stations))
	}

	events, err := db.LoadStopEvents(ctx)
	if err != nil {
		t.Fatalf("LoadStopEvents: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d stop events, want 4", len(events))
	}
	// Clock strings were converted once at ingestion; hours past 24 stay.
	var lateArrival int
	for _, ev := range events {
		if ev.TripID == "t2" && ev.Sequence == 0 {
			lateArrival = ev.Arrival
		}
	}
	if lateArrival != 90600 {
		t.Errorf("arrival for t2/0 = %d, want 90600 (25:10:00 kept past midnight)", lateArrival)
	}

	trips, err := db.LoadTrips(ctx)
	if err != nil {
		t.Fatalf("LoadTrips: %v", err)
	}
	if trips["t1"] != "r1" || trips["t2"] != "r2" {
		t.Errorf("trips = %v", trips)
	}

	lines, err := db.LoadLines(ctx)
	if err != nil {
		t.Fatalf("LoadLines: %v", err)
	}
	if lines["r1"] != "TGV 6001" {
		t.Errorf("lines = %v", lines)
	}

	municipalities, err := db.LoadMunicipalities(ctx)
	if err != nil {
		t.Fatalf("LoadMunicipalities: %v", err)
	}
	// Keys are uppercased, labels have hyphens flattened to spaces.
	labels := municipalities["PARIS"]
	if len(labels) != 1 || labels[0] != "Paris Gare de Lyon" {
		t.Errorf("PARIS labels = %v, want hyphen-flattened label", labels)
	}

	imported, err := db.GetMetadata(ctx, "imported_at")
	if err != nil || imported == "" {
		t.Errorf("imported_at metadata = %q, err %v", imported, err)
	}
}

func TestEnsureDataSkipsWhenPresent(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), discardLogger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	dir := fixtureDataDir(t)
	imp := NewImporter(db, discardLogger())
	if err := imp.EnsureData(ctx, dir); err != nil {
		t.Fatalf("EnsureData: %v", err)
	}

	// A second EnsureData against a now-missing directory must be a
	// no-op because the database already holds data.
	if err := imp.EnsureData(ctx, filepath.Join(dir, "gone")); err != nil {
		t.Errorf("EnsureData with data present: %v", err)
	}
}

func TestImportMissingServiceDir(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"), discardLogger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	imp := NewImporter(db, discardLogger())
	if err := imp.Import(ctx, t.TempDir()); err == nil {
		t.Error("expected error when a service directory is missing")
	}
}

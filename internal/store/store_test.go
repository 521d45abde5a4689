package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nbenitez/fuegos/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func testFeature(id string, areaHa float64, year int) models.FireFeature {
	fd := time.Date(year, 7, 15, 0, 0, 0, 0, time.UTC)
	return models.FireFeature{
		ID:          id,
		Country:     "ES",
		ProvinceRaw: "Ourense",
		ProvinceKey: "ourense",
		RegionCode:  "12",
		RegionName:  "Galicia",
		AreaHa:      &areaHa,
		FireDate:    &fd,
		FireYear:    year,
		Geometry:    []byte(`{"type":"Polygon","coordinates":[]}`),
	}
}

func TestInsertAndGetFeatures(t *testing.T) {
	store := setupTestStore(t)

	if err := store.InsertFeature(testFeature("f1", 120, 2025)); err != nil {
		t.Fatalf("InsertFeature: %v", err)
	}
	if err := store.InsertFeature(testFeature("f2", 45, 2025)); err != nil {
		t.Fatalf("InsertFeature: %v", err)
	}

	features, err := store.GetFeatures("ES", 2025)
	if err != nil {
		t.Fatalf("GetFeatures: %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("len(features) = %d, want 2", len(features))
	}
	if features[0].ID != "f1" {
		t.Errorf("features[0].ID = %q, want f1", features[0].ID)
	}
	if features[0].AreaHa == nil || *features[0].AreaHa != 120 {
		t.Errorf("AreaHa = %v, want 120", features[0].AreaHa)
	}
	if features[0].RegionCode != "12" {
		t.Errorf("RegionCode = %q, want 12", features[0].RegionCode)
	}
	if string(features[0].Geometry) == "" {
		t.Error("geometry not round-tripped")
	}
}

func TestInsertFeatureDuplicateID(t *testing.T) {
	store := setupTestStore(t)

	if err := store.InsertFeature(testFeature("dup", 50, 2025)); err != nil {
		t.Fatalf("InsertFeature: %v", err)
	}
	// Same id again: replay must not create a second row.
	if err := store.InsertFeature(testFeature("dup", 50, 2025)); err != nil {
		t.Fatalf("InsertFeature replay: %v", err)
	}

	n, err := store.CountFeatures("ES", 2025)
	if err != nil {
		t.Fatalf("CountFeatures: %v", err)
	}
	if n != 1 {
		t.Errorf("CountFeatures = %d, want 1", n)
	}
}

func TestInsertFeatureRefreshesRow(t *testing.T) {
	store := setupTestStore(t)

	if err := store.InsertFeature(testFeature("grow", 100, 2025)); err != nil {
		t.Fatalf("InsertFeature: %v", err)
	}
	// A later export reports the same perimeter with more burned area.
	grown := testFeature("grow", 500, 2025)
	lu := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	grown.LastUpdate = &lu
	if err := store.InsertFeature(grown); err != nil {
		t.Fatalf("InsertFeature replay: %v", err)
	}

	features, err := store.GetFeatures("ES", 2025)
	if err != nil {
		t.Fatalf("GetFeatures: %v", err)
	}
	if len(features) != 1 {
		t.Fatalf("len(features) = %d, want 1", len(features))
	}
	if features[0].AreaHa == nil || *features[0].AreaHa != 500 {
		t.Errorf("AreaHa = %v, want 500 (refreshed value)", features[0].AreaHa)
	}
	if features[0].LastUpdate == nil || !features[0].LastUpdate.Equal(lu) {
		t.Errorf("LastUpdate = %v, want %v", features[0].LastUpdate, lu)
	}
}

func TestNilAreaRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	f := testFeature("noarea", 0, 2025)
	f.AreaHa = nil
	if err := store.InsertFeature(f); err != nil {
		t.Fatalf("InsertFeature: %v", err)
	}

	features, err := store.GetFeatures("ES", 2025)
	if err != nil {
		t.Fatalf("GetFeatures: %v", err)
	}
	if len(features) != 1 {
		t.Fatalf("len(features) = %d, want 1", len(features))
	}
	if features[0].AreaHa != nil {
		t.Errorf("AreaHa = %v, want nil (null must survive the store)", *features[0].AreaHa)
	}
}

func TestGetFeaturesByYears(t *testing.T) {
	store := setupTestStore(t)

	for _, f := range []models.FireFeature{
		testFeature("y16", 100, 2016),
		testFeature("y20", 100, 2020),
		testFeature("y25", 100, 2025),
	} {
		if err := store.InsertFeature(f); err != nil {
			t.Fatalf("InsertFeature: %v", err)
		}
	}

	features, err := store.GetFeaturesByYears("ES", 2016, 2020)
	if err != nil {
		t.Fatalf("GetFeaturesByYears: %v", err)
	}
	if len(features) != 2 {
		t.Errorf("len(features) = %d, want 2", len(features))
	}
}

func TestUnmatchedAccumulates(t *testing.T) {
	store := setupTestStore(t)

	if err := store.RecordUnmatched("Mordor", 2); err != nil {
		t.Fatalf("RecordUnmatched: %v", err)
	}
	if err := store.RecordUnmatched("Mordor", 3); err != nil {
		t.Fatalf("RecordUnmatched: %v", err)
	}

	unmatched, err := store.GetUnmatched()
	if err != nil {
		t.Fatalf("GetUnmatched: %v", err)
	}
	if unmatched["Mordor"] != 5 {
		t.Errorf("Mordor occurrences = %d, want 5", unmatched["Mordor"])
	}
}

func TestRunHistory(t *testing.T) {
	store := setupTestStore(t)

	if run, err := store.LastRun(); err != nil || run != nil {
		t.Fatalf("LastRun on empty store = %v, %v", run, err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	err := store.InsertRun(models.RunSummary{
		StartedAt:   now,
		FinishedAt:  now.Add(time.Minute),
		FireYear:    2025,
		FeaturesIn:  100,
		FeaturesOut: 98,
		Unmatched:   2,
	})
	if err != nil {
		t.Fatalf("InsertRun: %v", err)
	}

	run, err := store.LastRun()
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if run == nil || run.FireYear != 2025 || run.FeaturesOut != 98 {
		t.Errorf("LastRun = %+v", run)
	}
}

package stats

import (
	"math"
	"testing"
	"time"

	"github.com/nbenitez/fuegos/internal/models"
)

func fireES(id, province, region, code string, areaHa float64, year int) models.FireFeature {
	var fd *time.Time
	if year != 0 {
		t := time.Date(year, 8, 1, 0, 0, 0, 0, time.UTC)
		fd = &t
	}
	return models.FireFeature{
		ID:          id,
		Country:     "ES",
		ProvinceKey: province,
		RegionCode:  code,
		RegionName:  region,
		AreaHa:      &areaHa,
		FireDate:    fd,
		FireYear:    year,
	}
}

func TestAggregateThreshold(t *testing.T) {
	features := []models.FireFeature{
		fireES("a", "ourense", "Galicia", "12", 10, 2025), // below threshold
		fireES("b", "ourense", "Galicia", "12", 45, 2025),
		{ID: "c", Country: "ES", ProvinceKey: "lugo", RegionCode: "12", RegionName: "Galicia"}, // nil area
	}

	rows := Aggregate(features, ByRegion, 30)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Count != 1 || rows[0].AreaHa != 45 {
		t.Errorf("row = %+v, want count 1 area 45", rows[0])
	}
}

func TestAggregateNilAreaExcludedAtAnyThreshold(t *testing.T) {
	features := []models.FireFeature{
		{ID: "n", Country: "ES", ProvinceKey: "madrid", RegionCode: "13", RegionName: "Madrid"},
	}
	if rows := Aggregate(features, ByRegion, 0); len(rows) != 0 {
		t.Errorf("nil-area feature leaked into aggregation at minHa=0: %+v", rows)
	}
	if rows := Aggregate(features, ByRegion, -100); len(rows) != 0 {
		t.Errorf("nil-area feature leaked into aggregation at negative minHa: %+v", rows)
	}
}

// Two occurrences of the same feature id in a group contribute once to the
// count and once to the area sum.
func TestAggregateDuplicateID(t *testing.T) {
	features := []models.FireFeature{
		fireES("X", "caceres", "Extremadura", "11", 50, 2025),
		fireES("X", "caceres", "Extremadura", "11", 50, 2025),
	}

	rows := Aggregate(features, ByRegion, 30)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Count != 1 {
		t.Errorf("Count = %d, want 1 (dedup by id)", rows[0].Count)
	}
	if rows[0].AreaHa != 50 {
		t.Errorf("AreaHa = %v, want 50 (dedup by id, not by occurrence)", rows[0].AreaHa)
	}
}

func TestAggregatePercentagesSumTo100(t *testing.T) {
	features := []models.FireFeature{
		fireES("1", "ourense", "Galicia", "12", 500, 2025),
		fireES("2", "caceres", "Extremadura", "11", 300, 2025),
		fireES("3", "leon", "Castilla y León", "07", 200, 2025),
	}

	rows := Aggregate(features, ByRegion, 30)
	var pct float64
	for _, r := range rows {
		pct += r.Pct
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", pct)
	}
}

func TestAggregateZeroGrandTotal(t *testing.T) {
	zero := 0.0
	features := []models.FireFeature{
		{ID: "z", Country: "ES", ProvinceKey: "madrid", RegionCode: "13", RegionName: "Madrid", AreaHa: &zero},
	}
	rows := Aggregate(features, ByRegion, 0)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Pct != 0 {
		t.Errorf("Pct = %v, want 0 when grand total is 0", rows[0].Pct)
	}
}

func TestAggregateSortByAreaDescending(t *testing.T) {
	features := []models.FireFeature{
		fireES("1", "madrid", "Madrid", "13", 40, 2025),
		fireES("2", "ourense", "Galicia", "12", 900, 2025),
		fireES("3", "caceres", "Extremadura", "11", 200, 2025),
	}

	rows := Aggregate(features, ByRegion, 30)
	want := []string{"Galicia", "Extremadura", "Madrid"}
	for i, r := range rows {
		if r.Key != want[i] {
			t.Errorf("rows[%d].Key = %q, want %q", i, r.Key, want[i])
		}
	}
}

func TestAggregateTimeSeriesSort(t *testing.T) {
	features := []models.FireFeature{
		fireES("1", "ourense", "Galicia", "12", 100, 2025),
		fireES("2", "caceres", "Extremadura", "11", 400, 2024),
		fireES("3", "leon", "Castilla y León", "07", 50, 2024),
	}

	rows := Aggregate(features, ByRegionYear, 30)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].Year != 2024 || rows[0].Key != "Castilla y León" {
		t.Errorf("rows[0] = %+v, want 2024/Castilla y León (year asc, key asc)", rows[0])
	}
	if rows[2].Year != 2025 {
		t.Errorf("rows[2].Year = %d, want 2025", rows[2].Year)
	}
}

func TestAggregateFeatureWithoutYearExcludedFromSeries(t *testing.T) {
	features := []models.FireFeature{
		fireES("1", "ourense", "Galicia", "12", 100, 0), // no fire date
	}
	if rows := Aggregate(features, ByRegionYear, 30); len(rows) != 0 {
		t.Errorf("feature without year leaked into time series: %+v", rows)
	}
}

func TestEvolutionTableDenseMatrix(t *testing.T) {
	features := []models.FireFeature{
		fireES("1", "ourense", "Galicia", "12", 1000, 2024),
		fireES("2", "ourense", "Galicia", "12", 2500, 2025),
	}

	table := EvolutionTable(features, 30, 2024, 2025)
	if len(table) != 3 {
		t.Fatalf("got %d rows, want header + 2 years", len(table))
	}
	if table[0][0] != "fireyear" {
		t.Errorf("header[0] = %q", table[0][0])
	}

	galicia := -1
	for i, col := range table[0] {
		if col == "Galicia" {
			galicia = i
		}
	}
	if galicia < 0 {
		t.Fatal("Galicia column missing")
	}
	if table[1][galicia] != "1000" || table[2][galicia] != "2500" {
		t.Errorf("Galicia column = %q/%q, want 1000/2500", table[1][galicia], table[2][galicia])
	}
	// Regions with no fires render as 0, not as absent columns.
	madrid := -1
	for i, col := range table[0] {
		if col == "Madrid" {
			madrid = i
		}
	}
	if table[1][madrid] != "0" {
		t.Errorf("Madrid 2024 = %q, want 0", table[1][madrid])
	}
}

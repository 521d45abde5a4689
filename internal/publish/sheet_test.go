package publish

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nbenitez/fuegos/internal/models"
)

func TestBuildSheetTable(t *testing.T) {
	rows := []models.AggregateRow{
		{Key: "Galicia", Count: 12, AreaHa: 5000, AreaKm2: 50, Pct: 62.5},
		{Key: "Extremadura", Count: 4, AreaHa: 3000, AreaKm2: 30, Pct: 37.5},
	}
	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	table := BuildSheetTable("CCAA", rows, now)
	if len(table) != 4 {
		t.Fatalf("len(table) = %d, want header + 2 rows + marker", len(table))
	}
	if table[0][0] != "CCAA" {
		t.Errorf("header = %v", table[0])
	}
	if table[1][0] != "Galicia" || table[1][1] != "12" || table[1][2] != "5000.00" {
		t.Errorf("row 1 = %v", table[1])
	}
	if table[1][3] != "50.00" || table[1][4] != "62.50" {
		t.Errorf("row 1 km2/pct = %v", table[1])
	}

	marker := table[3]
	if marker[0] != "Última actualización" {
		t.Errorf("marker row = %v", marker)
	}
	if marker[1] != "2025-08-30T12:00:00.000Z" {
		t.Errorf("marker timestamp = %q", marker[1])
	}
}

func TestWriteSheetJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "ccaa.json")

	payload := NewSheetPayload("autonomías 2025", [][]string{{"a", "b"}})
	if err := WriteSheetJSON(path, payload); err != nil {
		t.Fatalf("WriteSheetJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got models.SheetPayload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.SheetName != "autonomías 2025" || len(got.Data) != 1 {
		t.Errorf("payload = %+v", got)
	}
}

func TestWriteGeoJSONKeepsNulls(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ES_2025_fuegos.geojson")

	area := 45.0
	fd := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	features := []models.FireFeature{
		{
			ID: "1", Country: "ES", ProvinceRaw: "Ourense",
			AreaHa: &area, FireDate: &fd, FireYear: 2025,
			RegionName: "Galicia", RegionCode: "12",
			Geometry: []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`),
		},
		{ID: "2", Country: "ES", ProvinceRaw: "Lugo"}, // no area, no date
	}

	if err := WriteGeoJSON(path, features); err != nil {
		t.Fatalf("WriteGeoJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Type != "FeatureCollection" || len(doc.Features) != 2 {
		t.Fatalf("doc = %+v", doc)
	}

	p0 := doc.Features[0].Properties
	if p0["area_ha"] != 45.0 || p0["ccaa"] != "Galicia" || p0["fireyear"] != 2025.0 {
		t.Errorf("feature 0 properties = %v", p0)
	}
	p1 := doc.Features[1].Properties
	if v, present := p1["area_ha"]; !present || v != nil {
		t.Errorf("feature 1 area_ha = %v, want explicit null", v)
	}
	if v := p1["firedate"]; v != nil {
		t.Errorf("feature 1 firedate = %v, want null", v)
	}
}

func TestBridgePush(t *testing.T) {
	var got models.SheetPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sekrit" {
			t.Errorf("missing auth header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewBridgeClient(srv.URL, "sekrit")
	err := client.Push(NewSheetPayload("provincias 2025", [][]string{{"x"}}))
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got.SheetName != "provincias 2025" {
		t.Errorf("bridge received %+v", got)
	}
}

func TestBridgePushPermanentFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewBridgeClient(srv.URL, "")
	if err := client.Push(NewSheetPayload("x", nil)); err == nil {
		t.Fatal("expected error on 400")
	}
}

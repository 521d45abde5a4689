package publish

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nbenitez/fuegos/internal/models"
)

// WriteSheetJSON writes the bridge payload to disk, creating parent
// directories as needed.
func WriteSheetJSON(path string, payload models.SheetPayload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sheet payload: %w", err)
	}
	return writeFile(path, data)
}

// WriteCSV writes a row-oriented table as CSV.
func WriteCSV(path string, table [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(table); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}

// geoJSON output shapes, matching the attribute names the downstream chart
// scripts expect (prov/mun/ccaa/fireyear).
type outCollection struct {
	Type     string       `json:"type"`
	Features []outFeature `json:"features"`
}

type outFeature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties outProps        `json:"properties"`
}

type outProps struct {
	ID         string   `json:"id"`
	Country    string   `json:"country"`
	Prov       string   `json:"prov"`
	Mun        string   `json:"mun,omitempty"`
	Class      string   `json:"class,omitempty"`
	AreaHa     *float64 `json:"area_ha"`
	FireDate   *string  `json:"firedate"`
	LastUpdate *string  `json:"lastupdate,omitempty"`
	FireYear   *int     `json:"fireyear"`
	CCAA       string   `json:"ccaa,omitempty"`
	CCAACode   string   `json:"ccaa_code,omitempty"`
}

// WriteGeoJSON serializes cleaned features for one country/year partition.
// Geometry passes through byte-for-byte; null area and dates stay null so
// downstream consumers can tell "unknown" from zero.
func WriteGeoJSON(path string, features []models.FireFeature) error {
	out := outCollection{Type: "FeatureCollection", Features: make([]outFeature, 0, len(features))}
	for _, f := range features {
		geom := f.Geometry
		if len(geom) == 0 {
			geom = json.RawMessage("null")
		}
		props := outProps{
			ID:       f.ID,
			Country:  f.Country,
			Prov:     f.ProvinceRaw,
			Mun:      f.Municipality,
			Class:    f.Class,
			AreaHa:   f.AreaHa,
			CCAA:     f.RegionName,
			CCAACode: f.RegionCode,
		}
		if f.FireDate != nil {
			s := isoZ(*f.FireDate)
			props.FireDate = &s
		}
		if f.LastUpdate != nil {
			s := isoZ(*f.LastUpdate)
			props.LastUpdate = &s
		}
		if f.FireYear != 0 {
			y := f.FireYear
			props.FireYear = &y
		}
		out.Features = append(out.Features, outFeature{Type: "Feature", Geometry: geom, Properties: props})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// CleanedGeoJSONName is the conventional per-country/year partition name,
// ES_2025_fuegos.geojson.
func CleanedGeoJSONName(country string, year int) string {
	return fmt.Sprintf("%s_%d_fuegos.geojson", country, year)
}

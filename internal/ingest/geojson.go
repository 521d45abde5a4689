package ingest

import (
	"encoding/json"
	"fmt"
	"os"
)

// RawFeature is one record as it arrives from EFFIS: opaque geometry plus a
// property bag whose key casing varies between export vintages (area_ha vs
// AREA_HA).
type RawFeature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// FeatureCollection is the top-level GeoJSON document.
type FeatureCollection struct {
	Type     string       `json:"type"`
	Features []RawFeature `json:"features"`
}

// ParseCollection decodes and validates a GeoJSON document. A document that
// is not a FeatureCollection, or that carries no features, is a structural
// failure: the batch cannot proceed.
func ParseCollection(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("feature collection is empty")
	}
	return &fc, nil
}

// ReadCollection loads and validates a GeoJSON file from disk.
func ReadCollection(path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	fc, err := ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

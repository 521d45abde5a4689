package models

import (
	"encoding/json"
	"time"
)

// FireFeature is one cleaned EFFIS burned-area perimeter. Immutable once
// produced by the cleaner.
type FireFeature struct {
	ID           string
	Country      string
	ProvinceRaw  string
	ProvinceKey  string // canonical lookup key, empty when no province
	Municipality string
	Class        string
	AreaHa       *float64 // nil when the source value was absent or unparseable
	FireDate     *time.Time
	LastUpdate   *time.Time
	FireYear     int // 0 when FireDate is nil
	RegionCode   string
	RegionName   string

	// Geometry is carried through untouched for GeoJSON output.
	Geometry json.RawMessage
}

// HasArea reports whether the feature carries a usable burned-area value.
func (f FireFeature) HasArea() bool {
	return f.AreaHa != nil
}

// AggregateRow is one group in an aggregate report.
type AggregateRow struct {
	Key     string
	Year    int // 0 for single-dimension reports
	Count   int
	AreaHa  float64
	AreaKm2 float64
	Pct     float64
}

// SheetPayload is the row-oriented table handed to the spreadsheet bridge,
// matching the {"sheetName", "data"} JSON the bridge consumes.
type SheetPayload struct {
	SheetName string     `json:"sheetName"`
	Data      [][]string `json:"data"`
}

// RunSummary records one pipeline execution for the runs table.
type RunSummary struct {
	ID          int64
	StartedAt   time.Time
	FinishedAt  time.Time
	FireYear    int
	FeaturesIn  int
	FeaturesOut int
	Unmatched   int
}

package clean

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nbenitez/fuegos/internal/geo"
	"github.com/nbenitez/fuegos/internal/ingest"
	"github.com/nbenitez/fuegos/internal/metrics"
	"github.com/nbenitez/fuegos/internal/models"
)

// Diagnostics accumulates per-run cleaning warnings. It replaces the hidden
// global state older scripts used for this: callers get it back alongside the
// cleaned features and decide what to log or persist.
type Diagnostics struct {
	// UnmatchedProvinces counts occurrences per raw province string that
	// missed the region taxonomy.
	UnmatchedProvinces map[string]int
	FeaturesIn         int
	MissingArea        int
	MissingDate        int
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{UnmatchedProvinces: map[string]int{}}
}

// Unmatched returns the unmatched province strings, sorted for stable logs.
func (d *Diagnostics) Unmatched() []string {
	out := make([]string, 0, len(d.UnmatchedProvinces))
	for p := range d.UnmatchedProvinces {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (d *Diagnostics) recordUnmatched(province string) {
	d.UnmatchedProvinces[province]++
	metrics.UnmatchedProvinces.Inc()
}

// dateLayouts covers the firedate/lastupdate spellings seen across EFFIS
// export vintages.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// CleanCollection turns a validated raw collection into canonical fire
// features. Per-record problems never fail the batch; they land in the
// returned Diagnostics.
func CleanCollection(fc *ingest.FeatureCollection) ([]models.FireFeature, *Diagnostics) {
	diags := NewDiagnostics()
	features := make([]models.FireFeature, 0, len(fc.Features))
	for _, raw := range fc.Features {
		features = append(features, CleanFeature(raw, diags))
	}
	return features, diags
}

// CleanFeature maps one raw record to a canonical FireFeature.
func CleanFeature(raw ingest.RawFeature, diags *Diagnostics) models.FireFeature {
	diags.FeaturesIn++

	f := models.FireFeature{
		ID:          featureID(raw.Properties),
		Country:     strings.ToUpper(propString(raw.Properties, "country")),
		ProvinceRaw: propString(raw.Properties, "province"),
		Class:       propString(raw.Properties, "class"),
		Geometry:    raw.Geometry,
	}

	if mun := propString(raw.Properties, "commune"); mun != "" {
		f.Municipality = geo.CorrectMunicipality(mun)
	}

	f.AreaHa = parseArea(prop(raw.Properties, "area_ha"))
	if f.AreaHa == nil {
		diags.MissingArea++
	}

	f.FireDate = parseDate(propString(raw.Properties, "firedate"))
	f.LastUpdate = parseDate(propString(raw.Properties, "lastupdate"))
	if f.FireDate != nil {
		f.FireYear = f.FireDate.Year()
	} else {
		diags.MissingDate++
	}

	// Region assignment is a Spain-only concern; features elsewhere keep
	// empty region fields.
	if f.Country == "ES" && f.ProvinceRaw != "" {
		key := geo.ResolveProvince(geo.Normalize(f.ProvinceRaw))
		f.ProvinceKey = key
		if region, ok := geo.LookupRegion(key); ok {
			f.RegionCode = region.Code
			f.RegionName = region.Name
		} else {
			diags.recordUnmatched(f.ProvinceRaw)
		}
	}

	metrics.FeaturesCleaned.WithLabelValues(f.Country).Inc()
	return f
}

// prop resolves a property preferring the lowercase key, falling back to the
// uppercase spelling older exports use.
func prop(bag map[string]interface{}, name string) interface{} {
	if v, ok := bag[name]; ok {
		return v
	}
	if v, ok := bag[strings.ToUpper(name)]; ok {
		return v
	}
	return nil
}

func propString(bag map[string]interface{}, name string) string {
	v := prop(bag, name)
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return formatNumber(s)
	default:
		return ""
	}
}

// featureID resolves the record identifier, trying id, objectid, fid in turn.
func featureID(bag map[string]interface{}) string {
	for _, name := range []string{"id", "objectid", "fid"} {
		if s := propString(bag, name); s != "" {
			return s
		}
	}
	return ""
}

// parseArea coerces the burned-area attribute to hectares. Absent, empty and
// non-finite values are nil, never zero: a zero would silently enter sums
// while nil is excluded from aggregation.
func parseArea(v interface{}) *float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

// parseDate returns a UTC timestamp or nil. Invalid dates are never
// fabricated from partial values.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// formatNumber renders JSON numbers the way the source wrote them: integral
// ids come back as "12345", not "12345.000000".
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

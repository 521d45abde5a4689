package geo

// municipalityOverrides fixes commune names the EFFIS attribute table still
// carries from before municipal mergers. Curated by hand; exact spelling as
// it appears in the source data.
var municipalityOverrides = map[string]string{
	"Cerdedo":      "Cerdedo-Cotobade",
	"Cotobade":     "Cerdedo-Cotobade",
	"Oza dos Ríos": "Oza-Cesuras",
	"Cesuras":      "Oza-Cesuras",
	"Cea":          "San Cristovo de Cea",
}

// municipalityOverridesNorm is the normalized fallback for the same table,
// built once at init so accent or casing drift in the source still matches.
var municipalityOverridesNorm = func() map[string]string {
	m := make(map[string]string, len(municipalityOverrides))
	for raw, fixed := range municipalityOverrides {
		m[Normalize(raw)] = fixed
	}
	return m
}()

// CorrectMunicipality returns the current official name for a raw commune
// string. Exact match wins, then normalized match; anything else passes
// through unchanged.
func CorrectMunicipality(raw string) string {
	if fixed, ok := municipalityOverrides[raw]; ok {
		return fixed
	}
	if fixed, ok := municipalityOverridesNorm[Normalize(raw)]; ok {
		return fixed
	}
	return raw
}

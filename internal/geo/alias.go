package geo

// provinceAliases maps normalized spelling variants seen in EFFIS exports to
// canonical province keys: bilingual pairs ("alicante alacant"), old Spanish
// exonyms ("orense"), and Canary/Balearic island names that arrive in the
// province column instead of the province itself.
var provinceAliases = map[string]string{
	// Basque Country variants. "araba alava" is the dataset's own bilingual
	// spelling and doubles as the canonical key.
	"alava":       "araba alava",
	"araba":       "araba alava",
	"alava araba": "araba alava",
	"vizcaya":     "bizkaia",
	"guipuzcoa":   "gipuzkoa",

	// Valencian Community bilingual forms.
	"alacant":            "alicante",
	"alicante alacant":   "alicante",
	"castello":           "castellon",
	"castellon castello": "castellon",
	"valencia valencia":  "valencia",

	// Galicia.
	"coruna":    "a coruna",
	"coruna a":  "a coruna",
	"la coruna": "a coruna",
	"orense":    "ourense",

	// Catalonia, old Spanish exonyms.
	"gerona": "girona",
	"lerida": "lleida",

	// Navarre.
	"nafarroa":         "navarra",
	"navarra nafarroa": "navarra",

	// Balearic Islands: island names and catalogue variants.
	"illes balears":  "balears illes",
	"islas baleares": "balears illes",
	"mallorca":       "balears illes",
	"menorca":        "balears illes",
	"eivissa":        "balears illes",
	"ibiza":          "balears illes",
	"formentera":     "balears illes",

	// Canary Islands: island names grouped into their provinces.
	"gran canaria":  "las palmas",
	"fuerteventura": "las palmas",
	"lanzarote":     "las palmas",
	"la graciosa":   "las palmas",
	"tenerife":      "santa cruz de tenerife",
	"la palma":      "santa cruz de tenerife",
	"la gomera":     "santa cruz de tenerife",
	"el hierro":     "santa cruz de tenerife",
}

// ResolveProvince maps a normalized province string to its canonical key.
// Unmatched input passes through unchanged and is expected to miss in
// LookupRegion, where it gets recorded rather than raised.
func ResolveProvince(normalized string) string {
	key := normalized
	if canonical, ok := provinceAliases[normalized]; ok {
		key = canonical
	}
	// EFFIS sometimes ships the bare archipelago name; the taxonomy key
	// carries the inverted official form.
	if key == "balears" {
		key = "balears illes"
	}
	return key
}

package geo

// Region is one comunidad autónoma (or autonomous city), keyed by the
// two-digit INE code.
type Region struct {
	Code string
	Name string
}

var (
	andalucia  = Region{"01", "Andalucía"}
	aragon     = Region{"02", "Aragón"}
	asturias   = Region{"03", "Asturias"}
	balears    = Region{"04", "Illes Balears"}
	canarias   = Region{"05", "Canarias"}
	cantabria  = Region{"06", "Cantabria"}
	castleon   = Region{"07", "Castilla y León"}
	castmancha = Region{"08", "Castilla - La Mancha"}
	cataluna   = Region{"09", "Cataluña"}
	valenciana = Region{"10", "Comunitat Valenciana"}
	extremadur = Region{"11", "Extremadura"}
	galicia    = Region{"12", "Galicia"}
	madrid     = Region{"13", "Madrid"}
	murcia     = Region{"14", "Murcia"}
	navarra    = Region{"15", "Navarra"}
	paisvasco  = Region{"16", "País Vasco"}
	larioja    = Region{"17", "La Rioja"}
	ceuta      = Region{"18", "Ceuta"}
	melilla    = Region{"19", "Melilla"}
)

// provinceRegions maps every canonical province key (50 provinces plus the
// two autonomous cities) to its region. Keys are Normalize()d spellings of
// the names EFFIS ships, so lookups happen post-normalization only.
var provinceRegions = map[string]Region{
	"almeria": andalucia,
	"cadiz":   andalucia,
	"cordoba": andalucia,
	"granada": andalucia,
	"huelva":  andalucia,
	"jaen":    andalucia,
	"malaga":  andalucia,
	"sevilla": andalucia,

	"huesca":   aragon,
	"teruel":   aragon,
	"zaragoza": aragon,

	"asturias": asturias,

	"balears illes": balears,

	"las palmas":             canarias,
	"santa cruz de tenerife": canarias,

	"cantabria": cantabria,

	"avila":      castleon,
	"burgos":     castleon,
	"leon":       castleon,
	"palencia":   castleon,
	"salamanca":  castleon,
	"segovia":    castleon,
	"soria":      castleon,
	"valladolid": castleon,
	"zamora":     castleon,

	"albacete":    castmancha,
	"ciudad real": castmancha,
	"cuenca":      castmancha,
	"guadalajara": castmancha,
	"toledo":      castmancha,

	"barcelona": cataluna,
	"girona":    cataluna,
	"lleida":    cataluna,
	"tarragona": cataluna,

	"alicante":  valenciana,
	"castellon": valenciana,
	"valencia":  valenciana,

	"badajoz": extremadur,
	"caceres": extremadur,

	"a coruna":   galicia,
	"lugo":       galicia,
	"ourense":    galicia,
	"pontevedra": galicia,

	"madrid": madrid,

	"murcia": murcia,

	"navarra": navarra,

	"araba alava": paisvasco,
	"bizkaia":     paisvasco,
	"gipuzkoa":    paisvasco,

	"la rioja": larioja,

	"ceuta":   ceuta,
	"melilla": melilla,
}

// provinceNames carries the official display name for each canonical key, as
// published in the INE register (bilingual provinces keep both forms). These
// are the row labels of the provincial tables; the keys stay internal.
var provinceNames = map[string]string{
	"almeria": "Almería",
	"cadiz":   "Cádiz",
	"cordoba": "Córdoba",
	"granada": "Granada",
	"huelva":  "Huelva",
	"jaen":    "Jaén",
	"malaga":  "Málaga",
	"sevilla": "Sevilla",

	"huesca":   "Huesca",
	"teruel":   "Teruel",
	"zaragoza": "Zaragoza",

	"asturias": "Asturias",

	"balears illes": "Illes Balears",

	"las palmas":             "Las Palmas",
	"santa cruz de tenerife": "Santa Cruz de Tenerife",

	"cantabria": "Cantabria",

	"avila":      "Ávila",
	"burgos":     "Burgos",
	"leon":       "León",
	"palencia":   "Palencia",
	"salamanca":  "Salamanca",
	"segovia":    "Segovia",
	"soria":      "Soria",
	"valladolid": "Valladolid",
	"zamora":     "Zamora",

	"albacete":    "Albacete",
	"ciudad real": "Ciudad Real",
	"cuenca":      "Cuenca",
	"guadalajara": "Guadalajara",
	"toledo":      "Toledo",

	"barcelona": "Barcelona",
	"girona":    "Girona",
	"lleida":    "Lleida",
	"tarragona": "Tarragona",

	"alicante":  "Alicante/Alacant",
	"castellon": "Castellón/Castelló",
	"valencia":  "Valencia/València",

	"badajoz": "Badajoz",
	"caceres": "Cáceres",

	"a coruna":   "A Coruña",
	"lugo":       "Lugo",
	"ourense":    "Ourense",
	"pontevedra": "Pontevedra",

	"madrid": "Madrid",

	"murcia": "Murcia",

	"navarra": "Navarra",

	"araba alava": "Araba/Álava",
	"bizkaia":     "Bizkaia",
	"gipuzkoa":    "Gipuzkoa",

	"la rioja": "La Rioja",

	"ceuta":   "Ceuta",
	"melilla": "Melilla",
}

// ProvinceName returns the official display name for a canonical key. Keys
// outside the taxonomy come back unchanged, matching LookupRegion's posture.
func ProvinceName(key string) string {
	if name, ok := provinceNames[key]; ok {
		return name
	}
	return key
}

// LookupRegion resolves a canonical province key to its region. A miss means
// the key is outside the fixed taxonomy; callers log it, they do not fail.
func LookupRegion(key string) (Region, bool) {
	r, ok := provinceRegions[key]
	return r, ok
}

// ProvinceKeys returns every canonical key in the taxonomy, in no particular
// order.
func ProvinceKeys() []string {
	keys := make([]string, 0, len(provinceRegions))
	for k := range provinceRegions {
		keys = append(keys, k)
	}
	return keys
}

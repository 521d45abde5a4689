package geo

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Ourense", "ourense"},
		{"Araba/Álava", "araba alava"},
		{"Palmas, Las", "las palmas"},
		{"Rioja, La", "la rioja"},
		{"Balears, Illes", "balears illes"},
		{"A Coruña", "a coruna"},
		{"Castellón/Castelló", "castellon castello"},
		{"Santa  Cruz   de Tenerife", "santa cruz de tenerife"},
		{"CÁCERES", "caceres"},
		{"Hierro, El", "el hierro"},
	}

	for _, c := range cases {
		got := Normalize(c.in)
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Araba/Álava", "Palmas, Las", "Coruña, A", "León",
		"madrid", "  Sta. Cruz / Tenerife  ", "País Vasco/Euskadi",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestResolveProvince(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"araba alava", "araba alava"},
		{"alava", "araba alava"},
		{"vizcaya", "bizkaia"},
		{"las palmas", "las palmas"},
		{"tenerife", "santa cruz de tenerife"},
		{"mallorca", "balears illes"},
		{"balears", "balears illes"}, // explicit taxonomy patch
		{"orense", "ourense"},
		{"coruna a", "a coruna"},
		{"valencia valencia", "valencia"},
		{"atlantis", "atlantis"}, // unmatched passes through
	}

	for _, c := range cases {
		got := ResolveProvince(c.in)
		if got != c.want {
			t.Errorf("ResolveProvince(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCorrectMunicipality(t *testing.T) {
	if got := CorrectMunicipality("Cerdedo"); got != "Cerdedo-Cotobade" {
		t.Errorf("exact override: got %q", got)
	}
	// Accent drift should still hit via the normalized fallback.
	if got := CorrectMunicipality("oza dos rios"); got != "Oza-Cesuras" {
		t.Errorf("normalized override: got %q", got)
	}
	if got := CorrectMunicipality("Ponteareas"); got != "Ponteareas" {
		t.Errorf("no override should pass through: got %q", got)
	}
}

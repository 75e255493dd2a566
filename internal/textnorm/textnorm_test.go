package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "alianza", "alianza"},
		{"accents", "Investigación", "investigacion"},
		{"tilde", "Señalamiento", "senalamiento"},
		{"trim", "  Negocio \t", "negocio"},
		{"mixed case", "MoReNa", "morena"},
		{"umlaut", "Pingüino", "pinguino"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	got := Join("Ana", "ana-1", "Contratos Públicos")
	if got != "ana ana-1 contratos publicos" {
		t.Errorf("unexpected haystack %q", got)
	}
}

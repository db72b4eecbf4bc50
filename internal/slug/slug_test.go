package slug

import "testing"

// TestGenerate covers punctuation removal, whitespace, hyphen collapsing
// and accent folding.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "parentheses and brackets", input: "Version (2.0) [Beta]", want: "version-20-beta"},
		{name: "accents folded", input: "Señal Cálida", want: "senal-calida"},
		{name: "german umlauts folded", input: "Über die Brücke", want: "uber-die-brucke"},
		{name: "multiple consecutive spaces collapsed", input: "hello    world", want: "hello-world"},
		{name: "tabs preserved as whitespace", input: "hello\tworld", want: "hello\tworld"},
		{name: "hyphens and spaces mixed", input: "  --hello -- world--  ", want: "hello-world"},
		{name: "date-like string", input: "2026-02-25", want: "2026-02-25"},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "family name", input: "Primary - Cyan", want: "primary-cyan"},
		{name: "em dash", input: "Acento — Rosa", want: "acento-rosa"},
		{name: "punctuation separates", input: "Brand.Colors/v2", want: "brand-colors-v2"},
		{name: "accents", input: "Fondo Oscuro Ñ", want: "fondo-oscuro-n"},
		{name: "emoji only", input: "🎨", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identifier(tt.input); got != tt.want {
				t.Errorf("Identifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "spaces and parens", input: "My Font (Bold).TTF", want: "my-font-bold.ttf"},
		{name: "path stripped", input: "../../etc/passwd.woff2", want: "passwd.woff2"},
		{name: "windows path", input: `C:\fonts\Señal.otf`, want: "senal.otf"},
		{name: "nothing usable", input: "!!!.woff", want: "file.woff"},
		{name: "no extension", input: "Display", want: "display"},
		{name: "underscores kept", input: "Brand_Sans-Bold.WOFF2", want: "brand_sans-bold.woff2"},
		{name: "only underscores", input: "___.otf", want: "file.otf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.input); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

package numerology

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Fünf", "Fuenf"},
		{"ä-ö üüü", "ae oe ueueue"},
		{"123", "123"},
		{"Straße", "Strasse"},
		{"FÖÖ BÄR", "Foeoe BaeR"},
		{"Fu\u0308nf", "Fuenf"},
		{"***", " "},
		{"a  --  b", "a b"},
		{"José", "Jos "},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize_OnlyAlnumAndSingleSpaces(t *testing.T) {
	for _, input := range []string{"Jean-Luc  Picard!!", "ß\t\nÜ", "  x  ", "ÅngstrÖm 42"} {
		got := Normalize(input)
		prevSpace := false
		for _, r := range got {
			switch {
			case r == ' ':
				if prevSpace {
					t.Errorf("Normalize(%q) = %q has a double space", input, got)
				}
				prevSpace = true
				continue
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			default:
				t.Errorf("Normalize(%q) = %q contains %q", input, got, r)
			}
			prevSpace = false
		}
	}
}

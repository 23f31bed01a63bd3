package hangul

import (
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"lower and strip spaces", "Hello World", "helloworld"},
		{"latin accents", "Café Crème", "cafecreme"},
		{"punctuation dropped", "ABC-123!?", "abc123"},
		{"fullwidth folds", "ＡＢＣ", "abc"},
		{"hangul decomposes", "피리 연주법", norm.NFKD.String("피리연주법")},
		{"mixed", "  대금: Trill ", norm.NFKD.String("대금") + "trill"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range []string{"피리 연주법", "Café", "ㄱㄴ", "Ångström 42"} {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestNormalize_ContainmentSurvives(t *testing.T) {
	field := Normalize("피리 연주법")
	query := Normalize("피리")
	if !strings.Contains(field, query) {
		t.Errorf("%q does not contain %q", field, query)
	}
}

package usecase

import (
	"math/rand/v2"
	"testing"
)

type synonymsFake map[string][]string

func (s synonymsFake) Lookup(word string) ([]string, bool) {
	alts, ok := s[word]
	return alts, ok
}

func TestHumanizePreservesCaseAndPunctuation(t *testing.T) {
	uc := NewHumanizeUseCase(synonymsFake{
		"muy":      {"bastante"},
		"bueno":    {"genial"},
		"problema": {"inconveniente"},
	}, 1, rand.New(rand.NewPCG(1, 2)))

	got := uc.Humanize("¡Muy   bueno! Un problema... ")
	want := "¡Bastante genial! Un inconveniente..."
	if got != want {
		t.Fatalf("Humanize() = %q, want %q", got, want)
	}
}

func TestHumanizeProbabilityZeroOnlyNormalizesSpaces(t *testing.T) {
	uc := NewHumanizeUseCase(synonymsFake{"muy": {"bastante"}}, 0, rand.New(rand.NewPCG(1, 2)))
	if got := uc.Humanize("Muy\tbien\n"); got != "Muy bien" {
		t.Fatalf("Humanize() = %q", got)
	}
}

func TestHumanizeEmptyAndPunctuationOnly(t *testing.T) {
	uc := NewHumanizeUseCase(synonymsFake{"muy": {"bastante"}}, 1, nil)
	if got := uc.Humanize("   "); got != "" {
		t.Fatalf("Humanize(blank) = %q", got)
	}
	if got := uc.Humanize("... !!"); got != "... !!" {
		t.Fatalf("Humanize(punctuation) = %q", got)
	}
}

func TestSplitCore(t *testing.T) {
	cases := []struct{ in, prefix, core, suffix string }{
		{"«Qué»", "«", "Qué", "»"},
		{"(don't)", "(", "don't", ")"},
		{"año2024.", "", "año2024", "."},
		{"--", "--", "", ""},
	}
	for _, tc := range cases {
		p, c, s := splitCore(tc.in)
		if p != tc.prefix || c != tc.core || s != tc.suffix {
			t.Fatalf("splitCore(%q) = %q %q %q", tc.in, p, c, s)
		}
	}
}

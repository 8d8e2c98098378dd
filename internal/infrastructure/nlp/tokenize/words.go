package tokenize

import (
	"strings"
	"unicode"
)

// Words returns the lower-cased word tokens of s. Apostrophes and hyphens
// inside a word are kept ("don't", "well-known").
func Words(s string) []string {
	var out []string
	for _, tok := range Tokens(s) {
		if tok.Word {
			out = append(out, tok.Text)
		}
	}
	return out
}

// Token is a run of word characters or a single punctuation mark.
type Token struct {
	Text string
	Word bool
}

// Tokens splits s into lower-cased word tokens and punctuation tokens,
// dropping whitespace.
func Tokens(s string) []Token {
	runes := []rune(s)
	out := make([]Token, 0, len(runes)/5+1)
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			out = append(out, Token{Text: b.String(), Word: true})
			b.Reset()
		}
	}
	for i, r := range runes {
		switch {
		case isWordRune(r):
			b.WriteRune(unicode.ToLower(r))
		case (r == '\'' || r == '’' || r == '-') && b.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			out = append(out, Token{Text: string(r)})
		}
	}
	flush()
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

package usecase

import (
	"math/rand/v2"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/kirillkom/textdesk/internal/core/ports"
)

type HumanizeUseCase struct {
	synonyms    ports.SynonymSource
	probability float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewHumanizeUseCase substitutes each known word with probability p. A nil
// rng seeds one from the runtime.
func NewHumanizeUseCase(synonyms ports.SynonymSource, p float64, rng *rand.Rand) *HumanizeUseCase {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &HumanizeUseCase{synonyms: synonyms, probability: min(max(p, 0), 1), rng: rng}
}

// Humanize rewrites text word by word. Punctuation around a word is kept and
// a replacement inherits the capital of the word it replaces. Whitespace
// collapses to single spaces.
func (uc *HumanizeUseCase) Humanize(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = uc.rewrite(w)
	}
	return strings.Join(out, " ")
}

func (uc *HumanizeUseCase) rewrite(word string) string {
	prefix, core, suffix := splitCore(word)
	if core == "" || uc.synonyms == nil {
		return word
	}
	alts, ok := uc.synonyms.Lookup(strings.ToLower(core))
	if !ok {
		return word
	}

	uc.mu.Lock()
	hit := uc.rng.Float64() < uc.probability
	pick := alts[uc.rng.IntN(len(alts))]
	uc.mu.Unlock()
	if !hit {
		return word
	}

	if first, _ := utf8.DecodeRuneInString(core); unicode.IsUpper(first) {
		pick = capitalize(pick)
	}
	return prefix + pick + suffix
}

func splitCore(word string) (prefix, core, suffix string) {
	isAlnum := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
	start := strings.IndexFunc(word, isAlnum)
	if start < 0 {
		return word, "", ""
	}
	end := strings.LastIndexFunc(word, isAlnum)
	_, size := utf8.DecodeRuneInString(word[end:])
	return word[:start], word[start : end+size], word[end+size:]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Package keywords ranks candidate phrases with RAKE: a text is cut into
// phrases at stopwords and punctuation, every word is scored by degree over
// frequency, and a phrase scores the sum of its words.
package keywords

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
	"github.com/kirillkom/textdesk/internal/infrastructure/nlp/tokenize"
)

type Rake struct {
	locator    ports.ResourceLocator
	bundledDir string
}

func NewRake(locator ports.ResourceLocator, bundledDir string) *Rake {
	return &Rake{locator: locator, bundledDir: bundledDir}
}

func (r *Rake) RankedPhrases(ctx context.Context, text, language string) ([]domain.RankedPhrase, error) {
	stopwords, err := tokenize.LoadStopwords(r.locator, r.bundledDir, language)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Rank(text, stopwords), nil
}

// Rank scores the candidate phrases of text. Each distinct phrase appears
// once; ties are broken alphabetically.
func Rank(text string, stopwords tokenize.Stopwords) []domain.RankedPhrase {
	phrases := candidatePhrases(text, stopwords)

	freq := make(map[string]float64)
	degree := make(map[string]float64)
	for _, p := range phrases {
		for _, w := range p {
			freq[w]++
			degree[w] += float64(len(p))
		}
	}

	seen := make(map[string]struct{}, len(phrases))
	out := make([]domain.RankedPhrase, 0, len(phrases))
	for _, p := range phrases {
		phrase := strings.Join(p, " ")
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}
		score := 0.0
		for _, w := range p {
			score += degree[w] / freq[w]
		}
		out = append(out, domain.RankedPhrase{Phrase: phrase, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Phrase < out[j].Phrase
	})
	return out
}

func candidatePhrases(text string, stopwords tokenize.Stopwords) [][]string {
	var phrases [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, current)
			current = nil
		}
	}
	for _, tok := range tokenize.Tokens(text) {
		if !tok.Word || stopwords.Contains(tok.Text) {
			flush()
			continue
		}
		current = append(current, tok.Text)
	}
	flush()
	return phrases
}

// SelfTest ranks a fixed sentence against a fixed stopword list.
func SelfTest(context.Context) error {
	got := Rank("fast keyword extraction, the fast way", tokenize.Stopwords{"the": {}})
	if len(got) == 0 || got[0].Phrase != "fast keyword extraction" {
		return fmt.Errorf("rake self-test: unexpected ranking %v", got)
	}
	return nil
}

// Package summarize implements latent semantic analysis extractive
// summarization: a term-by-sentence matrix is factorized and sentences are
// ranked by their weight across the strongest topics.
package summarize

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/kljensen/snowball"
	"gonum.org/v1/gonum/mat"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
	"github.com/kirillkom/textdesk/internal/infrastructure/nlp/tokenize"
)

const tfSmoothing = 0.4

var ErrFactorization = &domain.KindError{Name: "FactorizationError", Msg: "svd factorization failed"}

// LSA loads the sentence tokenizer and stopwords for the requested language on
// every call; installed data is never cached.
type LSA struct {
	locator    ports.ResourceLocator
	bundledDir string
}

func NewLSA(locator ports.ResourceLocator, bundledDir string) *LSA {
	return &LSA{locator: locator, bundledDir: bundledDir}
}

func (l *LSA) Summarize(ctx context.Context, text string, sentences int, language string) ([]string, error) {
	if sentences < domain.MinSummarySentences {
		return nil, domain.WrapError(domain.ErrInvalidInput, "summarize", fmt.Errorf("sentence count %d", sentences))
	}
	splitter, err := tokenize.LoadSentenceSplitter(l.locator, language)
	if err != nil {
		return nil, err
	}
	stopwords, err := tokenize.LoadStopwords(l.locator, l.bundledDir, language)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Rank(splitter.Split(text), sentences, language, stopwords)
}

// Rank picks the count highest-rated sentences and returns them in their
// original order. Sentences without a single content word never win.
func Rank(sentences []string, count int, language string, stopwords tokenize.Stopwords) ([]string, error) {
	if len(sentences) == 0 || count <= 0 {
		return nil, nil
	}
	stemmer := stemmerFor(language)

	terms := make(map[string]int)
	var order []string
	bags := make([]map[string]int, len(sentences))
	for j, s := range sentences {
		bags[j] = make(map[string]int)
		for _, w := range tokenize.Words(s) {
			if stopwords.Contains(w) || isNumber(w) {
				continue
			}
			stem := stemmer(w)
			if _, ok := terms[stem]; !ok {
				terms[stem] = 0
				order = append(order, stem)
			}
			bags[j][stem]++
		}
	}
	if len(order) == 0 {
		return nil, nil
	}
	sort.Strings(order)
	for i, t := range order {
		terms[t] = i
	}

	a := mat.NewDense(len(order), len(sentences), nil)
	for j, bag := range bags {
		maxFreq := 0
		for _, n := range bag {
			maxFreq = max(maxFreq, n)
		}
		for term, n := range bag {
			a.Set(terms[term], j, tfSmoothing+(1-tfSmoothing)*float64(n)/float64(maxFreq))
		}
	}

	ranks, err := sentenceRanks(a)
	if err != nil {
		return nil, err
	}
	return topInDocumentOrder(sentences, ranks, count), nil
}

func sentenceRanks(a *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrFactorization
	}
	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	powered := make([]float64, len(sigma))
	for i, s := range sigma {
		powered[i] = s * s
	}

	rows, cols := v.Dims()
	ranks := make([]float64, rows)
	for j := 0; j < rows; j++ {
		sum := 0.0
		for i := 0; i < cols && i < len(powered); i++ {
			x := v.At(j, i)
			sum += powered[i] * x * x
		}
		ranks[j] = math.Sqrt(sum)
	}
	return ranks, nil
}

func topInDocumentOrder(sentences []string, ranks []float64, count int) []string {
	idx := make([]int, len(sentences))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return ranks[idx[a]] > ranks[idx[b]] })
	if count < len(idx) {
		idx = idx[:count]
	}
	sort.Ints(idx)
	out := make([]string, len(idx))
	for i, k := range idx {
		out[i] = sentences[k]
	}
	return out
}

func stemmerFor(language string) func(string) string {
	return func(w string) string {
		stem, err := snowball.Stem(w, language, true)
		if err != nil || stem == "" {
			return w
		}
		return stem
	}
}

func isNumber(w string) bool {
	for _, r := range w {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SelfTest factorizes a tiny matrix.
func SelfTest(context.Context) error {
	a := mat.NewDense(3, 2, []float64{1, 0, 0.4, 1, 1, 0.4})
	if _, err := sentenceRanks(a); err != nil {
		return fmt.Errorf("lsa self-test: %w", err)
	}
	return nil
}

package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

const (
	boostIncr      = 0.293
	boostDecr      = -0.293
	capsIncr       = 0.733
	negationScalar = -0.74
	normalizeAlpha = 15.0
)

var boosters = map[string]float64{
	"absolutely": boostIncr, "amazingly": boostIncr, "completely": boostIncr, "considerably": boostIncr,
	"deeply": boostIncr, "enormously": boostIncr, "entirely": boostIncr, "especially": boostIncr,
	"exceptionally": boostIncr, "extremely": boostIncr, "highly": boostIncr, "hugely": boostIncr,
	"incredibly": boostIncr, "intensely": boostIncr, "majorly": boostIncr, "more": boostIncr,
	"most": boostIncr, "particularly": boostIncr, "purely": boostIncr, "quite": boostIncr,
	"really": boostIncr, "remarkably": boostIncr, "so": boostIncr, "substantially": boostIncr,
	"thoroughly": boostIncr, "totally": boostIncr, "tremendously": boostIncr, "very": boostIncr,
	"muy": boostIncr, "bastante": boostIncr, "realmente": boostIncr, "demasiado": boostIncr,
	"sumamente": boostIncr, "totalmente": boostIncr, "súper": boostIncr, "super": boostIncr,
	"almost": boostDecr, "barely": boostDecr, "hardly": boostDecr, "less": boostDecr,
	"little": boostDecr, "marginally": boostDecr, "occasionally": boostDecr, "partly": boostDecr,
	"scarcely": boostDecr, "slightly": boostDecr, "somewhat": boostDecr,
	"apenas": boostDecr, "poco": boostDecr, "algo": boostDecr,
}

var negations = map[string]struct{}{
	"aint": {}, "arent": {}, "cannot": {}, "cant": {}, "couldnt": {}, "darent": {}, "didnt": {},
	"doesnt": {}, "dont": {}, "hadnt": {}, "hasnt": {}, "havent": {}, "isnt": {}, "mightnt": {},
	"mustnt": {}, "neither": {}, "never": {}, "none": {}, "nope": {}, "nor": {}, "not": {},
	"nothing": {}, "nowhere": {}, "shant": {}, "shouldnt": {}, "wasnt": {}, "werent": {},
	"without": {}, "wont": {}, "wouldnt": {}, "rarely": {}, "seldom": {}, "despite": {},
	"no": {}, "nunca": {}, "jamás": {}, "ni": {}, "nada": {}, "nadie": {}, "tampoco": {}, "sin": {},
}

var contrastive = map[string]struct{}{"but": {}, "pero": {}, "sino": {}}

// Analyzer is safe for concurrent use; it never mutates its lexicon.
type Analyzer struct {
	lexicon Lexicon
}

func NewAnalyzer(lexicon Lexicon) *Analyzer {
	return &Analyzer{lexicon: lexicon}
}

func (a *Analyzer) PolarityScores(text string) domain.SentimentScores {
	words := splitWords(text)
	capsDiff := hasCapsDifferential(words)

	valences := make([]float64, len(words))
	for i, w := range words {
		lower := strings.ToLower(w)
		if _, ok := boosters[lower]; ok {
			continue
		}
		valence, ok := a.lexicon[lower]
		if !ok {
			continue
		}
		if capsDiff && isUpper(w) {
			valence += math.Copysign(capsIncr, valence)
		}
		for back := 1; back <= 3 && i-back >= 0; back++ {
			prev := strings.ToLower(words[i-back])
			if _, inLex := a.lexicon[prev]; !inLex {
				s := boosterScalar(words[i-back], valence, capsDiff)
				switch back {
				case 2:
					s *= 0.95
				case 3:
					s *= 0.9
				}
				valence += s
			}
			if isNegated(prev) {
				valence *= negationScalar
			}
		}
		valences[i] = valence
	}

	applyContrast(words, valences)

	sum := 0.0
	for _, v := range valences {
		sum += v
	}
	emphasis := punctuationEmphasis(text)
	if sum > 0 {
		sum += emphasis
	} else if sum < 0 {
		sum -= emphasis
	}

	pos, neg, neu := siftScores(valences)
	if pos > math.Abs(neg) {
		pos += emphasis
	} else if pos < math.Abs(neg) {
		neg -= emphasis
	}
	total := pos + math.Abs(neg) + neu
	scores := domain.SentimentScores{Compound: round(normalize(sum), 4)}
	if total > 0 {
		scores.Positive = round(math.Abs(pos/total), 3)
		scores.Negative = round(math.Abs(neg/total), 3)
		scores.Neutral = round(math.Abs(neu/total), 3)
	}
	return scores
}

func splitWords(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) })
		if len([]rune(w)) <= 1 {
			continue
		}
		out = append(out, w)
	}
	return out
}

func hasCapsDifferential(words []string) bool {
	upper := 0
	for _, w := range words {
		if isUpper(w) {
			upper++
		}
	}
	return upper > 0 && upper < len(words)
}

func isUpper(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func boosterScalar(word string, valence float64, capsDiff bool) float64 {
	scalar, ok := boosters[strings.ToLower(word)]
	if !ok {
		return 0
	}
	if valence < 0 {
		scalar = -scalar
	}
	if capsDiff && isUpper(word) {
		scalar += math.Copysign(capsIncr, valence)
	}
	return scalar
}

func isNegated(word string) bool {
	clean := strings.ReplaceAll(strings.ReplaceAll(word, "'", ""), "’", "")
	if _, ok := negations[clean]; ok {
		return true
	}
	return strings.HasSuffix(word, "n't")
}

func applyContrast(words []string, valences []float64) {
	for i, w := range words {
		if _, ok := contrastive[strings.ToLower(w)]; !ok {
			continue
		}
		for j := range valences {
			switch {
			case j < i:
				valences[j] *= 0.5
			case j > i:
				valences[j] *= 1.5
			}
		}
		return
	}
}

func punctuationEmphasis(text string) float64 {
	excl := math.Min(float64(strings.Count(text, "!")), 4) * 0.292
	qm := float64(strings.Count(text, "?"))
	var q float64
	switch {
	case qm > 3:
		q = 0.96
	case qm > 1:
		q = qm * 0.18
	}
	return excl + q
}

func siftScores(valences []float64) (pos, neg, neu float64) {
	for _, v := range valences {
		switch {
		case v > 0:
			pos += v + 1
		case v < 0:
			neg += v - 1
		default:
			neu++
		}
	}
	return pos, neg, neu
}

func normalize(score float64) float64 {
	n := score / math.Sqrt(score*score+normalizeAlpha)
	return math.Max(-1, math.Min(1, n))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// SelfTest checks that the scorer produces a signed compound score.
func SelfTest(context.Context) error {
	a := NewAnalyzer(Lexicon{"good": 1.9, "bad": -2.5})
	if s := a.PolarityScores("very good"); s.Compound <= 0 {
		return fmt.Errorf("sentiment self-test: expected positive compound, got %v", s.Compound)
	}
	if s := a.PolarityScores("not good"); s.Compound >= 0 {
		return fmt.Errorf("sentiment self-test: expected negated compound, got %v", s.Compound)
	}
	return nil
}

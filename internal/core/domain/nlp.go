package domain

// SentimentScores are the polarity proportions and the normalized compound
// score in [-1, 1].
type SentimentScores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// RankedPhrase is a keyword candidate with its RAKE score.
type RankedPhrase struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// TopPhrases returns at most n phrases from ranked, best first.
func TopPhrases(ranked []RankedPhrase, n int) []string {
	n = max(0, min(n, len(ranked)))
	out := make([]string, n)
	for i := range out {
		out[i] = ranked[i].Phrase
	}
	return out
}

const (
	MinSummarySentences = 1
	MaxSummarySentences = 50
)

package domain

import "encoding/json"

// FailureKind classifies a structured feature failure. It never reaches the
// client as-is; transports map it to a status code.
type FailureKind string

const (
	FailureNone         FailureKind = ""
	FailureUnavailable  FailureKind = "unavailable"
	FailureInvalidInput FailureKind = "invalid_input"
	FailureDownstream   FailureKind = "downstream"
	FailureEnvironment  FailureKind = "environment"
)

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentEmpty    SentimentLabel = "Empty"
	SentimentError    SentimentLabel = "Error"
)

type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score *float64       `json:"score"`
	Icon  string         `json:"icon"`
	Error string         `json:"error"`
	Kind  FailureKind    `json:"-"`
}

func (r SentimentResult) Failed() bool { return r.Error != "" }

// MarshalJSON always emits the error key, null on success.
func (r SentimentResult) MarshalJSON() ([]byte, error) {
	var errMsg *string
	if r.Error != "" {
		e := r.Error
		errMsg = &e
	}
	return json.Marshal(struct {
		Label SentimentLabel `json:"label"`
		Score *float64       `json:"score"`
		Icon  string         `json:"icon"`
		Error *string        `json:"error"`
	}{Label: r.Label, Score: r.Score, Icon: r.Icon, Error: errMsg})
}

type SummaryResult struct {
	Summary string      `json:"summary"`
	Error   string      `json:"error,omitempty"`
	Kind    FailureKind `json:"-"`
}

func (r SummaryResult) Failed() bool { return r.Error != "" }

type KeywordResult struct {
	Keywords []string    `json:"keywords"`
	Error    string      `json:"error,omitempty"`
	Kind     FailureKind `json:"-"`
}

func (r KeywordResult) Failed() bool { return r.Error != "" }

type CaptureResult struct {
	OK    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Kind  FailureKind `json:"-"`
}

func (r CaptureResult) Failed() bool { return r.Error != "" }

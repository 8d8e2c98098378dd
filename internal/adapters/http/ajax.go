package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/infrastructure/session"
)

const (
	defaultKeywordLanguage = "spanish"
	defaultMaxKeywords     = 15
	maxKeywords            = 50
	maxJSONBody            = 1 << 20
)

type humanizeRequest struct {
	Text *string `json:"text"`
}

type humanizeResponse struct {
	HumanizedText *string                 `json:"humanized_text"`
	Sentiment     *domain.SentimentResult `json:"sentiment"`
	Error         *string                 `json:"error"`
}

type summarizeTextRequest struct {
	Text      string `json:"text"`
	Language  string `json:"language"`
	Sentences any    `json:"sentences"`
}

type summarizeTextResponse struct {
	Summary   *string `json:"summary"`
	Language  *string `json:"language"`
	Sentences *int    `json:"sentences"`
	Error     *string `json:"error"`
}

type keywordsRequest struct {
	Language    string `json:"language"`
	MaxKeywords int    `json:"max_keywords"`
}

type keywordsResponse struct {
	Keywords []string `json:"keywords"`
	Error    *string  `json:"error"`
}

func (rt *Router) ajaxHumanize(w http.ResponseWriter, r *http.Request) {
	id := rt.sessionID(w, r)

	var req humanizeRequest
	if err := decodeJSON(r, &req); err != nil || req.Text == nil {
		writeJSON(w, http.StatusBadRequest, humanizeResponse{Error: ptr("no text received.")})
		return
	}
	text := *req.Text
	humanized := rt.svc.Humanizer.Humanize(text)

	ctx, cancel := rt.featureContext(r)
	defer cancel()
	sentiment := rt.svc.Sentiment.AnalyzeSentiment(ctx, text)
	if sentiment.Failed() {
		rt.logger.Warn("sentiment_failed", "request_id", requestIDFromContext(r.Context()), "error", sentiment.Error)
	}

	rt.sessions.Update(id, func(d *session.Data) {
		d.OriginalText = text
		d.HumanizedText = humanized
		d.Sentiment = &sentiment
		d.Keywords = nil
	})
	writeJSON(w, http.StatusOK, humanizeResponse{HumanizedText: &humanized, Sentiment: &sentiment})
}

func (rt *Router) ajaxSummarizeText(w http.ResponseWriter, r *http.Request) {
	id := rt.sessionID(w, r)

	var req summarizeTextRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, summarizeTextResponse{Error: ptr("no data received.")})
		return
	}
	text := strings.TrimSpace(req.Text)
	language := formLanguage(req.Language, rt.cfg.DefaultLanguage)
	sentences, ok := parseSentenceCount(req.Sentences, defaultSentences)
	switch {
	case text == "":
		writeJSON(w, http.StatusBadRequest, summarizeTextResponse{Error: ptr("the text to summarize is empty.")})
		return
	case !ok:
		writeJSON(w, http.StatusBadRequest, summarizeTextResponse{Error: ptr("invalid number of sentences (must be a number between 1 and 50).")})
		return
	case !rt.cfg.Supports(language):
		writeJSON(w, http.StatusBadRequest, summarizeTextResponse{Error: ptr("unsupported summary language.")})
		return
	}

	rt.sessions.Update(id, func(d *session.Data) { d.PDFSummary = "" })

	if a := rt.svc.Capabilities.CheckTextSummary(rt.flags.PDFSummary, false, true, language); !a.Usable {
		writeJSON(w, http.StatusServiceUnavailable, summarizeTextResponse{Error: ptr("feature unavailable: " + a.Reason)})
		return
	}

	ctx, cancel := rt.featureContext(r)
	defer cancel()
	res := rt.svc.Summaries.SummarizeText(ctx, text, sentences, language)
	if res.Failed() {
		rt.logger.Error("text_summary_failed", "request_id", requestIDFromContext(r.Context()), "error", res.Error)
		writeJSON(w, mapFailureToHTTPStatus(res.Kind), summarizeTextResponse{Error: ptr("error summarizing: " + res.Error)})
		return
	}
	writeJSON(w, http.StatusOK, summarizeTextResponse{
		Summary:   &res.Summary,
		Language:  &language,
		Sentences: &sentences,
	})
}

func (rt *Router) ajaxKeywords(w http.ResponseWriter, r *http.Request) {
	id := rt.sessionID(w, r)

	var req keywordsRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, keywordsResponse{Keywords: []string{}, Error: ptr("malformed request body.")})
		return
	}

	data, _ := rt.sessions.Get(id)
	status, res := rt.extractKeywords(r, data.OriginalText, req)
	if res.Failed() {
		writeJSON(w, status, keywordsResponse{Keywords: []string{}, Error: ptr(res.Error)})
		return
	}
	rt.sessions.Update(id, func(d *session.Data) { d.Keywords = res.Keywords })
	writeJSON(w, http.StatusOK, keywordsResponse{Keywords: res.Keywords})
}

// extractKeywords validates the session text and request options, then runs
// the keyword use case. The returned status applies only on failure.
func (rt *Router) extractKeywords(r *http.Request, text string, req keywordsRequest) (int, domain.KeywordResult) {
	if strings.TrimSpace(text) == "" {
		return http.StatusBadRequest, domain.KeywordResult{
			Error: "there is no original text in the session to extract keywords from.",
			Kind:  domain.FailureInvalidInput,
		}
	}
	language := formLanguage(req.Language, defaultKeywordLanguage)
	limit := req.MaxKeywords
	if limit <= 0 {
		limit = defaultMaxKeywords
	}
	limit = min(limit, maxKeywords)

	if a := rt.svc.Capabilities.CheckKeywords(language); !a.Usable {
		return http.StatusServiceUnavailable, domain.KeywordResult{
			Error: "feature unavailable: " + a.Reason,
			Kind:  domain.FailureUnavailable,
		}
	}

	ctx, cancel := rt.featureContext(r)
	defer cancel()
	res := rt.svc.Keywords.ExtractKeywords(ctx, text, language, limit)
	if res.Failed() {
		rt.logger.Error("keywords_failed", "request_id", requestIDFromContext(r.Context()), "error", res.Error)
		res.Error = "error extracting keywords: " + res.Error
	}
	return mapFailureToHTTPStatus(res.Kind), res
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	return dec.Decode(dst)
}

// parseSentenceCount accepts a JSON number, a numeric string or nothing.
// The count must fall in 1..50.
func parseSentenceCount(raw any, fallback int) (int, bool) {
	var n int
	switch v := raw.(type) {
	case nil:
		n = fallback
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		n = int(v)
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			n = fallback
			break
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n < 1 || n > maxSentences {
		return 0, false
	}
	return n, true
}

func ptr[T any](v T) *T {
	return &v
}

package httpadapter

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kirillkom/textdesk/internal/capability"
	"github.com/kirillkom/textdesk/internal/config"
	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/infrastructure/session"
)

type humanizerFake struct{}

func (humanizerFake) Humanize(text string) string { return strings.ToUpper(text) }

type sentimentFake struct {
	res domain.SentimentResult
}

func (f sentimentFake) AnalyzeSentiment(context.Context, string) domain.SentimentResult {
	return f.res
}

type summariesFake struct {
	mu        sync.Mutex
	text      domain.SummaryResult
	upload    domain.SummaryResult
	uploads   []string
	bodies    []string
	sentences int
	language  string
}

func (f *summariesFake) SummarizeText(_ context.Context, _ string, sentences int, language string) domain.SummaryResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentences, f.language = sentences, language
	return f.text
}

func (f *summariesFake) SummarizePDF(context.Context, string, int, string) domain.SummaryResult {
	return f.upload
}

func (f *summariesFake) SummarizeUpload(_ context.Context, filename string, body io.Reader, sentences int, language string) (string, domain.SummaryResult) {
	data, _ := io.ReadAll(body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, filename)
	f.bodies = append(f.bodies, string(data))
	f.sentences, f.language = sentences, language
	return "key_" + filename, f.upload
}

type keywordsFake struct {
	mu       sync.Mutex
	res      domain.KeywordResult
	text     string
	language string
	max      int
	calls    int
}

func (f *keywordsFake) ExtractKeywords(_ context.Context, text, language string, max int) domain.KeywordResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.text, f.language, f.max = text, language, max
	return f.res
}

type captureFake struct {
	res domain.CaptureResult
}

func (f captureFake) Capture(_ context.Context, dest string) domain.CaptureResult {
	if !f.res.OK {
		return f.res
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	out, err := os.Create(dest)
	if err != nil {
		return domain.CaptureResult{Error: err.Error(), Kind: domain.FailureEnvironment}
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return domain.CaptureResult{Error: err.Error(), Kind: domain.FailureEnvironment}
	}
	return f.res
}

type capabilitiesFake struct {
	unavailable map[domain.Feature]string
}

func (f capabilitiesFake) check(feature domain.Feature) domain.Availability {
	if reason, ok := f.unavailable[feature]; ok {
		return domain.Unavailable(reason)
	}
	return domain.Available()
}

func (f capabilitiesFake) CheckPDFSummary() domain.Availability {
	return f.check(domain.FeaturePDFSummary)
}

func (f capabilitiesFake) CheckTextSummary(_, _, _ bool, _ string) domain.Availability {
	return f.check(domain.FeatureTextSummary)
}

func (f capabilitiesFake) CheckKeywords(string) domain.Availability {
	return f.check(domain.FeatureKeywords)
}

func (f capabilitiesFake) CheckScreenshot() domain.Availability {
	return f.check(domain.FeatureScreenshot)
}

func (f capabilitiesFake) Snapshot(string) map[domain.Feature]domain.Availability {
	out := make(map[domain.Feature]domain.Availability)
	for _, feature := range domain.Features() {
		out[feature] = f.check(feature)
	}
	return out
}

type testEnv struct {
	t         *testing.T
	cfg       config.Config
	handler   http.Handler
	sessions  *session.Store
	summaries *summariesFake
	keywords  *keywordsFake
	cookies   []*http.Cookie
}

type envOption func(*Router)

func withCapabilities(c capabilitiesFake) envOption {
	return func(rt *Router) { rt.svc.Capabilities = c }
}

func withFlags(flags capability.UIFlags) envOption {
	return func(rt *Router) { rt.flags = flags }
}

func withSentiment(res domain.SentimentResult) envOption {
	return func(rt *Router) { rt.svc.Sentiment = sentimentFake{res: res} }
}

func withCapture(res domain.CaptureResult) envOption {
	return func(rt *Router) { rt.svc.Capture = captureFake{res: res} }
}

func newTestEnv(t *testing.T, cfg config.Config, opts ...envOption) *testEnv {
	t.Helper()
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = "textdesk_session"
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "spanish"
	}
	if cfg.SupportedLanguages == nil {
		cfg.SupportedLanguages = []string{"spanish", "english"}
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 16 << 20
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = t.TempDir()
	}

	env := &testEnv{
		t:         t,
		cfg:       cfg,
		sessions:  session.NewStore(100, time.Hour),
		summaries: &summariesFake{text: domain.SummaryResult{Summary: "short summary"}, upload: domain.SummaryResult{Summary: "pdf summary"}},
		keywords:  &keywordsFake{res: domain.KeywordResult{Keywords: []string{"linear constraints", "system"}}},
	}
	svc := Services{
		Humanizer:    humanizerFake{},
		Sentiment:    sentimentFake{res: domain.SentimentResult{Label: domain.SentimentPositive, Icon: "bi-emoji-smile-fill"}},
		Summaries:    env.summaries,
		Keywords:     env.keywords,
		Capture:      captureFake{res: domain.CaptureResult{OK: true}},
		Capabilities: capabilitiesFake{},
	}
	flags := capability.UIFlags{Sentiment: true, PDFSummary: true, TextSummary: true, Keywords: true, Screenshot: true}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rt := NewRouter(cfg, svc, env.sessions, flags, logger, nil)
	for _, opt := range opts {
		opt(rt)
	}
	env.handler = rt.Handler()
	return env
}

// do sends req with the cookies collected so far and keeps any new ones.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	e.t.Helper()
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	res := httptest.NewRecorder()
	e.handler.ServeHTTP(res, req)
	if set := res.Result().Cookies(); len(set) > 0 {
		e.cookies = set
	}
	return res
}

func (e *testEnv) postJSON(path, body string) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

package usecase

import (
	"context"
	"image"
	"io"
	"path/filepath"
	"sync"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

type checkerFake struct {
	missing     map[domain.Dependency]bool
	sentiment   domain.Availability
	pdf         domain.Availability
	text        domain.Availability
	keywords    domain.Availability
	screenshot  domain.Availability
	analyzer    ports.SentimentAnalyzer
	analyzerErr error
	textCalls   []string
}

func newCheckerFake() *checkerFake {
	ok := domain.Available()
	return &checkerFake{
		missing:    map[domain.Dependency]bool{},
		sentiment:  ok,
		pdf:        ok,
		text:       ok,
		keywords:   ok,
		screenshot: ok,
	}
}

func (f *checkerFake) Has(dep domain.Dependency) bool           { return !f.missing[dep] }
func (f *checkerFake) CheckSentiment() domain.Availability      { return f.sentiment }
func (f *checkerFake) CheckPDFSummary() domain.Availability     { return f.pdf }
func (f *checkerFake) CheckScreenshot() domain.Availability     { return f.screenshot }
func (f *checkerFake) CheckKeywords(string) domain.Availability { return f.keywords }

func (f *checkerFake) CheckTextSummary(_, _, _ bool, language string) domain.Availability {
	f.textCalls = append(f.textCalls, language)
	return f.text
}

func (f *checkerFake) NewAnalyzer() (ports.SentimentAnalyzer, error) {
	return f.analyzer, f.analyzerErr
}

func (f *checkerFake) Snapshot(string) map[domain.Feature]domain.Availability {
	return map[domain.Feature]domain.Availability{
		domain.FeatureSentiment:  f.sentiment,
		domain.FeatureScreenshot: f.screenshot,
	}
}

type analyzerFake struct {
	compound float64
	panics   bool
}

func (a analyzerFake) PolarityScores(string) domain.SentimentScores {
	if a.panics {
		panic("lexicon corrupted")
	}
	return domain.SentimentScores{Compound: a.compound}
}

type summarizerFake struct {
	sentences []string
	err       error
	gotText   string
}

func (s *summarizerFake) Summarize(_ context.Context, text string, n int, _ string) ([]string, error) {
	s.gotText = text
	if s.err != nil {
		return nil, s.err
	}
	if n < len(s.sentences) {
		return s.sentences[:n], nil
	}
	return s.sentences, nil
}

type extractorFake struct {
	text string
	err  error
}

func (e extractorFake) ExtractText(context.Context, string) (string, error) {
	return e.text, e.err
}

type keywordFake struct {
	phrases []domain.RankedPhrase
	err     error
}

func (k keywordFake) RankedPhrases(context.Context, string, string) ([]domain.RankedPhrase, error) {
	return k.phrases, k.err
}

type capturerFake struct {
	err error
}

func (c capturerFake) Capture(context.Context) (image.Image, error) {
	if c.err != nil {
		return nil, c.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 3)), nil
}

type storageFake struct {
	dir   string
	saved map[string]string
	err   error
}

func (s *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if s.err != nil {
		return s.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if s.saved == nil {
		s.saved = map[string]string{}
	}
	s.saved[key] = string(raw)
	return nil
}

func (s *storageFake) Path(key string) string {
	return filepath.Join(s.dir, key)
}

type metricsFake struct {
	mu       sync.Mutex
	started  int
	outcomes map[domain.Feature][]domain.FailureKind
	observed int
}

func (m *metricsFake) StartFeature(domain.Feature) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *metricsFake) FinishFeature(f domain.Feature, kind domain.FailureKind, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[domain.Feature][]domain.FailureKind{}
	}
	m.outcomes[f] = append(m.outcomes[f], kind)
}

func (m *metricsFake) ObserveAvailability(map[domain.Feature]domain.Availability) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observed++
}

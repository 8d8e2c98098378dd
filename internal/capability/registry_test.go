package capability

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
	"github.com/kirillkom/textdesk/internal/infrastructure/resources"
)

type analyzerStub struct{}

func (analyzerStub) PolarityScores(string) domain.SentimentScores { return domain.SentimentScores{} }

func okFactory() (ports.SentimentAnalyzer, error) { return analyzerStub{}, nil }

type dataDir struct {
	t    *testing.T
	root string
}

func newDataDir(t *testing.T) *dataDir {
	return &dataDir{t: t, root: t.TempDir()}
}

func (d *dataDir) punkt() *dataDir {
	require.NoError(d.t, os.MkdirAll(filepath.Join(d.root, "tokenizers", "punkt"), 0o755))
	return d
}

func (d *dataDir) stopwords(lang string) *dataDir {
	path := filepath.Join(d.root, "corpora", "stopwords", lang)
	require.NoError(d.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(d.t, os.WriteFile(path, []byte("the\nand\n"), 0o644))
	return d
}

func (d *dataDir) lexicon() *dataDir {
	path := filepath.Join(d.root, "sentiment", "vader_lexicon.zip")
	require.NoError(d.t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(d.t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create("vader_lexicon/vader_lexicon.txt")
	require.NoError(d.t, err)
	_, err = w.Write([]byte("good\t1.9\t0.9\t[2]\n"))
	require.NoError(d.t, err)
	require.NoError(d.t, zw.Close())
	return d
}

func (d *dataDir) registry(facts Facts, factory ports.AnalyzerFactory) *Registry {
	return NewRegistry(facts, resources.NewLocator(d.root), "", factory, nil)
}

func assertContract(t *testing.T, a domain.Availability) {
	t.Helper()
	assert.Equal(t, a.Usable, a.Reason == "", "usable must hold iff reason is empty: %+v", a)
}

func TestAllChecksUsableWhenEverythingPresent(t *testing.T) {
	reg := newDataDir(t).punkt().stopwords("english").lexicon().registry(AllLoaded(), okFactory)

	for feature, a := range reg.Snapshot("english") {
		assertContract(t, a)
		assert.True(t, a.Usable, "feature %s: %s", feature, a.Reason)
	}
}

func TestChecksAreIdempotent(t *testing.T) {
	reg := newDataDir(t).punkt().registry(AllLoaded().Without(domain.DepScreenshot), okFactory)

	first := reg.Snapshot("spanish")
	second := reg.Snapshot("spanish")
	assert.Equal(t, first, second)
}

func TestSentimentMissingEngineReportsExactMessage(t *testing.T) {
	reg := newDataDir(t).lexicon().registry(AllLoaded().Without(domain.DepVader), okFactory)

	a := reg.CheckSentiment()
	assertContract(t, a)
	assert.False(t, a.Usable)
	assert.Equal(t, domain.SentimentMissingMsg, a.Reason)
}

func TestSentimentMissingLexicon(t *testing.T) {
	reg := newDataDir(t).registry(AllLoaded(), okFactory)

	a := reg.CheckSentiment()
	assert.False(t, a.Usable)
	assert.Equal(t, domain.SentimentMissingMsg+" (missing vader_lexicon)", a.Reason)
}

func TestSentimentConstructionFailureIsReportedNotPropagated(t *testing.T) {
	failing := func() (ports.SentimentAnalyzer, error) { return nil, errors.New("corrupt lexicon") }
	panicking := func() (ports.SentimentAnalyzer, error) { panic("boom") }

	for _, factory := range []ports.AnalyzerFactory{failing, panicking} {
		reg := newDataDir(t).lexicon().registry(AllLoaded(), factory)
		a := reg.CheckSentiment()
		assertContract(t, a)
		assert.False(t, a.Usable)
		assert.Contains(t, a.Reason, "failed to initialize VADER")
	}
}

func TestTextSummaryPDFGateWinsRegardlessOfTextDeps(t *testing.T) {
	for _, facts := range []Facts{AllLoaded(), NewFacts(nil)} {
		reg := newDataDir(t).punkt().stopwords("english").registry(facts, okFactory)
		a := reg.CheckTextSummary(false, true, true, "english")
		assert.False(t, a.Usable)
		assert.Equal(t, domain.PDFSummaryMissingMsg, a.Reason)
	}
}

func TestTextSummaryMissingEngines(t *testing.T) {
	reg := newDataDir(t).punkt().stopwords("english").registry(AllLoaded().Without(domain.DepLSA), okFactory)

	a := reg.CheckTextSummary(true, false, true, "english")
	assert.Equal(t, domain.Unavailable(domain.TextSummaryMissingMsg), a)
}

func TestTextSummaryNamesTokenizerBeforeStopwords(t *testing.T) {
	reg := newDataDir(t).registry(AllLoaded(), okFactory)

	a := reg.CheckTextSummary(true, false, true, "english")
	require.False(t, a.Usable)
	assert.Equal(t,
		domain.TextSummaryMissingMsg+" (missing 'punkt') (missing stopwords for 'english')",
		a.Reason,
	)

	reg = newDataDir(t).punkt().registry(AllLoaded(), okFactory)
	a = reg.CheckTextSummary(true, false, true, "english")
	assert.Equal(t, domain.TextSummaryMissingMsg+" (missing stopwords for 'english')", a.Reason)
}

func TestTextSummaryOnlyPDF(t *testing.T) {
	reg := newDataDir(t).registry(NewFacts(nil), okFactory)
	assert.True(t, reg.CheckTextSummary(true, true, false, "english").Usable)
}

func TestStopwordFallbackToBundledDir(t *testing.T) {
	bundled := newDataDir(t).stopwords("spanish")
	primary := newDataDir(t)

	reg := NewRegistry(AllLoaded(), resources.NewLocator(primary.root), bundled.root, okFactory, nil)
	assert.True(t, reg.StopwordsAvailable("spanish"))
	assert.True(t, reg.CheckKeywords("spanish").Usable)

	a := reg.CheckKeywords("english")
	assert.False(t, a.Usable)
	assert.Equal(t, domain.KeywordsMissingMsg+" (missing NLP stopwords for 'english')", a.Reason)
}

func TestStopwordsRejectMalformedLanguage(t *testing.T) {
	reg := newDataDir(t).stopwords("english").registry(AllLoaded(), okFactory)
	assert.False(t, reg.StopwordsAvailable("../english"))
	assert.False(t, reg.StopwordsAvailable("English"))
	assert.False(t, reg.CheckKeywords("").Usable)
}

func TestKeywordsMissingEngine(t *testing.T) {
	reg := newDataDir(t).stopwords("spanish").registry(AllLoaded().Without(domain.DepRake), okFactory)

	a := reg.CheckKeywords("spanish")
	assert.Equal(t, domain.KeywordsMissingMsg+" (missing RAKE engine or base NLP engine)", a.Reason)
}

func TestScreenshotAndPDFFollowFacts(t *testing.T) {
	reg := newDataDir(t).registry(NewFacts(map[domain.Dependency]bool{domain.DepPDF: true}), okFactory)

	assert.True(t, reg.CheckPDFSummary().Usable)
	a := reg.CheckScreenshot()
	assert.Equal(t, domain.ScreenshotMissingMsg, a.Reason)
}

func TestCheckUnknownFeature(t *testing.T) {
	reg := newDataDir(t).registry(AllLoaded(), okFactory)
	a := reg.Check(domain.Feature("telepathy"), "english")
	assertContract(t, a)
	assert.False(t, a.Usable)
}

func TestResourceInstalledAfterStartupIsPickedUp(t *testing.T) {
	dir := newDataDir(t).stopwords("english")
	reg := dir.registry(AllLoaded(), okFactory)
	require.False(t, reg.CheckTextSummary(true, false, true, "english").Usable)

	dir.punkt()
	assert.True(t, reg.CheckTextSummary(true, false, true, "english").Usable)
}

func TestFlags(t *testing.T) {
	reg := newDataDir(t).punkt().stopwords("spanish").registry(AllLoaded().Without(domain.DepScreenshot), okFactory)
	flags := reg.Flags("spanish")
	assert.Equal(t, UIFlags{PDFSummary: true, TextSummary: true, Keywords: true}, flags)
}

func TestDetectSkipsDependentsAndRecoversPanics(t *testing.T) {
	facts := Detect(context.Background(), nil, []string{"screenshot"},
		EngineCheck{Dependency: domain.DepNLP, Check: func(context.Context) error { return errors.New("no data roots") }},
		EngineCheck{Dependency: domain.DepLSA, Requires: []domain.Dependency{domain.DepNLP}},
		EngineCheck{Dependency: domain.DepPDF, Check: func(context.Context) error { panic("bad build") }},
		EngineCheck{Dependency: domain.DepRake},
		EngineCheck{Dependency: domain.DepScreenshot},
	)

	assert.False(t, facts.Has(domain.DepNLP))
	assert.False(t, facts.Has(domain.DepLSA))
	assert.False(t, facts.Has(domain.DepPDF))
	assert.True(t, facts.Has(domain.DepRake))
	assert.False(t, facts.Has(domain.DepScreenshot))
}

package ports

import (
	"context"
	"image"
	"io"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

// ResourceLocator finds language data (tokenizers, stopword lists, lexicons)
// by slash-separated resource name. Missing resources yield an error wrapping
// domain.ErrResourceNotFound.
type ResourceLocator interface {
	Find(name string) (string, error)
	Open(name string) (io.ReadCloser, error)
}

// SentimentAnalyzer scores free-form text.
type SentimentAnalyzer interface {
	PolarityScores(text string) domain.SentimentScores
}

// AnalyzerFactory constructs a sentiment analyzer from the installed lexicon.
type AnalyzerFactory func() (SentimentAnalyzer, error)

// Summarizer selects the most representative sentences of a text, in
// document order.
type Summarizer interface {
	Summarize(ctx context.Context, text string, sentences int, language string) ([]string, error)
}

// KeywordExtractor ranks candidate phrases, best first.
type KeywordExtractor interface {
	RankedPhrases(ctx context.Context, text, language string) ([]domain.RankedPhrase, error)
}

// PDFTextExtractor reads the text layer of a PDF file.
type PDFTextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// ScreenCapturer grabs an image of the screen.
type ScreenCapturer interface {
	Capture(ctx context.Context) (image.Image, error)
}

// ObjectStorage stores uploads and generated files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Path(key string) string
}

// CapabilityChecker answers whether a feature can run right now.
type CapabilityChecker interface {
	CheckSentiment() domain.Availability
	CheckPDFSummary() domain.Availability
	CheckTextSummary(pdfEnabled, checkPDF, checkText bool, language string) domain.Availability
	CheckKeywords(language string) domain.Availability
	CheckScreenshot() domain.Availability
	Has(dep domain.Dependency) bool
	NewAnalyzer() (SentimentAnalyzer, error)
}

// SynonymSource maps a lower-cased word to its replacements.
type SynonymSource interface {
	Lookup(word string) ([]string, bool)
}

// FeatureMetrics records feature invocations and the last observed
// availability of each feature.
type FeatureMetrics interface {
	StartFeature(feature domain.Feature)
	FinishFeature(feature domain.Feature, kind domain.FailureKind, seconds float64)
	ObserveAvailability(snapshot map[domain.Feature]domain.Availability)
}

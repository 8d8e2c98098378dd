// Package capability decides, at call time, whether each optional feature can
// run. Checks never panic and never return errors: they return an
// Availability whose Reason explains what is missing.
package capability

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

const (
	VaderLexiconResource = "sentiment/vader_lexicon.zip/vader_lexicon/vader_lexicon.txt"
	PunktResource        = "tokenizers/punkt"
	StopwordsDir         = "corpora/stopwords"
)

var languagePattern = regexp.MustCompile(`^[a-z_]+$`)

// ValidLanguage reports whether language is a well-formed language code.
func ValidLanguage(language string) bool {
	return languagePattern.MatchString(language)
}

// StopwordsResource is the resource name of the stopword list for language.
func StopwordsResource(language string) string {
	return StopwordsDir + "/" + language
}

type predicate func(language string) domain.Availability

// Registry answers, at call time, whether each optional feature can run.
// It holds no mutable state and is safe for concurrent use.
type Registry struct {
	facts       Facts
	locator     ports.ResourceLocator
	bundledDir  string
	newAnalyzer ports.AnalyzerFactory
	logger      *slog.Logger

	table map[domain.Feature]predicate
}

// NewRegistry builds the capability table once over facts frozen at startup.
func NewRegistry(
	facts Facts,
	locator ports.ResourceLocator,
	bundledDir string,
	newAnalyzer ports.AnalyzerFactory,
	logger *slog.Logger,
) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		facts:       facts,
		locator:     locator,
		bundledDir:  bundledDir,
		newAnalyzer: newAnalyzer,
		logger:      logger,
	}
	r.table = map[domain.Feature]predicate{
		domain.FeatureSentiment:  func(string) domain.Availability { return r.CheckSentiment() },
		domain.FeaturePDFSummary: func(string) domain.Availability { return r.CheckPDFSummary() },
		domain.FeatureTextSummary: func(lang string) domain.Availability {
			return r.CheckTextSummary(true, false, true, lang)
		},
		domain.FeatureKeywords:   r.CheckKeywords,
		domain.FeatureScreenshot: func(string) domain.Availability { return r.CheckScreenshot() },
	}
	return r
}

// Has reports the startup fact for dep.
func (r *Registry) Has(dep domain.Dependency) bool {
	return r.facts.Has(dep)
}

// Check dispatches through the capability table.
func (r *Registry) Check(feature domain.Feature, language string) domain.Availability {
	check, ok := r.table[feature]
	if !ok {
		return domain.Unavailable(domain.MissingMessage(feature))
	}
	return check(language)
}

// Snapshot evaluates every feature now.
func (r *Registry) Snapshot(language string) map[domain.Feature]domain.Availability {
	out := make(map[domain.Feature]domain.Availability, len(r.table))
	for _, f := range domain.Features() {
		out[f] = r.Check(f, language)
	}
	return out
}

// CheckSentiment requires the engines, the installed lexicon and a working
// analyzer constructor.
func (r *Registry) CheckSentiment() domain.Availability {
	if !r.facts.Has(domain.DepNLP) || !r.facts.Has(domain.DepVader) || r.newAnalyzer == nil {
		return domain.Unavailable(domain.SentimentMissingMsg)
	}
	if !r.resourceAvailable(VaderLexiconResource) {
		return domain.Unavailable(domain.SentimentMissingMsg + " (missing vader_lexicon)")
	}
	if _, err := r.NewAnalyzer(); err != nil {
		r.logger.Error("vader_init_failed", "error", err)
		return domain.Unavailable(fmt.Sprintf("failed to initialize VADER: %v", err))
	}
	return domain.Available()
}

// CheckPDFSummary requires the PDF engine.
func (r *Registry) CheckPDFSummary() domain.Availability {
	if !r.facts.Has(domain.DepPDF) {
		return domain.Unavailable(domain.PDFSummaryMissingMsg)
	}
	return domain.Available()
}

// CheckTextSummary composes the PDF and text prerequisites. With checkPDF set,
// a disabled PDF engine wins regardless of the text engines. Missing text
// resources are reported tokenizer first, then stopwords.
func (r *Registry) CheckTextSummary(pdfEnabled, checkPDF, checkText bool, language string) domain.Availability {
	if checkPDF && !pdfEnabled {
		return domain.Unavailable(domain.PDFSummaryMissingMsg)
	}
	if !checkText {
		return domain.Available()
	}
	if !r.facts.Has(domain.DepLSA) || !r.facts.Has(domain.DepNLP) {
		return domain.Unavailable(domain.TextSummaryMissingMsg)
	}

	reason := ""
	if !r.resourceAvailable(PunktResource) {
		reason += " (missing 'punkt')"
	}
	if !r.StopwordsAvailable(language) {
		reason += fmt.Sprintf(" (missing stopwords for '%s')", language)
	}
	if reason != "" {
		return domain.Unavailable(domain.TextSummaryMissingMsg + reason)
	}
	return domain.Available()
}

// CheckKeywords requires the RAKE and NLP engines and stopwords for language.
func (r *Registry) CheckKeywords(language string) domain.Availability {
	if !r.facts.Has(domain.DepRake) || !r.facts.Has(domain.DepNLP) {
		return domain.Unavailable(domain.KeywordsMissingMsg + " (missing RAKE engine or base NLP engine)")
	}
	if !r.StopwordsAvailable(language) {
		return domain.Unavailable(fmt.Sprintf("%s (missing NLP stopwords for '%s')", domain.KeywordsMissingMsg, language))
	}
	return domain.Available()
}

// CheckScreenshot requires a working capture backend.
func (r *Registry) CheckScreenshot() domain.Availability {
	if !r.facts.Has(domain.DepScreenshot) {
		return domain.Unavailable(domain.ScreenshotMissingMsg)
	}
	return domain.Available()
}

// StopwordsAvailable looks the list up through the locator first and falls
// back to the bundled data directory.
func (r *Registry) StopwordsAvailable(language string) bool {
	if !r.facts.Has(domain.DepNLP) || !ValidLanguage(language) {
		return false
	}
	if r.resourceAvailable(StopwordsResource(language)) {
		return true
	}
	if r.bundledDir != "" {
		if _, err := os.Stat(BundledStopwordsPath(r.bundledDir, language)); err == nil {
			return true
		}
	}
	r.logger.Debug("stopwords_not_found", "language", language)
	return false
}

// BundledStopwordsPath is where the bundled copy of a stopword list lives.
func BundledStopwordsPath(bundledDir, language string) string {
	return filepath.Join(bundledDir, "corpora", "stopwords", language)
}

// NewAnalyzer constructs a sentiment analyzer, converting a panicking
// constructor into an error.
func (r *Registry) NewAnalyzer() (analyzer ports.SentimentAnalyzer, err error) {
	if r.newAnalyzer == nil {
		return nil, fmt.Errorf("no sentiment analyzer factory")
	}
	defer func() {
		if rec := recover(); rec != nil {
			analyzer = nil
			err = fmt.Errorf("analyzer constructor panicked: %v", rec)
		}
	}()
	return r.newAnalyzer()
}

func (r *Registry) resourceAvailable(name string) bool {
	if r.locator == nil || !r.facts.Has(domain.DepNLP) {
		return false
	}
	_, err := r.locator.Find(name)
	if err == nil {
		return true
	}
	if !domain.IsKind(err, domain.ErrResourceNotFound) {
		r.logger.Error("resource_lookup_failed", "resource", name, "error", err)
	}
	return false
}

// UIFlags are computed once at startup to enable or disable controls. They
// are advisory: every operation re-checks right before running.
type UIFlags struct {
	Sentiment   bool
	PDFSummary  bool
	TextSummary bool
	Keywords    bool
	Screenshot  bool
}

// Flags evaluates every check for language.
func (r *Registry) Flags(language string) UIFlags {
	pdf := r.CheckPDFSummary().Usable
	return UIFlags{
		Sentiment:   r.CheckSentiment().Usable,
		PDFSummary:  pdf,
		TextSummary: r.CheckTextSummary(pdf, false, true, language).Usable,
		Keywords:    r.CheckKeywords(language).Usable,
		Screenshot:  r.CheckScreenshot().Usable,
	}
}

package domain

// Feature is one of the optional text/image processing functions the app offers.
type Feature string

const (
	FeatureSentiment   Feature = "sentiment"
	FeatureTextSummary Feature = "text-summary"
	FeaturePDFSummary  Feature = "pdf-summary"
	FeatureKeywords    Feature = "keywords"
	FeatureScreenshot  Feature = "screenshot"
)

// Features lists every feature in display order.
func Features() []Feature {
	return []Feature{
		FeatureSentiment,
		FeatureTextSummary,
		FeaturePDFSummary,
		FeatureKeywords,
		FeatureScreenshot,
	}
}

func ParseFeature(s string) (Feature, bool) {
	for _, f := range Features() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Dependency names an optional engine whose presence is detected once at startup.
type Dependency string

const (
	DepNLP        Dependency = "nlp"
	DepVader      Dependency = "vader"
	DepLSA        Dependency = "lsa"
	DepPDF        Dependency = "pdf"
	DepRake       Dependency = "rake"
	DepScreenshot Dependency = "screenshot"
)

func Dependencies() []Dependency {
	return []Dependency{DepNLP, DepVader, DepLSA, DepPDF, DepRake, DepScreenshot}
}

// User-facing reasons for missing prerequisites. Sub-reasons are appended to
// these by the capability registry.
const (
	PDFSummaryMissingMsg  = "PDF summarization requires the PDF text engine."
	TextSummaryMissingMsg = "Text summarization requires the LSA summarizer and the base NLP engine (punkt, stopwords)."
	SentimentMissingMsg   = "Sentiment analysis requires the NLP engine (vader_lexicon)."
	ScreenshotMissingMsg  = "Screen capture requires a capture backend and an active display."
	KeywordsMissingMsg    = "Keyword extraction requires the RAKE engine and NLP stopwords."
)

// MissingMessage returns the base unavailability message for a feature.
func MissingMessage(f Feature) string {
	switch f {
	case FeatureSentiment:
		return SentimentMissingMsg
	case FeatureTextSummary:
		return TextSummaryMissingMsg
	case FeaturePDFSummary:
		return PDFSummaryMissingMsg
	case FeatureKeywords:
		return KeywordsMissingMsg
	case FeatureScreenshot:
		return ScreenshotMissingMsg
	default:
		return "unknown feature: " + string(f)
	}
}

package ports

import (
	"context"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

// TextHumanizer rewrites text with light synonym substitution.
type TextHumanizer interface {
	Humanize(text string) string
}

// SentimentService is the inbound contract for sentiment scoring.
type SentimentService interface {
	AnalyzeSentiment(ctx context.Context, text string) domain.SentimentResult
}

// SummaryService is the inbound contract for text and PDF summarization.
type SummaryService interface {
	SummarizeText(ctx context.Context, text string, sentences int, language string) domain.SummaryResult
	SummarizePDF(ctx context.Context, path string, sentences int, language string) domain.SummaryResult
}

// KeywordService is the inbound contract for keyword extraction.
type KeywordService interface {
	ExtractKeywords(ctx context.Context, text, language string, max int) domain.KeywordResult
}

// CaptureService is the inbound contract for screenshot capture.
type CaptureService interface {
	Capture(ctx context.Context, dest string) domain.CaptureResult
}

// CapabilityReader exposes live availability for UI and diagnostics.
type CapabilityReader interface {
	CheckPDFSummary() domain.Availability
	CheckTextSummary(pdfEnabled, checkPDF, checkText bool, language string) domain.Availability
	CheckKeywords(language string) domain.Availability
	CheckScreenshot() domain.Availability
	Snapshot(language string) map[domain.Feature]domain.Availability
}

package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

const (
	PDFNotFoundMsg = "PDF file not found."
	PDFNoTextMsg   = "could not extract text (empty or image-only PDF?)."
)

type SummarizeUseCase struct {
	checker    ports.CapabilityChecker
	summarizer ports.Summarizer
	extractor  ports.PDFTextExtractor
	storage    ports.ObjectStorage
	languages  []string
	runner
}

func NewSummarizeUseCase(
	checker ports.CapabilityChecker,
	summarizer ports.Summarizer,
	extractor ports.PDFTextExtractor,
	storage ports.ObjectStorage,
	languages []string,
	logger *slog.Logger,
	metrics ports.FeatureMetrics,
) *SummarizeUseCase {
	return &SummarizeUseCase{
		checker:    checker,
		summarizer: summarizer,
		extractor:  extractor,
		storage:    storage,
		languages:  languages,
		runner:     newRunner(logger, metrics),
	}
}

func (uc *SummarizeUseCase) SummarizeText(ctx context.Context, text string, sentences int, language string) domain.SummaryResult {
	var res domain.SummaryResult
	uc.observe(domain.FeatureTextSummary, func() domain.FailureKind {
		res = uc.summarizeText(ctx, text, sentences, language)
		return res.Kind
	})
	return res
}

func (uc *SummarizeUseCase) summarizeText(ctx context.Context, text string, sentences int, language string) domain.SummaryResult {
	if !uc.checker.Has(domain.DepLSA) || !uc.checker.Has(domain.DepNLP) {
		return summaryFailure(domain.TextSummaryMissingMsg, domain.FailureUnavailable)
	}
	if strings.TrimSpace(text) == "" {
		return domain.SummaryResult{}
	}
	if sentences < domain.MinSummarySentences || sentences > domain.MaxSummarySentences {
		return summaryFailure(fmt.Sprintf("the number of sentences must be between %d and %d.",
			domain.MinSummarySentences, domain.MaxSummarySentences), domain.FailureInvalidInput)
	}
	if !slices.Contains(uc.languages, language) {
		return summaryFailure(fmt.Sprintf("unsupported language '%s'.", language), domain.FailureInvalidInput)
	}
	if a := uc.checker.CheckTextSummary(true, false, true, language); !a.Usable {
		return summaryFailure(a.Reason, domain.FailureUnavailable)
	}

	var picked []string
	err := guard(func() error {
		var err error
		picked, err = uc.summarizer.Summarize(ctx, text, sentences, language)
		return err
	})
	if err != nil {
		if domain.IsKind(err, domain.ErrResourceNotFound) {
			uc.logFailure(domain.FeatureTextSummary, "summary_resource_missing", err)
			return summaryFailure(fmt.Sprintf("NLP resource not found: %v.", err), domain.FailureUnavailable)
		}
		uc.logFailure(domain.FeatureTextSummary, "summary_failed", err)
		return summaryFailure(unexpected(err), domain.FailureDownstream)
	}
	return domain.SummaryResult{Summary: strings.Join(picked, " ")}
}

func (uc *SummarizeUseCase) SummarizePDF(ctx context.Context, path string, sentences int, language string) domain.SummaryResult {
	var res domain.SummaryResult
	uc.observe(domain.FeaturePDFSummary, func() domain.FailureKind {
		res = uc.summarizePDF(ctx, path, sentences, language)
		return res.Kind
	})
	return res
}

func (uc *SummarizeUseCase) summarizePDF(ctx context.Context, path string, sentences int, language string) domain.SummaryResult {
	if !uc.checker.Has(domain.DepPDF) || uc.extractor == nil {
		return summaryFailure(domain.PDFSummaryMissingMsg, domain.FailureUnavailable)
	}
	if path == "" {
		return summaryFailure(PDFNotFoundMsg, domain.FailureInvalidInput)
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return summaryFailure(PDFNotFoundMsg, domain.FailureInvalidInput)
	}

	var text string
	err := guard(func() error {
		var err error
		text, err = uc.extractor.ExtractText(ctx, path)
		return err
	})
	if err != nil {
		uc.logFailure(domain.FeaturePDFSummary, "pdf_extract_failed", err)
		return summaryFailure("error extracting text: "+domain.ErrorKindName(err), domain.FailureDownstream)
	}
	if strings.TrimSpace(text) == "" {
		uc.logger.Warn("pdf_no_text", "path", path)
		return summaryFailure(PDFNoTextMsg, domain.FailureInvalidInput)
	}
	return uc.summarizeText(ctx, text, sentences, language)
}

// SummarizeUpload stores an uploaded PDF under a unique sanitized name and
// summarizes it. The stored key is returned even when summarizing fails.
func (uc *SummarizeUseCase) SummarizeUpload(
	ctx context.Context,
	filename string,
	body io.Reader,
	sentences int,
	language string,
) (string, domain.SummaryResult) {
	if uc.storage == nil {
		return "", summaryFailure(domain.PDFSummaryMissingMsg, domain.FailureUnavailable)
	}
	key := fmt.Sprintf("%s_%s", uuid.NewString(), SanitizeFilename(filename))
	if err := uc.storage.Save(ctx, key, body); err != nil {
		uc.logFailure(domain.FeaturePDFSummary, "pdf_upload_save_failed", err)
		return "", summaryFailure(unexpected(err), domain.FailureEnvironment)
	}
	return key, uc.SummarizePDF(ctx, uc.storage.Path(key), sentences, language)
}

func summaryFailure(msg string, kind domain.FailureKind) domain.SummaryResult {
	return domain.SummaryResult{Error: msg, Kind: kind}
}

// SanitizeFilename keeps ASCII letters, digits, dot, dash and underscore.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	base = strings.TrimLeft(base, ".")
	if base == "" {
		return "document.pdf"
	}
	return base
}

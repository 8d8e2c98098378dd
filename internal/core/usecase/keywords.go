package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

const (
	DefaultMaxKeywords = 10
	EmptyTextMsg       = "the text is empty."
)

type KeywordsUseCase struct {
	checker   ports.CapabilityChecker
	extractor ports.KeywordExtractor
	runner
}

func NewKeywordsUseCase(checker ports.CapabilityChecker, extractor ports.KeywordExtractor, logger *slog.Logger, metrics ports.FeatureMetrics) *KeywordsUseCase {
	return &KeywordsUseCase{checker: checker, extractor: extractor, runner: newRunner(logger, metrics)}
}

// ExtractKeywords returns at most limit phrases, best first. limit <= 0 means
// DefaultMaxKeywords.
func (uc *KeywordsUseCase) ExtractKeywords(ctx context.Context, text, language string, limit int) domain.KeywordResult {
	var res domain.KeywordResult
	uc.observe(domain.FeatureKeywords, func() domain.FailureKind {
		res = uc.extract(ctx, text, language, limit)
		return res.Kind
	})
	return res
}

func (uc *KeywordsUseCase) extract(ctx context.Context, text, language string, limit int) domain.KeywordResult {
	if a := uc.checker.CheckKeywords(language); !a.Usable {
		return keywordFailure(a.Reason, domain.FailureUnavailable)
	}
	if strings.TrimSpace(text) == "" {
		return keywordFailure(EmptyTextMsg, domain.FailureInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultMaxKeywords
	}

	var ranked []domain.RankedPhrase
	err := guard(func() error {
		var err error
		ranked, err = uc.extractor.RankedPhrases(ctx, text, language)
		return err
	})
	if err != nil {
		if domain.IsKind(err, domain.ErrResourceNotFound) {
			uc.logFailure(domain.FeatureKeywords, "keywords_resource_missing", err)
			return keywordFailure(fmt.Sprintf("NLP resource not found: %v.", err), domain.FailureUnavailable)
		}
		uc.logFailure(domain.FeatureKeywords, "keywords_failed", err)
		return keywordFailure(unexpected(err), domain.FailureDownstream)
	}

	return domain.KeywordResult{Keywords: domain.TopPhrases(ranked, limit)}
}

func keywordFailure(msg string, kind domain.FailureKind) domain.KeywordResult {
	return domain.KeywordResult{Keywords: []string{}, Error: msg, Kind: kind}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05

	iconError    = "bi-emoji-dizzy-fill"
	iconEmpty    = "bi-body-text"
	iconPositive = "bi-emoji-smile-fill"
	iconNegative = "bi-emoji-frown-fill"
	iconNeutral  = "bi-emoji-neutral-fill"
)

type SentimentUseCase struct {
	checker ports.CapabilityChecker
	runner
}

func NewSentimentUseCase(checker ports.CapabilityChecker, logger *slog.Logger, metrics ports.FeatureMetrics) *SentimentUseCase {
	return &SentimentUseCase{checker: checker, runner: newRunner(logger, metrics)}
}

func (uc *SentimentUseCase) AnalyzeSentiment(ctx context.Context, text string) domain.SentimentResult {
	var res domain.SentimentResult
	uc.observe(domain.FeatureSentiment, func() domain.FailureKind {
		res = uc.analyze(ctx, text)
		return res.Kind
	})
	return res
}

func (uc *SentimentUseCase) analyze(ctx context.Context, text string) domain.SentimentResult {
	if !uc.checker.Has(domain.DepNLP) || !uc.checker.Has(domain.DepVader) {
		return sentimentFailure(domain.SentimentMissingMsg, domain.FailureUnavailable)
	}
	if strings.TrimSpace(text) == "" {
		return domain.SentimentResult{Label: domain.SentimentEmpty, Icon: iconEmpty}
	}
	if a := uc.checker.CheckSentiment(); !a.Usable {
		return sentimentFailure(a.Reason, domain.FailureUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return sentimentFailure(unexpected(err), domain.FailureDownstream)
	}

	var scores domain.SentimentScores
	err := guard(func() error {
		analyzer, err := uc.checker.NewAnalyzer()
		if err != nil {
			return err
		}
		scores = analyzer.PolarityScores(text)
		return nil
	})
	if err != nil {
		if domain.IsKind(err, domain.ErrResourceNotFound) {
			uc.logFailure(domain.FeatureSentiment, "sentiment_resource_missing", err)
			return sentimentFailure(fmt.Sprintf("NLP resource not found: %v.", err), domain.FailureUnavailable)
		}
		uc.logFailure(domain.FeatureSentiment, "sentiment_failed", err)
		return sentimentFailure(unexpected(err), domain.FailureDownstream)
	}

	score := math.Round(scores.Compound*1000) / 1000
	res := domain.SentimentResult{Score: &score}
	switch {
	case scores.Compound >= positiveThreshold:
		res.Label, res.Icon = domain.SentimentPositive, iconPositive
	case scores.Compound <= negativeThreshold:
		res.Label, res.Icon = domain.SentimentNegative, iconNegative
	default:
		res.Label, res.Icon = domain.SentimentNeutral, iconNeutral
	}
	return res
}

func sentimentFailure(msg string, kind domain.FailureKind) domain.SentimentResult {
	return domain.SentimentResult{Label: domain.SentimentError, Icon: iconError, Error: msg, Kind: kind}
}

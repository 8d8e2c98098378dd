package usecase

import (
	"context"
	"reflect"
	"testing"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

func ranked(phrases ...string) []domain.RankedPhrase {
	out := make([]domain.RankedPhrase, len(phrases))
	for i, p := range phrases {
		out[i] = domain.RankedPhrase{Phrase: p, Score: float64(len(phrases) - i)}
	}
	return out
}

func TestExtractKeywordsLimitsResults(t *testing.T) {
	uc := NewKeywordsUseCase(newCheckerFake(), keywordFake{phrases: ranked("a", "b", "c")}, nil, nil)
	res := uc.ExtractKeywords(context.Background(), "text", "spanish", 2)
	if res.Failed() || !reflect.DeepEqual(res.Keywords, []string{"a", "b"}) {
		t.Fatalf("unexpected result %+v", res)
	}

	many := make([]string, 12)
	for i := range many {
		many[i] = string(rune('a' + i))
	}
	uc = NewKeywordsUseCase(newCheckerFake(), keywordFake{phrases: ranked(many...)}, nil, nil)
	if res := uc.ExtractKeywords(context.Background(), "text", "spanish", 0); len(res.Keywords) != DefaultMaxKeywords {
		t.Fatalf("expected default limit, got %d", len(res.Keywords))
	}
}

func TestExtractKeywordsFailures(t *testing.T) {
	checker := newCheckerFake()
	checker.keywords = domain.Unavailable(domain.KeywordsMissingMsg + " (missing NLP stopwords for 'klingon')")
	res := NewKeywordsUseCase(checker, keywordFake{}, nil, nil).ExtractKeywords(context.Background(), "text", "klingon", 5)
	if res.Error != checker.keywords.Reason || res.Keywords == nil || len(res.Keywords) != 0 {
		t.Fatalf("unavailable: %+v", res)
	}

	res = NewKeywordsUseCase(newCheckerFake(), keywordFake{}, nil, nil).ExtractKeywords(context.Background(), " ", "spanish", 5)
	if res.Error != EmptyTextMsg || res.Kind != domain.FailureInvalidInput {
		t.Fatalf("empty: %+v", res)
	}

	res = NewKeywordsUseCase(newCheckerFake(), keywordFake{err: &domain.KindError{Name: "StopwordsUnavailableError", Msg: "stopwords unavailable"}}, nil, nil).ExtractKeywords(context.Background(), "text", "spanish", 5)
	if res.Error != "unexpected error: StopwordsUnavailableError" || res.Kind != domain.FailureDownstream {
		t.Fatalf("engine error: %+v", res)
	}
}

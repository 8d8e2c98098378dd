package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

// runner is the fault boundary shared by every feature: it recovers panics,
// logs failures with full detail and reports outcomes to metrics.
type runner struct {
	logger  *slog.Logger
	metrics ports.FeatureMetrics
}

func newRunner(logger *slog.Logger, metrics ports.FeatureMetrics) runner {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return runner{logger: logger, metrics: metrics}
}

func (r runner) observe(feature domain.Feature, fn func() domain.FailureKind) {
	start := time.Now()
	r.metrics.StartFeature(feature)
	kind := domain.FailureDownstream
	defer func() {
		r.metrics.FinishFeature(feature, kind, time.Since(start).Seconds())
	}()
	kind = fn()
}

// guard runs fn and turns a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError{value: rec}
		}
	}()
	return fn()
}

type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

func (p panicError) Kind() string {
	if err, ok := p.value.(error); ok {
		return domain.ErrorKindName(err)
	}
	return "Panic"
}

func (p panicError) Unwrap() error {
	err, _ := p.value.(error)
	return err
}

func unexpected(err error) string {
	return "unexpected error: " + domain.ErrorKindName(err)
}

func (r runner) logFailure(feature domain.Feature, msg string, err error) {
	r.logger.Error(msg, "feature", string(feature), "error", err, "error_kind", domain.ErrorKindName(err))
}

type noopMetrics struct{}

func (noopMetrics) StartFeature(domain.Feature) {}

func (noopMetrics) FinishFeature(domain.Feature, domain.FailureKind, float64) {}

func (noopMetrics) ObserveAvailability(map[domain.Feature]domain.Availability) {}

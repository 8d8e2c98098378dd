// Package capture holds the screen capture backends and the retrying
// wrapper used in front of them.
package capture

import (
	"context"
	"errors"
	"image"

	"github.com/kirillkom/textdesk/internal/core/ports"
	"github.com/kirillkom/textdesk/internal/infrastructure/capture/browser"
	"github.com/kirillkom/textdesk/internal/infrastructure/capture/desktop"
	"github.com/kirillkom/textdesk/internal/infrastructure/resilience"
)

const operation = "screen_capture"

// Guarded runs a capturer through the resilience executor. A missing display
// or browser is permanent; anything else is retried once.
type Guarded struct {
	next ports.ScreenCapturer
	exec *resilience.Executor
}

func NewGuarded(next ports.ScreenCapturer, exec *resilience.Executor) *Guarded {
	return &Guarded{next: next, exec: exec}
}

func (g *Guarded) Capture(ctx context.Context) (image.Image, error) {
	if g.exec == nil {
		return g.next.Capture(ctx)
	}
	return resilience.Call(ctx, g.exec, operation, g.next.Capture, classify)
}

func classify(err error) resilience.ErrorClassification {
	if errors.Is(err, desktop.ErrNoDisplay) || errors.Is(err, browser.ErrNoBrowser) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
}

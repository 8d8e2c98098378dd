package usecase

import (
	"context"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

type CaptureUseCase struct {
	checker  ports.CapabilityChecker
	capturer ports.ScreenCapturer
	runner
}

func NewCaptureUseCase(checker ports.CapabilityChecker, capturer ports.ScreenCapturer, logger *slog.Logger, metrics ports.FeatureMetrics) *CaptureUseCase {
	return &CaptureUseCase{checker: checker, capturer: capturer, runner: newRunner(logger, metrics)}
}

// Capture writes a PNG of the screen to dest, creating its directory.
// Concurrent captures to the same dest are not coordinated; the last rename
// wins.
func (uc *CaptureUseCase) Capture(ctx context.Context, dest string) domain.CaptureResult {
	var res domain.CaptureResult
	uc.observe(domain.FeatureScreenshot, func() domain.FailureKind {
		res = uc.capture(ctx, dest)
		return res.Kind
	})
	return res
}

func (uc *CaptureUseCase) capture(ctx context.Context, dest string) domain.CaptureResult {
	if a := uc.checker.CheckScreenshot(); !a.Usable || uc.capturer == nil {
		reason := a.Reason
		if reason == "" {
			reason = domain.ScreenshotMissingMsg
		}
		return captureFailure(reason, domain.FailureUnavailable)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		uc.logFailure(domain.FeatureScreenshot, "capture_dir_failed", err)
		return captureFailure(unexpected(err), domain.FailureEnvironment)
	}

	err := guard(func() error {
		img, err := uc.capturer.Capture(ctx)
		if err != nil {
			return err
		}
		return writePNG(dest, img)
	})
	if err == nil {
		return domain.CaptureResult{OK: true}
	}
	if kind := domain.KindOf(err); kind == domain.FailureEnvironment {
		uc.logFailure(domain.FeatureScreenshot, "capture_write_failed", err)
		return captureFailure(unexpected(err), kind)
	}
	uc.logFailure(domain.FeatureScreenshot, "capture_failed", err)
	return captureFailure("screen capture failed: "+domain.ErrorKindName(err), domain.FailureDownstream)
}

// writePNG encodes into a temporary sibling and renames it over dest so a
// reader never sees a half-written image.
func writePNG(dest string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".capture-*.png")
	if err != nil {
		return domain.WrapError(domain.ErrEnvironment, "create capture file", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return domain.WrapError(domain.ErrEnvironment, "encode png", err)
	}
	if err := tmp.Close(); err != nil {
		return domain.WrapError(domain.ErrEnvironment, "close capture file", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return domain.WrapError(domain.ErrEnvironment, "rename capture file", err)
	}
	return nil
}

func captureFailure(msg string, kind domain.FailureKind) domain.CaptureResult {
	return domain.CaptureResult{Error: msg, Kind: kind}
}

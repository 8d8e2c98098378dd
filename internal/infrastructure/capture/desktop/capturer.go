// Package desktop grabs the primary display of the machine the server runs
// on.
package desktop

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

var (
	ErrNoDisplay     = &domain.KindError{Name: "NoDisplayError", Msg: "no active display"}
	ErrCaptureFailed = &domain.KindError{Name: "DesktopCaptureError", Msg: "desktop capture failed"}
)

// Capturer captures one display. Display functions are swappable so the
// package can be exercised on headless machines.
type Capturer struct {
	display     int
	numDisplays func() int
	bounds      func(int) image.Rectangle
	capture     func(image.Rectangle) (*image.RGBA, error)
}

func New(display int) *Capturer {
	return &Capturer{
		display:     display,
		numDisplays: screenshot.NumActiveDisplays,
		bounds:      screenshot.GetDisplayBounds,
		capture:     screenshot.CaptureRect,
	}
}

func (c *Capturer) Capture(ctx context.Context) (img image.Image, err error) {
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, fmt.Errorf("%w: %v", ErrCaptureFailed, p)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := c.numDisplays()
	if n == 0 {
		return nil, ErrNoDisplay
	}
	display := c.display
	if display < 0 || display >= n {
		display = 0
	}
	rgba, err := c.capture(c.bounds(display))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}
	return rgba, nil
}

// Ready succeeds when at least one display is active.
func (c *Capturer) Ready(context.Context) error {
	if c.numDisplays() == 0 {
		return ErrNoDisplay
	}
	return nil
}

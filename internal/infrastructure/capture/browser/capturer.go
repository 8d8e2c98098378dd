// Package browser renders a page in headless Chrome and returns it as an
// image. It is the capture backend for machines without a display.
package browser

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

var (
	ErrNoBrowser     = &domain.KindError{Name: "NoBrowserError", Msg: "no chrome executable found"}
	ErrCaptureFailed = &domain.KindError{Name: "BrowserCaptureError", Msg: "browser capture failed"}
)

type config struct {
	chromePath string
	download   bool
	noSandbox  bool
	width      int64
	height     int64
	timeout    time.Duration
}

type Option func(*config)

func WithChromePath(path string) Option { return func(c *config) { c.chromePath = path } }

// WithDownload lets the capturer fetch a Chromium build when none is
// installed.
func WithDownload(enabled bool) Option { return func(c *config) { c.download = enabled } }

func WithNoSandbox(enabled bool) Option { return func(c *config) { c.noSandbox = enabled } }

func WithViewport(width, height int64) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Capturer starts a fresh browser per capture; captures are rare and a
// long-lived browser would hold memory for nothing.
type Capturer struct {
	url string
	cfg config
}

func New(url string, opts ...Option) *Capturer {
	cfg := config{width: 1280, height: 800, timeout: 30 * time.Second}
	for _, o := range opts {
		o(&cfg)
	}
	if url == "" {
		url = "about:blank"
	}
	return &Capturer{url: url, cfg: cfg}
}

// ResolveChrome returns the executable to launch: the configured path, then a
// system install, then a downloaded build when allowed.
func (c *Capturer) ResolveChrome() (string, error) {
	if c.cfg.chromePath != "" {
		if _, err := os.Stat(c.cfg.chromePath); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoBrowser, err)
		}
		return c.cfg.chromePath, nil
	}
	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}
	if c.cfg.download {
		path, err := launcher.NewBrowser().Get()
		if err != nil {
			return "", fmt.Errorf("%w: download: %v", ErrNoBrowser, err)
		}
		return path, nil
	}
	return "", ErrNoBrowser
}

func (c *Capturer) Ready(context.Context) error {
	_, err := c.ResolveChrome()
	return err
}

func (c *Capturer) Capture(ctx context.Context) (image.Image, error) {
	chrome, err := c.ResolveChrome()
	if err != nil {
		return nil, err
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chrome),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
		chromedp.WindowSize(int(c.cfg.width), int(c.cfg.height)),
	)
	if c.cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	var buf []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(c.cfg.width, c.cfg.height),
		chromedp.Navigate(c.url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, err := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithFromSurface(true).
				Do(ctx)
			if err != nil {
				return err
			}
			buf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCaptureFailed, c.url, err)
	}
	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: decode screenshot: %w", ErrCaptureFailed, err)
	}
	return img, nil
}

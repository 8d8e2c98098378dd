// Package pdftext reads the text layer of PDF documents.
package pdftext

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/infrastructure/resilience"
)

//go:embed selftest.pdf
var selfTestDocument []byte

var ErrMalformedPDF = &domain.KindError{Name: "MalformedPDFError", Msg: "malformed pdf"}

type Extractor struct {
	exec *resilience.Executor
}

// NewExtractor wraps extraction in exec when non-nil. Malformed documents
// never trip the breaker; only I/O failures count.
func NewExtractor(exec *resilience.Executor) *Extractor {
	return &Extractor{exec: exec}
}

func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	var text string
	run := func(ctx context.Context) error {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open pdf: %w", err)
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat pdf: %w", err)
		}
		text, err = Extract(ctx, f, info.Size())
		return err
	}
	if e.exec == nil {
		return text, run(ctx)
	}
	err := e.exec.Execute(ctx, "pdf_extract", run, classify)
	return text, err
}

// Extract concatenates the plain text of every page, one page per line
// block. Image-only pages contribute nothing.
func Extract(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrMalformedPDF, p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPDF, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if content = strings.TrimSpace(content); content != "" {
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func classify(err error) resilience.ErrorClassification {
	malformed := errors.Is(err, ErrMalformedPDF) || errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	return resilience.ErrorClassification{Retryable: false, RecordFailure: !malformed}
}

// SelfTest opens the embedded one-page document.
func SelfTest(ctx context.Context) error {
	reader, err := pdf.NewReader(bytes.NewReader(selfTestDocument), int64(len(selfTestDocument)))
	if err != nil {
		return domain.WrapError(domain.ErrEnvironment, "pdf self-test", err)
	}
	if reader.NumPage() != 1 {
		return domain.WrapError(domain.ErrEnvironment, "pdf self-test", fmt.Errorf("expected 1 page, got %d", reader.NumPage()))
	}
	return ctx.Err()
}

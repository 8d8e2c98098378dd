package usecase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

var languages = []string{"spanish", "english"}

func newSummarize(checker *checkerFake, s *summarizerFake, ex extractorFake) *SummarizeUseCase {
	return NewSummarizeUseCase(checker, s, ex, nil, languages, nil, nil)
}

func TestSummarizeTextJoinsSentences(t *testing.T) {
	checker := newCheckerFake()
	s := &summarizerFake{sentences: []string{"Uno.", "Dos.", "Tres."}}
	res := newSummarize(checker, s, extractorFake{}).SummarizeText(context.Background(), "Uno. Dos. Tres.", 2, "spanish")
	if res.Failed() || res.Summary != "Uno. Dos." {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(checker.textCalls) != 1 || checker.textCalls[0] != "spanish" {
		t.Fatalf("expected one text check for spanish, got %v", checker.textCalls)
	}
}

func TestSummarizeTextEdgeCases(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		sentences int
		language  string
		wantErr   string
		wantKind  domain.FailureKind
	}{
		{"empty text", "  ", 3, "spanish", "", domain.FailureNone},
		{"too few sentences", "Hola.", 0, "spanish", "the number of sentences must be between 1 and 50.", domain.FailureInvalidInput},
		{"too many sentences", "Hola.", 51, "spanish", "the number of sentences must be between 1 and 50.", domain.FailureInvalidInput},
		{"unsupported language", "Hola.", 3, "french", "unsupported language 'french'.", domain.FailureInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := newSummarize(newCheckerFake(), &summarizerFake{}, extractorFake{}).
				SummarizeText(context.Background(), tc.text, tc.sentences, tc.language)
			if res.Error != tc.wantErr || res.Kind != tc.wantKind || res.Summary != "" {
				t.Fatalf("unexpected result %+v", res)
			}
		})
	}
}

func TestSummarizeTextUnavailable(t *testing.T) {
	checker := newCheckerFake()
	checker.missing[domain.DepLSA] = true
	res := newSummarize(checker, &summarizerFake{}, extractorFake{}).SummarizeText(context.Background(), "", 3, "spanish")
	if res.Error != domain.TextSummaryMissingMsg {
		t.Fatalf("engines missing: %+v", res)
	}

	checker = newCheckerFake()
	checker.text = domain.Unavailable(domain.TextSummaryMissingMsg + " (missing 'punkt')")
	res = newSummarize(checker, &summarizerFake{}, extractorFake{}).SummarizeText(context.Background(), "Hola.", 3, "spanish")
	if res.Error != checker.text.Reason || res.Kind != domain.FailureUnavailable {
		t.Fatalf("resource missing: %+v", res)
	}
}

func TestSummarizeTextEngineFailure(t *testing.T) {
	factorization := &domain.KindError{Name: "FactorizationError", Msg: "svd factorization failed"}
	s := &summarizerFake{err: fmt.Errorf("summarize: %w", factorization)}
	res := newSummarize(newCheckerFake(), s, extractorFake{}).SummarizeText(context.Background(), "Hola.", 3, "spanish")
	if res.Error != "unexpected error: FactorizationError" || res.Kind != domain.FailureDownstream {
		t.Fatalf("unexpected result %+v", res)
	}

	s = &summarizerFake{err: fmt.Errorf("sentence tokenizer: %w", domain.ErrResourceNotFound)}
	res = newSummarize(newCheckerFake(), s, extractorFake{}).SummarizeText(context.Background(), "Hola.", 3, "spanish")
	if !strings.HasPrefix(res.Error, "NLP resource not found: ") {
		t.Fatalf("unexpected result %+v", res)
	}
}

func writeTempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSummarizePDF(t *testing.T) {
	path := writeTempPDF(t)
	s := &summarizerFake{sentences: []string{"Primera."}}

	checker := newCheckerFake()
	checker.missing[domain.DepPDF] = true
	if res := newSummarize(checker, s, extractorFake{}).SummarizePDF(context.Background(), path, 1, "spanish"); res.Error != domain.PDFSummaryMissingMsg {
		t.Fatalf("pdf engine missing: %+v", res)
	}

	uc := newSummarize(newCheckerFake(), s, extractorFake{text: "Primera. Segunda."})
	if res := uc.SummarizePDF(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"), 1, "spanish"); res.Error != PDFNotFoundMsg {
		t.Fatalf("missing file: %+v", res)
	}
	res := uc.SummarizePDF(context.Background(), path, 1, "spanish")
	if res.Failed() || res.Summary != "Primera." || s.gotText != "Primera. Segunda." {
		t.Fatalf("success: %+v (text %q)", res, s.gotText)
	}

	extractErr := &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	uc = newSummarize(newCheckerFake(), s, extractorFake{err: fmt.Errorf("open pdf: %w", extractErr)})
	if res := uc.SummarizePDF(context.Background(), path, 1, "spanish"); res.Error != "error extracting text: PathError" {
		t.Fatalf("extract error: %+v", res)
	}

	uc = newSummarize(newCheckerFake(), s, extractorFake{text: " \n "})
	if res := uc.SummarizePDF(context.Background(), path, 1, "spanish"); res.Error != PDFNoTextMsg {
		t.Fatalf("blank text: %+v", res)
	}
}

func TestSummarizeUploadStoresSanitizedName(t *testing.T) {
	dir := t.TempDir()
	storage := &storageFake{dir: dir}
	uc := NewSummarizeUseCase(newCheckerFake(), &summarizerFake{sentences: []string{"Uno."}}, extractorFake{text: "Uno."}, storage, languages, nil, nil)

	key, res := uc.SummarizeUpload(context.Background(), `C:\Users\ana\Mi informe (final).pdf`, strings.NewReader("%PDF"), 1, "spanish")
	if !strings.HasSuffix(key, "_Mi_informe__final_.pdf") {
		t.Fatalf("unexpected key %q", key)
	}
	if storage.saved[key] != "%PDF" {
		t.Fatalf("upload not saved under %q", key)
	}
	// storageFake does not write to disk, so the stored path does not exist.
	if res.Error != PDFNotFoundMsg {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report.pdf":        "report.pdf",
		"../../etc/passwd":  "passwd",
		"informe año.pdf":   "informe_a_o.pdf",
		"":                  "document.pdf",
		"..":                "document.pdf",
		".hidden.pdf":       "hidden.pdf",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

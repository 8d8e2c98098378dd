package httpadapter

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kirillkom/textdesk/internal/capability"
	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/infrastructure/session"
)

const (
	screenshotFile     = "screenshot.png"
	defaultSentences   = 5
	maxSentences       = 50
	multipartMemoryCap = 1 << 20
)

//go:embed web/templates/*.html web/assets/*
var webFS embed.FS

func parsePages() *template.Template {
	return template.Must(template.New("pages").ParseFS(webFS, "web/templates/*.html"))
}

func assetsHandler() http.Handler {
	assets, err := fs.Sub(webFS, "web/assets")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/assets/", http.FileServer(http.FS(assets)))
}

type missingMessages struct {
	Sentiment   string
	TextSummary string
	PDFSummary  string
	Keywords    string
	Screenshot  string
}

type indexView struct {
	Flags           capability.UIFlags
	Missing         missingMessages
	Languages       []string
	DefaultLanguage string
	MaxSentences    int
	Session         session.Data
	Toasts          []session.Toast
	ScreenshotURL   string
	Year            int
}

func (rt *Router) index(w http.ResponseWriter, r *http.Request) {
	id := rt.sessionID(w, r)
	rt.renderIndex(w, id)
}

func (rt *Router) about(w http.ResponseWriter, _ *http.Request) {
	rt.render(w, "about.html", map[string]any{"Year": time.Now().Year()})
}

func (rt *Router) renderIndex(w http.ResponseWriter, id string) {
	data, _ := rt.sessions.Get(id)
	view := indexView{
		Flags: rt.flags,
		Missing: missingMessages{
			Sentiment:   domain.SentimentMissingMsg,
			TextSummary: domain.TextSummaryMissingMsg,
			PDFSummary:  domain.PDFSummaryMissingMsg,
			Keywords:    domain.KeywordsMissingMsg,
			Screenshot:  domain.ScreenshotMissingMsg,
		},
		Languages:       rt.cfg.SupportedLanguages,
		DefaultLanguage: rt.cfg.DefaultLanguage,
		MaxSentences:    maxSentences,
		Session:         data,
		Toasts:          rt.sessions.PopToasts(id),
		Year:            time.Now().Year(),
	}
	if data.ScreenshotFile != "" {
		view.ScreenshotURL = fmt.Sprintf("/static/%s?v=%d", url.PathEscape(data.ScreenshotFile), data.ScreenshotMTime)
	}
	rt.render(w, "index.html", view)
}

func (rt *Router) render(w http.ResponseWriter, name string, view any) {
	var buf bytes.Buffer
	if err := rt.pages.ExecuteTemplate(&buf, name, view); err != nil {
		rt.logger.Error("template_render_failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// submit dispatches the index form on the button that was pressed.
func (rt *Router) submit(w http.ResponseWriter, r *http.Request) {
	id := rt.sessionID(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemoryCap); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rt.sessions.Flash(id, "danger", fmt.Sprintf("Error: the file exceeds the %d MiB upload limit.", rt.cfg.MaxUploadBytes>>20))
		} else {
			rt.sessions.Flash(id, "danger", "Error: the form could not be read.")
		}
		rt.logger.Warn("form_parse_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		redirectHome(w, r)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	switch {
	case r.PostForm.Has("submit_clear"):
		rt.sessions.Clear(id)
		rt.sessions.Flash(id, "success", "Interface cleared.")
		redirectHome(w, r)
	case r.PostForm.Has("submit_pdf"):
		rt.submitPDF(w, r, id)
	case r.PostForm.Has("submit_capture"):
		rt.submitCapture(w, r, id)
	default:
		keys := make([]string, 0, len(r.PostForm))
		for k := range r.PostForm {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		rt.logger.Warn("unknown_form_submission", "request_id", requestIDFromContext(r.Context()), "fields", keys)
		rt.renderIndex(w, id)
	}
}

func (rt *Router) submitPDF(w http.ResponseWriter, r *http.Request, id string) {
	defer redirectHome(w, r)
	rt.sessions.Update(id, func(d *session.Data) {
		d.PDFSummary = ""
		d.PDFSummaryFailed = false
	})

	sentences, ok := parseSentenceCount(r.PostForm.Get("num_sentences_pdf"), defaultSentences)
	language := formLanguage(r.PostForm.Get("language_pdf"), rt.cfg.DefaultLanguage)
	if !ok || !rt.cfg.Supports(language) {
		rt.sessions.Flash(id, "warning", "Error in the PDF form. Check the fields.")
		return
	}

	file, header, err := r.FormFile("archivo_pdf")
	if err != nil || header.Filename == "" {
		rt.sessions.Flash(id, "danger", "Error: no PDF file was selected.")
		return
	}
	defer file.Close()

	name := normalizePDFName(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		rt.sessions.Flash(id, "danger", "Error: only .pdf files are allowed.")
		return
	}
	if a := rt.svc.Capabilities.CheckPDFSummary(); !a.Usable {
		rt.sessions.Flash(id, "danger", a.Reason)
		return
	}

	ctx, cancel := rt.featureContext(r)
	defer cancel()
	key, res := rt.svc.Summaries.SummarizeUpload(ctx, name, file, sentences, language)
	if res.Failed() {
		rt.logger.Error("pdf_summary_failed", "request_id", requestIDFromContext(r.Context()), "file", key, "error", res.Error)
		rt.sessions.Flash(id, "danger", "Error processing the PDF: "+res.Error)
		rt.sessions.Update(id, func(d *session.Data) { d.PDFSummaryFailed = true })
		return
	}
	rt.sessions.Update(id, func(d *session.Data) {
		d.PDFName = key
		d.PDFSummary = res.Summary
		d.PDFSummaryLang = language
		d.PDFSentences = sentences
	})
	rt.sessions.Flash(id, "success", "PDF summary generated.")
}

func (rt *Router) submitCapture(w http.ResponseWriter, r *http.Request, id string) {
	defer redirectHome(w, r)
	rt.sessions.Update(id, func(d *session.Data) {
		d.ScreenshotFile = ""
		d.ScreenshotMTime = 0
	})

	if a := rt.svc.Capabilities.CheckScreenshot(); !a.Usable {
		rt.sessions.Flash(id, "danger", a.Reason)
		return
	}

	dest := filepath.Join(rt.cfg.StaticDir, screenshotFile)
	ctx, cancel := rt.featureContext(r)
	defer cancel()
	if res := rt.svc.Capture.Capture(ctx, dest); res.Failed() {
		rt.logger.Error("capture_failed", "request_id", requestIDFromContext(r.Context()), "error", res.Error)
		rt.sessions.Flash(id, "danger", "Error capturing the screen: "+res.Error)
		return
	}

	info, err := os.Stat(dest)
	if err != nil {
		rt.sessions.Flash(id, "danger", "Error: the saved capture was not found.")
		return
	}
	rt.sessions.Update(id, func(d *session.Data) {
		d.ScreenshotFile = screenshotFile
		d.ScreenshotMTime = info.ModTime().Unix()
	})
	rt.sessions.Flash(id, "success", "Screen captured.")
}

// normalizePDFName drops a doubled ".pdf.pdf" suffix some browsers produce.
func normalizePDFName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf.pdf") {
		return name[:len(name)-len(".pdf")]
	}
	return name
}

func formLanguage(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

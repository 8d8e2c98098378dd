package httpadapter

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kirillkom/textdesk/internal/capability"
	"github.com/kirillkom/textdesk/internal/config"
	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
	"github.com/kirillkom/textdesk/internal/infrastructure/session"
	"github.com/kirillkom/textdesk/internal/observability/metrics"
)

const serviceName = "textdesk-api"

// SummaryService adds upload handling to the summary contract.
type SummaryService interface {
	ports.SummaryService
	SummarizeUpload(ctx context.Context, filename string, body io.Reader, sentences int, language string) (string, domain.SummaryResult)
}

type Services struct {
	Humanizer    ports.TextHumanizer
	Sentiment    ports.SentimentService
	Summaries    SummaryService
	Keywords     ports.KeywordService
	Capture      ports.CaptureService
	Capabilities ports.CapabilityReader
}

type Router struct {
	cfg      config.Config
	svc      Services
	sessions *session.Store
	flags    capability.UIFlags
	logger   *slog.Logger
	metrics  *metrics.HTTPServerMetrics
	pages    *template.Template
}

func NewRouter(
	cfg config.Config,
	svc Services,
	sessions *session.Store,
	flags capability.UIFlags,
	logger *slog.Logger,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		cfg:      cfg,
		svc:      svc,
		sessions: sessions,
		flags:    flags,
		logger:   logger,
		metrics:  httpMetrics,
		pages:    parsePages(),
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", rt.index)
	mux.HandleFunc("POST /{$}", rt.submit)
	mux.HandleFunc("GET /about", rt.about)
	mux.HandleFunc("POST /ajax/humanize", rt.ajaxHumanize)
	mux.HandleFunc("POST /ajax/summarize_text", rt.ajaxSummarizeText)
	mux.HandleFunc("POST /ajax/keywords", rt.ajaxKeywords)
	mux.HandleFunc("GET /ajax/keywords.xlsx", rt.keywordsWorkbook)
	mux.HandleFunc("GET /api/capabilities", rt.capabilities)
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.Handle("GET /assets/", assetsHandler())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(rt.cfg.StaticDir))))
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.MaxInFlight, time.Duration(rt.cfg.BackpressureWaitMS)*time.Millisecond)
	handler = rateLimitMiddleware(rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst, rt.recordRateLimited, handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = recoverMiddleware(rt.logger, handler)
	handler = accessLogMiddleware(rt.logger, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) capabilities(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		language = rt.cfg.DefaultLanguage
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"language": language,
		"features": rt.svc.Capabilities.Snapshot(language),
	})
}

func (rt *Router) recordRateLimited(path string) {
	if rt.metrics != nil {
		rt.metrics.RecordRateLimited(serviceName, path)
	}
}

// featureContext bounds a single feature call.
func (rt *Router) featureContext(r *http.Request) (context.Context, context.CancelFunc) {
	if rt.cfg.FeatureTimeoutSecs <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), time.Duration(rt.cfg.FeatureTimeoutSecs)*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kirillkom/textdesk/internal/capability"
	"github.com/kirillkom/textdesk/internal/config"
	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
	"github.com/kirillkom/textdesk/internal/core/usecase"
	"github.com/kirillkom/textdesk/internal/infrastructure/capture"
	"github.com/kirillkom/textdesk/internal/infrastructure/capture/browser"
	"github.com/kirillkom/textdesk/internal/infrastructure/capture/desktop"
	"github.com/kirillkom/textdesk/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/textdesk/internal/infrastructure/nlp/keywords"
	"github.com/kirillkom/textdesk/internal/infrastructure/nlp/sentiment"
	"github.com/kirillkom/textdesk/internal/infrastructure/nlp/summarize"
	"github.com/kirillkom/textdesk/internal/infrastructure/nlp/synonyms"
	"github.com/kirillkom/textdesk/internal/infrastructure/resilience"
	"github.com/kirillkom/textdesk/internal/infrastructure/resources"
	"github.com/kirillkom/textdesk/internal/infrastructure/session"
	"github.com/kirillkom/textdesk/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/textdesk/internal/observability/metrics"
)

const ServiceName = "textdesk-api"

type App struct {
	Config config.Config
	Logger *slog.Logger

	Registry    *capability.Registry
	Flags       capability.UIFlags
	HTTPMetrics *metrics.HTTPServerMetrics
	Sessions    *session.Store

	HumanizeUC     *usecase.HumanizeUseCase
	SentimentUC    *usecase.SentimentUseCase
	SummarizeUC    *usecase.SummarizeUseCase
	KeywordsUC     *usecase.KeywordsUseCase
	CaptureUC      *usecase.CaptureUseCase
	CapabilitiesUC *usecase.CapabilitiesUseCase
}

// readyCapturer is a screen capturer that can tell at startup whether it will work.
type readyCapturer interface {
	ports.ScreenCapturer
	Ready(ctx context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	storage, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}
	if err := os.MkdirAll(cfg.StaticDir, 0o755); err != nil {
		return nil, fmt.Errorf("init static dir: %w", err)
	}

	table, err := synonyms.Load(cfg.HumanizeSynonymsFile)
	if err != nil {
		return nil, fmt.Errorf("load synonyms: %w", err)
	}

	screen, err := newScreenCapturer(cfg)
	if err != nil {
		return nil, err
	}

	locator := resources.NewLocator(resources.DefaultRoots(cfg.DataPath)...).WithBundled(cfg.BundledDataDir)
	logger.Info("resource_roots", "roots", locator.Roots())

	facts := capability.Detect(ctx, logger, cfg.DisabledEngines, EngineChecks(locator, screen)...)
	registry := capability.NewRegistry(facts, locator, cfg.BundledDataDir, sentiment.Factory(locator), logger)

	httpMetrics := metrics.NewHTTPServerMetrics(ServiceName)
	featureMetrics := metrics.NewFeatureMetrics(ServiceName, httpMetrics.Registry())

	exec := resilience.NewExecutor(resilience.DefaultConfig()).WithLogger(logger)

	app := &App{
		Config:      cfg,
		Logger:      logger,
		Registry:    registry,
		HTTPMetrics: httpMetrics,
		Sessions:    session.NewStore(cfg.SessionMaxEntries, time.Duration(cfg.SessionTTLMinutes)*time.Minute),

		HumanizeUC:  usecase.NewHumanizeUseCase(table, cfg.HumanizeProbability, nil),
		SentimentUC: usecase.NewSentimentUseCase(registry, logger, featureMetrics),
		SummarizeUC: usecase.NewSummarizeUseCase(
			registry,
			summarize.NewLSA(locator, cfg.BundledDataDir),
			pdftext.NewExtractor(exec),
			storage,
			cfg.SupportedLanguages,
			logger,
			featureMetrics,
		),
		KeywordsUC:     usecase.NewKeywordsUseCase(registry, keywords.NewRake(locator, cfg.BundledDataDir), logger, featureMetrics),
		CaptureUC:      usecase.NewCaptureUseCase(registry, capture.NewGuarded(screen, exec), logger, featureMetrics),
		CapabilitiesUC: usecase.NewCapabilitiesUseCase(registry, featureMetrics),
	}
	app.Flags = registry.Flags(cfg.DefaultLanguage)
	logFeatures(logger, app.CapabilitiesUC.Snapshot(cfg.DefaultLanguage))
	return app, nil
}

// EngineChecks lists the engine checks in dependency order.
func EngineChecks(locator *resources.Locator, screen readyCapturer) []capability.EngineCheck {
	return []capability.EngineCheck{
		{
			Dependency: domain.DepNLP,
			Check: func(context.Context) error {
				if !locator.AnyRootExists() {
					return fmt.Errorf("%w: no resource root exists (searched %s)",
						domain.ErrResourceNotFound, strings.Join(locator.Roots(), ", "))
				}
				return nil
			},
		},
		{Dependency: domain.DepVader, Requires: []domain.Dependency{domain.DepNLP}, Check: sentiment.SelfTest},
		{Dependency: domain.DepLSA, Requires: []domain.Dependency{domain.DepNLP}, Check: summarize.SelfTest},
		{Dependency: domain.DepPDF, Check: pdftext.SelfTest},
		{Dependency: domain.DepRake, Requires: []domain.Dependency{domain.DepNLP}, Check: keywords.SelfTest},
		{Dependency: domain.DepScreenshot, Check: screen.Ready},
	}
}

func newScreenCapturer(cfg config.Config) (readyCapturer, error) {
	switch strings.ToLower(cfg.ScreenshotBackend) {
	case "", "desktop":
		return desktop.New(cfg.ScreenshotDisplay), nil
	case "browser":
		return browser.New(
			cfg.ScreenshotURL,
			browser.WithChromePath(cfg.ChromePath),
			browser.WithDownload(cfg.ChromeDownload),
			browser.WithNoSandbox(cfg.ChromeNoSandbox),
			browser.WithTimeout(time.Duration(cfg.FeatureTimeoutSecs)*time.Second),
		), nil
	default:
		return nil, fmt.Errorf("unknown screenshot backend %q (want desktop or browser)", cfg.ScreenshotBackend)
	}
}

func logFeatures(logger *slog.Logger, snapshot map[domain.Feature]domain.Availability) {
	for _, f := range domain.Features() {
		a := snapshot[f]
		if a.Usable {
			logger.Info("feature_available", "feature", f)
			continue
		}
		logger.Warn("feature_disabled", "feature", f, "reason", a.Reason)
	}
}

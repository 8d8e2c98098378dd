package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	APIPort        string
	LogLevel       string
	LogFormat      string
	MaxConnections int

	// DataPath is TEXTDESK_DATA: extra resource roots, path-list separated.
	DataPath       string
	BundledDataDir string
	UploadDir      string
	StaticDir      string
	MaxUploadBytes int64

	DefaultLanguage    string
	SupportedLanguages []string
	DisabledEngines    []string

	HumanizeProbability  float64
	HumanizeSynonymsFile string

	ScreenshotBackend  string
	ScreenshotURL      string
	ScreenshotDisplay  int
	ChromePath         string
	ChromeDownload     bool
	ChromeNoSandbox    bool
	FeatureTimeoutSecs int

	RateLimitRPS       float64
	RateLimitBurst     int
	MaxInFlight        int
	BackpressureWaitMS int

	SessionMaxEntries int
	SessionTTLMinutes int
	SessionCookie     string
	SessionSecure     bool
}

func Load() Config {
	return Config{
		APIPort:        mustEnv("API_PORT", "8080"),
		LogLevel:       mustEnv("LOG_LEVEL", "info"),
		LogFormat:      mustEnv("LOG_FORMAT", "json"),
		MaxConnections: mustEnvInt("MAX_CONNECTIONS", 256),

		DataPath:       mustEnv("TEXTDESK_DATA", ""),
		BundledDataDir: mustEnv("BUNDLED_DATA_DIR", "./data/textdesk_data_local"),
		UploadDir:      mustEnv("UPLOAD_DIR", "./data/uploads"),
		StaticDir:      mustEnv("STATIC_DIR", "./data/static"),
		MaxUploadBytes: int64(mustEnvInt("MAX_UPLOAD_BYTES", 16<<20)),

		DefaultLanguage:    mustEnv("DEFAULT_LANGUAGE", "spanish"),
		SupportedLanguages: mustEnvList("SUPPORTED_LANGUAGES", []string{"spanish", "english"}),
		DisabledEngines:    mustEnvList("DISABLED_ENGINES", nil),

		HumanizeProbability:  mustEnvFloat("HUMANIZE_PROBABILITY", 0.3),
		HumanizeSynonymsFile: mustEnv("HUMANIZE_SYNONYMS_FILE", ""),

		ScreenshotBackend:  mustEnv("SCREENSHOT_BACKEND", "desktop"),
		ScreenshotURL:      mustEnv("SCREENSHOT_URL", "about:blank"),
		ScreenshotDisplay:  mustEnvInt("SCREENSHOT_DISPLAY", 0),
		ChromePath:         mustEnv("CHROME_PATH", ""),
		ChromeDownload:     mustEnvBool("CHROME_DOWNLOAD", false),
		ChromeNoSandbox:    mustEnvBool("CHROME_NO_SANDBOX", false),
		FeatureTimeoutSecs: mustEnvInt("FEATURE_TIMEOUT_SECONDS", 60),

		RateLimitRPS:       mustEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     mustEnvInt("RATE_LIMIT_BURST", 10),
		MaxInFlight:        mustEnvInt("MAX_IN_FLIGHT", 32),
		BackpressureWaitMS: mustEnvInt("BACKPRESSURE_WAIT_MS", 250),

		SessionMaxEntries: mustEnvInt("SESSION_MAX_ENTRIES", 1000),
		SessionTTLMinutes: mustEnvInt("SESSION_TTL_MINUTES", 60),
		SessionCookie:     mustEnv("SESSION_COOKIE", "textdesk_session"),
		SessionSecure:     mustEnvBool("SESSION_SECURE", false),
	}
}

// Supports reports whether language is one of the configured summary
// languages.
func (c Config) Supports(language string) bool {
	for _, l := range c.SupportedLanguages {
		if l == language {
			return true
		}
	}
	return false
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

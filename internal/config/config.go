package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Analysis providers.
const (
	ProviderHeuristic = "heuristic"
	ProviderGemini    = "gemini"
)

type Config struct {
	Port           string
	AllowedOrigins []string

	LogLevel  string
	LogPretty bool

	AnalysisProvider     string
	GeminiAPIKey         string
	GeminiModel          string
	AnalysisRateInterval time.Duration

	FetchTimeout  time.Duration
	ScrapeTimeout time.Duration
	ScrapeCache   time.Duration
	MaxConcurrent int
	MaxUploadMB   int
	FontPath      string
}

func Load() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8000"),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogPretty:            getEnvBool("LOG_PRETTY", false),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AnalysisRateInterval: time.Duration(getEnvInt("ANALYSIS_RATE_INTERVAL_MS", 1000)) * time.Millisecond,
		FetchTimeout:         time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		ScrapeTimeout:        time.Duration(getEnvInt("SCRAPE_TIMEOUT_SECONDS", 10)) * time.Second,
		ScrapeCache:          time.Duration(getEnvInt("SCRAPE_CACHE_MINUTES", 30)) * time.Minute,
		MaxConcurrent:        getEnvInt("MAX_CONCURRENT", 3),
		MaxUploadMB:          getEnvInt("MAX_UPLOAD_MB", 20),
		FontPath:             strings.TrimSpace(os.Getenv("FONT_PATH")),
	}
	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))

	cfg.AnalysisProvider = strings.ToLower(strings.TrimSpace(os.Getenv("ANALYSIS_PROVIDER")))
	if cfg.AnalysisProvider == "" {
		cfg.AnalysisProvider = ProviderHeuristic
		if cfg.GeminiAPIKey != "" {
			cfg.AnalysisProvider = ProviderGemini
		}
	}
	switch cfg.AnalysisProvider {
	case ProviderHeuristic:
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return Config{}, errors.New("GEMINI_API_KEY is required when ANALYSIS_PROVIDER=gemini")
		}
	default:
		return Config{}, fmt.Errorf("unknown ANALYSIS_PROVIDER %q", cfg.AnalysisProvider)
	}

	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.MaxUploadMB < 1 {
		cfg.MaxUploadMB = 20
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.ScrapeTimeout <= 0 {
		cfg.ScrapeTimeout = 10 * time.Second
	}
	if cfg.ScrapeCache < 0 {
		cfg.ScrapeCache = 0
	}
	if cfg.AnalysisRateInterval < 0 {
		cfg.AnalysisRateInterval = 0
	}

	return cfg, nil
}

// MaxUploadBytes is the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

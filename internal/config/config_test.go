package config

import (
	"reflect"
	"testing"
	"time"
)

var allKeys = []string{
	"PORT", "ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_PRETTY", "ANALYSIS_PROVIDER",
	"GEMINI_API_KEY", "GEMINI_MODEL", "ANALYSIS_RATE_INTERVAL_MS", "FETCH_TIMEOUT_SECONDS",
	"SCRAPE_TIMEOUT_SECONDS", "SCRAPE_CACHE_MINUTES", "MAX_CONCURRENT", "MAX_UPLOAD_MB", "FONT_PATH",
}

func clearEnv(t *testing.T) {
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8000" || cfg.AnalysisProvider != ProviderHeuristic || cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("cfg = %+v", cfg)
	}
	if want := []string{"http://localhost:3000", "http://localhost:5173"}; !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.FetchTimeout != 10*time.Second || cfg.ScrapeCache != 30*time.Minute || cfg.MaxConcurrent != 3 {
		t.Errorf("durations = %v %v %d", cfg.FetchTimeout, cfg.ScrapeCache, cfg.MaxConcurrent)
	}
	if cfg.MaxUploadBytes() != 20<<20 {
		t.Errorf("upload limit = %d", cfg.MaxUploadBytes())
	}
}

func TestLoadGeminiSelection(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	cfg, err := Load()
	if err != nil || cfg.AnalysisProvider != ProviderGemini {
		t.Fatalf("provider = %q, %v", cfg.AnalysisProvider, err)
	}

	t.Setenv("ANALYSIS_PROVIDER", "heuristic")
	if cfg, _ := Load(); cfg.AnalysisProvider != ProviderHeuristic {
		t.Errorf("explicit provider ignored: %q", cfg.AnalysisProvider)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANALYSIS_PROVIDER", "gemini")
	if _, err := Load(); err == nil {
		t.Error("expected error for gemini without key")
	}
	t.Setenv("ANALYSIS_PROVIDER", "openai")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestLoadClamps(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_CONCURRENT", "0")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "-4")
	t.Setenv("MAX_UPLOAD_MB", "nope")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxConcurrent != 1 || cfg.FetchTimeout != 10*time.Second || cfg.MaxUploadMB != 20 {
		t.Errorf("cfg = %+v", cfg)
	}
}

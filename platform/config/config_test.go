package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing DATABASE_URL to fail")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/skrytki")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetSearchDefaultLimit() != 100 || cfg.GetSearchMaxLimit() != 500 {
		t.Fatalf("expected limits 100/500, got %d/%d", cfg.GetSearchDefaultLimit(), cfg.GetSearchMaxLimit())
	}
	if cfg.GetSearchCacheTTL() != 10*time.Minute {
		t.Fatalf("expected 10m cache ttl, got %s", cfg.GetSearchCacheTTL())
	}
	if cfg.GetIngestRefreshInterval() != 24*time.Hour {
		t.Fatalf("expected 24h refresh interval, got %s", cfg.GetIngestRefreshInterval())
	}
	if cfg.IsMinIOEnabled() {
		t.Fatal("expected MinIO to be disabled without an endpoint")
	}
}

func TestLoadRejectsMaxBelowDefault(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/skrytki")
	t.Setenv("SEARCH_DEFAULT_LIMIT", "100")
	t.Setenv("SEARCH_MAX_LIMIT", "50")

	if _, err := Load(); err == nil {
		t.Fatal("expected max limit below default to fail")
	}
}

func TestLoadRequiresMinIOCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/skrytki")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected endpoint without credentials to fail")
	}
}

func TestCORSWildcardEnablesAllowAll(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/skrytki")
	t.Setenv("CORS_ORIGINS", "https://a.example, *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatal("expected wildcard origin to allow all")
	}
	if len(cfg.GetCORSOrigins()) != 2 {
		t.Fatalf("expected 2 trimmed origins, got %v", cfg.GetCORSOrigins())
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("SKRYTKI_API_URL", "http://api.example/")
	t.Setenv("SEARCH_DEBOUNCE", "150ms")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetAPIBaseURL() != "http://api.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.GetAPIBaseURL())
	}
	if cfg.GetSearchDebounce() != 150*time.Millisecond {
		t.Fatalf("expected 150ms debounce, got %s", cfg.GetSearchDebounce())
	}

	t.Setenv("SEARCH_DEBOUNCE", "soon")
	if _, err := LoadClient(); err == nil {
		t.Fatal("expected unparsable debounce to fail")
	}
}

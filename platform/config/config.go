// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// RedisConfig provides the shared redis connection settings.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SearchConfig provides settings for the search module.
type SearchConfig interface {
	GetSearchDefaultLimit() int
	GetSearchMaxLimit() int
	GetSearchCacheTTL() time.Duration
	GetSearchRateLimit() float64
	GetSearchRateBurst() int
}

// SchedulerConfig provides settings for the asynq client and worker.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	IsMinIOEnabled() bool
}

// IngestConfig provides settings for dataset imports.
type IngestConfig interface {
	GetIngestKeywordsFile() string
	GetIngestBucket() string
	GetIngestRefreshSource() string
	GetIngestRefreshInterval() time.Duration
}

// ClientConfig provides settings for the terminal search client.
type ClientConfig interface {
	GetAPIBaseURL() string
	GetSearchDebounce() time.Duration
	GetClientTimeout() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                string
	HTTPAddr           string
	DatabaseURL        string
	CORSAllowAll       bool
	CORSOrigins        []string
	RedisURL           string
	RedisTLSInsecure   bool
	SearchDefaultLimit int
	SearchMaxLimit     int
	SearchCacheTTL     time.Duration
	SearchRateLimit    float64
	SearchRateBurst    int
	AsynqQueueName     string
	AsynqConcurrency   int
	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	IngestKeywordsFile string
	IngestBucket       string
	IngestRefreshSrc   string
	IngestRefreshEvery time.Duration
	APIBaseURL         string
	SearchDebounce     time.Duration
	ClientTimeout      time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// RedisConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

// SearchConfig implementation
func (c *Config) GetSearchDefaultLimit() int       { return c.SearchDefaultLimit }
func (c *Config) GetSearchMaxLimit() int           { return c.SearchMaxLimit }
func (c *Config) GetSearchCacheTTL() time.Duration { return c.SearchCacheTTL }
func (c *Config) GetSearchRateLimit() float64      { return c.SearchRateLimit }
func (c *Config) GetSearchRateBurst() int          { return c.SearchRateBurst }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string  { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool      { return c.MinIOUseSSL }
func (c *Config) IsMinIOEnabled() bool      { return c.MinIOEndpoint != "" }

// IngestConfig implementation
func (c *Config) GetIngestKeywordsFile() string           { return c.IngestKeywordsFile }
func (c *Config) GetIngestBucket() string                 { return c.IngestBucket }
func (c *Config) GetIngestRefreshSource() string          { return c.IngestRefreshSrc }
func (c *Config) GetIngestRefreshInterval() time.Duration { return c.IngestRefreshEvery }

// ClientConfig implementation
func (c *Config) GetAPIBaseURL() string            { return c.APIBaseURL }
func (c *Config) GetSearchDebounce() time.Duration { return c.SearchDebounce }
func (c *Config) GetClientTimeout() time.Duration  { return c.ClientTimeout }

// Load reads the server configuration from environment variables.
func Load() (*Config, error) {
	cfg := read()

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SearchDefaultLimit < 1 {
		return nil, fmt.Errorf("SEARCH_DEFAULT_LIMIT must be positive")
	}
	if cfg.SearchMaxLimit < cfg.SearchDefaultLimit {
		return nil, fmt.Errorf("SEARCH_MAX_LIMIT cannot be lower than SEARCH_DEFAULT_LIMIT")
	}
	if cfg.IsMinIOEnabled() && (cfg.MinIOAccessKey == "" || cfg.MinIOSecretKey == "") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}

	return cfg, nil
}

// LoadClient reads the configuration of the terminal client. Unlike Load it
// does not require any server-side setting.
func LoadClient() (*Config, error) {
	cfg := read()

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("SKRYTKI_API_URL is required")
	}
	if cfg.SearchDebounce <= 0 {
		return nil, fmt.Errorf("SEARCH_DEBOUNCE must be a positive duration")
	}

	return cfg, nil
}

func read() *Config {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8080"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	return &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisTLSInsecure:   strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		SearchDefaultLimit: mustInt(getEnv("SEARCH_DEFAULT_LIMIT", "100")),
		SearchMaxLimit:     mustInt(getEnv("SEARCH_MAX_LIMIT", "500")),
		SearchCacheTTL:     mustDuration(getEnv("SEARCH_CACHE_TTL", "10m")),
		SearchRateLimit:    mustFloat(getEnv("SEARCH_RATE_LIMIT", "20")),
		SearchRateBurst:    mustInt(getEnv("SEARCH_RATE_BURST", "40")),
		AsynqQueueName:     getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:   mustInt(getEnv("ASYNQ_CONCURRENCY", "1")),
		MinIOEndpoint:      getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		IngestKeywordsFile: getEnv("INGEST_KEYWORDS_FILE", ""),
		IngestBucket:       getEnv("MINIO_BUCKET_DATASETS", "skrytki-datasets"),
		IngestRefreshSrc:   getEnv("INGEST_REFRESH_SOURCE", ""),
		IngestRefreshEvery: mustDuration(getEnv("INGEST_REFRESH_INTERVAL", "24h")),
		APIBaseURL:         strings.TrimRight(getEnv("SKRYTKI_API_URL", "http://localhost:8080"), "/"),
		SearchDebounce:     mustDuration(getEnv("SEARCH_DEBOUNCE", "200ms")),
		ClientTimeout:      mustDuration(getEnv("CLIENT_TIMEOUT", "10s")),
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

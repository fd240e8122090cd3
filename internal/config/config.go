package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultDocsURL is the canonical location of the Slurm REST API
// documentation.
const DefaultDocsURL = "https://raw.githubusercontent.com/SchedMD/slurm/master/doc/html/rest_api.shtml"

type Config struct {
	Port string

	// Source documentation
	DocsURL      string
	FetchTimeout time.Duration

	// Stamped into generated specs
	ServerURL string

	// Auth (optional; empty disables auth)
	APIKey string

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		DocsURL:      envOr("DOCS_URL", DefaultDocsURL),
		FetchTimeout: envDuration("FETCH_TIMEOUT", 30*time.Second),

		ServerURL: envOr("SERVER_URL", "http://localhost:6820"),

		APIKey: os.Getenv("SLURMSPEC_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.DocsURL == "" {
		return fmt.Errorf("DOCS_URL is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL   = "https://api.discogs.com"
	DefaultUserAgent = "VinylPricer/0.1"
	DefaultTimeout   = 30 * time.Second
)

// Config represents environment-derived settings.
type Config struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

// Load reads .env (if present) and validates required settings.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config from the given lookup function.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Config{
		BaseURL:   strings.TrimSpace(getenv("DISCOGS_BASE_URL")),
		Token:     strings.TrimSpace(getenv("DISCOGS_TOKEN")),
		UserAgent: strings.TrimSpace(getenv("DISCOGS_USER_AGENT")),
		Timeout:   DefaultTimeout,
	}

	if cfg.Token == "" {
		return cfg, errors.New("DISCOGS_TOKEN is required (personal access token from discogs.com/settings/developers)")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return cfg, fmt.Errorf("DISCOGS_BASE_URL %q is not a valid URL: %w", cfg.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return cfg, fmt.Errorf("DISCOGS_BASE_URL must be an absolute http(s) URL: %q", cfg.BaseURL)
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	if raw := strings.TrimSpace(getenv("DISCOGS_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("DISCOGS_TIMEOUT %q is not a duration: %w", raw, err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("DISCOGS_TIMEOUT must be positive: %q", raw)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// Package config resolves server settings from an optional YAML file plus
// environment overrides, so main stays lean.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the reporter service needs at startup.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// SiteBaseURL is where the published site lives; the case index is
	// fetched relative to it.
	SiteBaseURL string `yaml:"site_base_url"`
	// IndexPath is the index location under SiteBaseURL. Empty means the
	// publishing pipeline's default, _data/search.json.
	IndexPath string `yaml:"index_path"`
	// FetchTimeout bounds one index fetch, e.g. "30s".
	FetchTimeout string `yaml:"fetch_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:         ":8080",
		SiteBaseURL:  "https://krabzholder.github.io/mayflower-reporter",
		FetchTimeout: "30s",
	}
}

// Load reads path (when non-empty), then applies environment overrides.
// A missing file with an empty path is not an error; a named file that
// cannot be read or parsed is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.Addr = getenv("REPORTER_ADDR", cfg.Addr)
	cfg.SiteBaseURL = getenv("REPORTER_SITE_URL", cfg.SiteBaseURL)
	cfg.IndexPath = getenv("REPORTER_INDEX_PATH", cfg.IndexPath)
	cfg.FetchTimeout = getenv("REPORTER_FETCH_TIMEOUT", cfg.FetchTimeout)
	return cfg, nil
}

// FetchTimeoutDuration parses FetchTimeout, falling back to 30s when the
// value is empty or malformed.
func (c Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// getenv returns the environment variable or a default.
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

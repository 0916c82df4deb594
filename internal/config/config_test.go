package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeoutDuration())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reporter.yaml")
	data := []byte("addr: \":9000\"\nsite_base_url: \"http://reporter.test\"\nindex_path: \"data/index.json\"\nfetch_timeout: \"5s\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "http://reporter.test", cfg.SiteBaseURL)
	assert.Equal(t, "data/index.json", cfg.IndexPath)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeoutDuration())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reporter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\n"), 0o644))
	t.Setenv("REPORTER_ADDR", ":7777")
	t.Setenv("REPORTER_SITE_URL", "http://env.test")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, "http://env.test", cfg.SiteBaseURL)
}

func TestLoadMissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unclosed"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestFetchTimeoutFallback(t *testing.T) {
	cfg := Config{FetchTimeout: "not-a-duration"}
	assert.Equal(t, 30*time.Second, cfg.FetchTimeoutDuration())
	cfg.FetchTimeout = "-2s"
	assert.Equal(t, 30*time.Second, cfg.FetchTimeoutDuration())
}

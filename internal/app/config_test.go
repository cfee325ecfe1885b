package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/schedgrid/internal/document"
	"github.com/specialistvlad/schedgrid/internal/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		DefinitionPath: "defs",
		Format:         document.FormatXML,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(validConfig())
	require.NoError(t, err)
	assert.Equal(t, "defs", cfg.DefinitionPath)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing definition path", func(c *Config) { c.DefinitionPath = "" }},
		{"unknown format", func(c *Config) { c.Format = "json" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "yaml" }},
		{"negative debounce", func(c *Config) { c.Debounce = -time.Second }},
		{"port out of range", func(c *Config) { c.Watch = true; c.HealthcheckPort = 70000 }},
		{"health check without watch", func(c *Config) { c.HealthcheckPort = 8080 }},
		{"publish without bucket", func(c *Config) { c.Publish = true }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(&c)
			_, err := NewConfig(c)
			assert.Error(t, err)
		})
	}

	t.Run("publish with complete s3 settings", func(t *testing.T) {
		c := validConfig()
		c.Publish = true
		c.S3 = publish.Config{Endpoint: "localhost:9000", AccessKey: "key", SecretKey: "secret", Bucket: "schedules"}
		_, err := NewConfig(c)
		assert.NoError(t, err)
	})
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(dir, "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
output: out/
format: hcl
log_level: debug
variables:
  cpus: "8"
watch: true
debounce: 500ms
healthcheck_port: 8081
s3:
  endpoint: localhost:9000
  bucket: schedules
  prefix: nightly
`), 0o644))

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "out/", s.Output)
		assert.Equal(t, "hcl", s.Format)
		assert.Equal(t, "debug", s.LogLevel)
		assert.Equal(t, map[string]string{"cpus": "8"}, s.Variables)
		assert.True(t, s.Watch)
		assert.Equal(t, 500*time.Millisecond, s.Debounce)
		assert.Equal(t, 8081, s.HealthcheckPort)
		assert.Equal(t, "schedules", s.S3.Bucket)
		assert.Equal(t, "nightly", s.S3.Prefix)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, Settings{}, *s)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: 4\n"), 0o644))
		_, err := LoadSettings(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field workers not found")
	})

	t.Run("secret is not read from the file", func(t *testing.T) {
		path := filepath.Join(dir, "secret.yaml")
		require.NoError(t, os.WriteFile(path, []byte("s3:\n  secret_key: hunter2\n"), 0o644))
		_, err := LoadSettings(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCHEDGRID_TEST_A=from-file\nSCHEDGRID_TEST_B=file-only\n"), 0o644))
	t.Setenv("SCHEDGRID_TEST_A", "from-process")

	getenv, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "from-process", getenv("SCHEDGRID_TEST_A"))
	assert.Equal(t, "file-only", getenv("SCHEDGRID_TEST_B"))
	assert.Empty(t, getenv("SCHEDGRID_TEST_MISSING"))
	_, set := os.LookupEnv("SCHEDGRID_TEST_B")
	assert.False(t, set)

	getenv, err = LoadEnv("")
	require.NoError(t, err)
	assert.Equal(t, "from-process", getenv("SCHEDGRID_TEST_A"))

	_, err = LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "value", line["key"])

	buf.Reset()
	newLogger("bogus", "text", &buf).Debug("hidden")
	assert.Empty(t, buf.String())
	assert.True(t, newLogger("bogus", "text", &buf).Enabled(context.Background(), slog.LevelInfo))
}

func TestHealthEndpoints(t *testing.T) {
	cfg, err := NewConfig(validConfig())
	require.NoError(t, err)
	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(a.healthMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	a.record([]string{"S"}, nil)
	var status Status
	resp, err = http.Get(srv.URL + "/status")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, status.Generations)
	assert.Equal(t, []string{"S"}, status.Schedules)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "schedgrid_generation_duration_seconds")

	a.record(nil, errors.New("broken definition"))
	resp, err = http.Get(srv.URL + "/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	// The last good schedule list is kept.
	assert.Equal(t, []string{"S"}, a.Status().Schedules)
	assert.Equal(t, "broken definition", a.Status().LastError)
}

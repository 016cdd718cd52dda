package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/numen/pkg/api"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "numen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, found, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, ":8420", cfg.Addr)
	assert.Equal(t, transportHTTP, cfg.Transport)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: "127.0.0.1:9000"
transport: chassis
log_level: debug
search:
  max_letters: 6
  budget: -1
batch:
  workers: 2
`)
	cfg, found, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, transportChassis, cfg.Transport)
	assert.Equal(t, 6, cfg.Search.MaxLetters)
	assert.Equal(t, -1, cfg.Search.Budget)
	assert.Equal(t, 2, cfg.Batch.Workers)

	// untouched keys keep their defaults
	d := api.DefaultLimits()
	assert.Equal(t, d.MaxLimit, cfg.Search.MaxLimit)
	assert.Equal(t, d.MaxBatchNames, cfg.Batch.MaxNames)

	limits := cfg.limits()
	assert.Equal(t, 6, limits.MaxLetters)
	assert.Equal(t, -1, limits.SearchBudget)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "addr: [unclosed"},
		{"unknown transport", "transport: grpc"},
		{"cert without key", "cert_file: server.crt"},
		{"bad log level", "log_level: loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = parseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = parseLevel("")
	assert.Error(t, err)
}

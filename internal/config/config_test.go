package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"clan-dashboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		AppID:            "demo",
		ServerPort:       "8080",
		LogLevel:         "info",
		APITimeout:       10 * time.Second,
		ActiveWindow:     7 * 24 * time.Hour,
		TopTanksPerTier:  10,
		ChunkConcurrency: 1,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *config.Config)
		expectedError string
	}{
		{
			name:          "missing app id",
			mutate:        func(c *config.Config) { c.AppID = "" },
			expectedError: "WOT_APP_ID",
		},
		{
			name:          "empty port",
			mutate:        func(c *config.Config) { c.ServerPort = "" },
			expectedError: "SERVER_PORT",
		},
		{
			name:          "zero timeout",
			mutate:        func(c *config.Config) { c.APITimeout = 0 },
			expectedError: "API_TIMEOUT",
		},
		{
			name:          "negative active window",
			mutate:        func(c *config.Config) { c.ActiveWindow = -time.Hour },
			expectedError: "ACTIVE_WINDOW",
		},
		{
			name:          "zero top tanks",
			mutate:        func(c *config.Config) { c.TopTanksPerTier = 0 },
			expectedError: "TOP_TANKS_PER_TIER",
		},
		{
			name:          "zero concurrency",
			mutate:        func(c *config.Config) { c.ChunkConcurrency = 0 },
			expectedError: "CHUNK_CONCURRENCY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WOT_APP_ID", "demo")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("ACTIVE_WINDOW", "")
	t.Setenv("TOP_TANKS_PER_TIER", "")
	t.Setenv("CHUNK_CONCURRENCY", "")
	t.Setenv("WOT_API_BASE", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.AppID)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.ActiveWindow)
	assert.Equal(t, 10, cfg.TopTanksPerTier)
	assert.Equal(t, 1, cfg.ChunkConcurrency)
	assert.Empty(t, cfg.APIBase)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WOT_APP_ID", "demo")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("ACTIVE_WINDOW", "48h")
	t.Setenv("TOP_TANKS_PER_TIER", "5")
	t.Setenv("CHUNK_CONCURRENCY", "4")
	t.Setenv("WOT_API_BASE", "http://localhost:9000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 48*time.Hour, cfg.ActiveWindow)
	assert.Equal(t, 5, cfg.TopTanksPerTier)
	assert.Equal(t, 4, cfg.ChunkConcurrency)
	assert.Equal(t, "http://localhost:9000", cfg.APIBase)
}

func TestLoad_MissingAppID(t *testing.T) {
	t.Setenv("WOT_APP_ID", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WOT_APP_ID")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WOT_APP_ID=from-file\nLOG_LEVEL=debug\nTOP_TANKS_PER_TIER=3\n"), 0o600))
	t.Chdir(dir)
	for _, key := range []string{"WOT_APP_ID", "LOG_LEVEL", "TOP_TANKS_PER_TIER"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.AppID)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.TopTanksPerTier)
}

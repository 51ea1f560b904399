package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"clan-dashboard/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	AppID      string
	ServerPort string
	LogLevel   string

	// APIBase replaces the per-realm https://api.worldoftanks.<realm> host when set.
	APIBase    string
	APITimeout time.Duration

	ActiveWindow     time.Duration
	TopTanksPerTier  int
	ChunkConcurrency int

	envFileLoaded bool
}

// Load reads .env (when present) before anything else, so every setting,
// LOG_LEVEL included, can come from either the file or the environment.
func Load() (*Config, error) {
	envErr := godotenv.Load()

	cfg := &Config{
		AppID:            getEnv("WOT_APP_ID", ""),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		APIBase:          getEnv("WOT_API_BASE", ""),
		APITimeout:       getEnvDuration("API_TIMEOUT", constants.ExternalAPITimeout),
		ActiveWindow:     getEnvDuration("ACTIVE_WINDOW", constants.DefaultActiveWindow),
		TopTanksPerTier:  getEnvInt("TOP_TANKS_PER_TIER", constants.DefaultTopTanksPerTier),
		ChunkConcurrency: getEnvInt("CHUNK_CONCURRENCY", 1),
		envFileLoaded:    envErr == nil,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogSummary reports the effective configuration once a logger exists.
func (c *Config) LogSummary(logger zerolog.Logger) {
	if !c.envFileLoaded {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	logger.Info().
		Str("server_port", c.ServerPort).
		Str("log_level", c.LogLevel).
		Str("api_base", c.APIBase).
		Dur("api_timeout", c.APITimeout).
		Dur("active_window", c.ActiveWindow).
		Int("top_tanks_per_tier", c.TopTanksPerTier).
		Int("chunk_concurrency", c.ChunkConcurrency).
		Msg("configuration loaded")
}

func (c *Config) Validate() error {
	if c.AppID == "" {
		return fmt.Errorf("WOT_APP_ID is required")
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	if c.ActiveWindow <= 0 {
		return fmt.Errorf("ACTIVE_WINDOW must be positive, got %s", c.ActiveWindow)
	}
	if c.TopTanksPerTier < 1 {
		return fmt.Errorf("TOP_TANKS_PER_TIER must be at least 1, got %d", c.TopTanksPerTier)
	}
	if c.ChunkConcurrency < 1 {
		return fmt.Errorf("CHUNK_CONCURRENCY must be at least 1, got %d", c.ChunkConcurrency)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Unparseable values keep the fallback; Validate catches the rest.
func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

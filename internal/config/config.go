// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ewilliams-labs/vibestudio/internal/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	DataDir         string
	StorageDriver   string // sqlite | badger
	DBFileName      string
	DBPath          string
	AuthStrategy    string // plain | bcrypt
	SuggestProvider string // gemini | ollama | none
	GeminiAPIKey    string
	GeminiToken     string
	GeminiModel     string
	GeminiBaseURL   string
	OllamaHost      string
	OllamaModel     string
	SuggestTimeout  time.Duration
	SuggestLanguage string
	SuggestWorkers  int
	SuggestQueue    int
	PlaybackTick    time.Duration
	LogLevel        string
	LogFile         string
}

const (
	defaultDataDir         = "."
	defaultStorageDriver   = "sqlite"
	defaultAuthStrategy    = "plain"
	defaultSuggestProvider = "gemini"
	defaultGeminiModel     = "gemini-3-flash-preview"
	defaultGeminiBaseURL   = "https://generativelanguage.googleapis.com"
	defaultOllamaModel     = "deepseek-r1:8b"
	defaultSuggestTimeout  = 20 * time.Second
	defaultSuggestLanguage = "Spanish"
	defaultSuggestWorkers  = 2
	defaultSuggestQueue    = 16
	defaultPlaybackTick    = time.Second
	defaultLogLevel        = "info"
)

var log = logger.For("config")

// Load reads the environment, applying defaults for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:         getEnv("DATA_DIR", defaultDataDir),
		StorageDriver:   getEnv("STORAGE_DRIVER", defaultStorageDriver),
		DBFileName:      os.Getenv("DB_FILE_NAME"),
		AuthStrategy:    getEnv("AUTH_STRATEGY", defaultAuthStrategy),
		SuggestProvider: getEnv("SUGGEST_PROVIDER", defaultSuggestProvider),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiToken:     os.Getenv("GEMINI_ACCESS_TOKEN"),
		GeminiModel:     getEnv("GEMINI_MODEL", defaultGeminiModel),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", defaultGeminiBaseURL),
		OllamaHost:      os.Getenv("OLLAMA_HOST"),
		OllamaModel:     getEnv("OLLAMA_MODEL", defaultOllamaModel),
		SuggestTimeout:  parseDurationOrDefault("SUGGEST_TIMEOUT", defaultSuggestTimeout),
		SuggestLanguage: getEnv("SUGGEST_LANGUAGE", defaultSuggestLanguage),
		SuggestWorkers:  parseIntOrDefault("SUGGEST_WORKERS", defaultSuggestWorkers),
		SuggestQueue:    parseIntOrDefault("SUGGEST_QUEUE", defaultSuggestQueue),
		PlaybackTick:    parseDurationOrDefault("PLAYBACK_TICK", defaultPlaybackTick),
		LogLevel:        getEnv("LOG_LEVEL", defaultLogLevel),
		LogFile:         os.Getenv("LOG_FILE"),
	}

	switch cfg.StorageDriver {
	case "sqlite":
		if cfg.DBFileName == "" {
			cfg.DBFileName = "vibe_studio.db"
		}
	case "badger":
		if cfg.DBFileName == "" {
			cfg.DBFileName = "vibe_studio.badger"
		}
	default:
		return nil, fmt.Errorf("config: unknown storage driver %q", cfg.StorageDriver)
	}
	switch cfg.AuthStrategy {
	case "plain", "bcrypt":
	default:
		return nil, fmt.Errorf("config: unknown auth strategy %q", cfg.AuthStrategy)
	}
	switch cfg.SuggestProvider {
	case "gemini", "ollama", "none":
	default:
		return nil, fmt.Errorf("config: unknown suggestion provider %q", cfg.SuggestProvider)
	}

	cfg.DBPath = filepath.Join(cfg.DataDir, cfg.DBFileName)
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("config: create data directory %s: %w", cfg.DataDir, err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warnf("could not parse %s=%q, using default %v", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func parseIntOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Warnf("could not parse %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

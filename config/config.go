// Package config loads stageplay settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Save backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds the application configuration.
type Config struct {
	SaveDir       string `env:"STAGEPLAY_SAVE_DIR"`
	SaveBackend   string `env:"STAGEPLAY_SAVE_BACKEND"   envDefault:"file"`
	RedisAddr     string `env:"STAGEPLAY_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"STAGEPLAY_REDIS_PASSWORD"`
	RedisDB       int    `env:"STAGEPLAY_REDIS_DB"       envDefault:"0"`
	RedisPrefix   string `env:"STAGEPLAY_REDIS_PREFIX"   envDefault:"stageplay:save:"`
	LogLevel      string `env:"STAGEPLAY_LOG_LEVEL"`
}

// Load parses the environment and fills in the default save directory.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.SaveBackend {
	case BackendFile, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown save backend %q (want %q or %q)", cfg.SaveBackend, BackendFile, BackendRedis)
	}
	if cfg.SaveDir == "" {
		cfg.SaveDir = DefaultSaveDir()
	}
	return &cfg, nil
}

// DefaultSaveDir resolves the per-user save directory: the user config
// directory when available, the home directory otherwise.
func DefaultSaveDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "stageplay", "saves")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".stageplay", "saves")
}

// Package config loads the absm command configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aretw0/absm/internal/logging"
)

// Store backends accepted by ABSM_STORE.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the environment-driven configuration. Command flags override it.
type Config struct {
	LogLevel    string        `env:"ABSM_LOG_LEVEL" envDefault:"info"`
	LogFile     string        `env:"ABSM_LOG_FILE"`
	Store       string        `env:"ABSM_STORE" envDefault:"file"`
	StorePath   string        `env:"ABSM_STORE_PATH" envDefault:".absm/machines"`
	RedisAddr   string        `env:"ABSM_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPrefix string        `env:"ABSM_REDIS_PREFIX" envDefault:"absm:machine:"`
	RedisTTL    time.Duration `env:"ABSM_REDIS_TTL"`
	SQLitePath  string        `env:"ABSM_SQLITE_PATH" envDefault:".absm/machines.db"`
	HTTPAddr    string        `env:"ABSM_HTTP_ADDR" envDefault:":8080"`
	TickRate    int           `env:"ABSM_TICK_RATE" envDefault:"60"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated and bounded settings.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want memory, file, redis or sqlite)", c.Store)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() slog.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

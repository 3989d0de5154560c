package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreFile {
		t.Fatalf("expected default store %q, got %q", StoreFile, cfg.Store)
	}
	if cfg.StorePath != ".absm/machines" {
		t.Fatalf("unexpected store path %q", cfg.StorePath)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.TickRate != 60 {
		t.Fatalf("unexpected tick rate %d", cfg.TickRate)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Fatalf("unexpected level %v", cfg.Level())
	}
	if cfg.LogFile != "/var/log/absm.log" {
		t.Fatalf("unexpected log file %q", cfg.LogFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ABSM_STORE", "redis")
	t.Setenv("ABSM_REDIS_ADDR", "cache:6380")
	t.Setenv("ABSM_REDIS_TTL", "90s")
	t.Setenv("ABSM_LOG_LEVEL", "debug")
	t.Setenv("ABSM_LOG_FILE", "/var/log/absm.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreRedis || cfg.RedisAddr != "cache:6380" {
		t.Fatalf("unexpected redis config: %+v", cfg)
	}
	if cfg.RedisTTL != 90*time.Second {
		t.Fatalf("unexpected ttl %v", cfg.RedisTTL)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("unexpected level %v", cfg.Level())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"bad store", "ABSM_STORE", "s3", "unknown store"},
		{"bad level", "ABSM_LOG_LEVEL", "loud", "unknown log level"},
		{"bad tick", "ABSM_TICK_RATE", "0", "tick rate"},
		{"unparsable", "ABSM_TICK_RATE", "fast", "parse env:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %v", tt.want, err)
			}
		})
	}
}

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/absm/internal/config"
	"github.com/aretw0/absm/pkg/adapters/file"
	"github.com/aretw0/absm/pkg/adapters/memory"
	"github.com/aretw0/absm/pkg/adapters/redis"
	"github.com/aretw0/absm/pkg/adapters/sqlite"
	"github.com/aretw0/absm/pkg/persistence/middleware"
	"github.com/aretw0/absm/pkg/ports"
)

// OpenStore creates the machine store selected by cfg, validating definitions and
// logging every operation. The returned close func is never nil.
func OpenStore(cfg config.Config, logger *slog.Logger) (ports.MachineStore, func() error, error) {
	store, closeFn, err := openBackend(cfg)
	if err != nil {
		return nil, closeFn, err
	}
	instrument, err := middleware.NewInstrumentMiddleware(logger, nil)
	if err != nil {
		return nil, closeFn, err
	}
	return middleware.Chain(store, instrument, middleware.NewValidationMiddleware()), closeFn, nil
}

func openBackend(cfg config.Config) (ports.MachineStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreFile:
		return file.New(cfg.StorePath), noop, nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithPrefix(cfg.RedisPrefix)}
		if cfg.RedisTTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.RedisTTL))
		}
		s := redis.New(cfg.RedisAddr, "", 0, opts...)
		return s, s.Close, nil
	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

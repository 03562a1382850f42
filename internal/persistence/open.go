package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/config"
)

// Open connects the backend named by cfg.Store.Backend. The returned close
// function releases backend resources and is always non-nil on success.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Store, func(), error) {
	var (
		store   Store
		closeFn = func() {}
	)

	switch cfg.Store.Backend {
	case config.StoreBackendMemory, "":
		logger.Warn("using in-memory store; records are lost on restart")
		store = NewMemoryStore()
	case config.StoreBackendSQLite:
		sqlite, err := OpenSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, nil, err
		}
		store = sqlite
		closeFn = func() { _ = sqlite.Close() }
	case config.StoreBackendRedis:
		r := NewRedis(cfg.Redis, logger)
		store = NewRedisStore(r)
		closeFn = r.Close
	case config.StoreBackendPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		store = NewPostgresStore(pg.PoolHandle())
		closeFn = pg.Close
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.Store.SilentWrites {
		store = Silent(store, logger)
	}
	return store, closeFn, nil
}

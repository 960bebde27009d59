package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-presenter-bot/internal/config"
	"github.com/aliskhannn/quiz-presenter-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/quiz-presenter-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/quiz-presenter-bot/internal/infra/redis"
	"github.com/aliskhannn/quiz-presenter-bot/internal/infra/sqlite"
	"github.com/aliskhannn/quiz-presenter-bot/internal/service"
	"github.com/aliskhannn/quiz-presenter-bot/internal/storage"
)

// newProgressPersister opens the progress backend selected by progress.driver.
// The returned func releases it.
func newProgressPersister(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.ProgressPersister, func(), error) {
	switch cfg.Progress.Driver {
	case config.DriverMemory:
		lg.Warn("progress is kept in memory and lost on restart")
		return storage.NewProgressStorage(), func() {}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		lg.Info("progress storage: sqlite", zap.String("path", cfg.SQLite.Path))
		return sqlite.NewProgressRepository(db), func() { _ = db.Close() }, nil

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, postgres.NewTransactor(pool)); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		lg.Info("progress storage: postgres")
		return pgrepo.NewProgressRepository(pool), pool.Close, nil

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, redis.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		lg.Info("progress storage: redis", zap.String("address", cfg.Redis.Address))
		return redis.NewProgressRepository(client), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownProgressDriver, cfg.Progress.Driver)
	}
}

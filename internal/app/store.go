package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-wellness/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

const redisKeyPrefix = "kanso:"

// Backend is the opened durable store plus the connections behind it.
type Backend struct {
	Store  domain.RecordStore
	Driver string
	DB     *sqlx.DB
	Redis  *redis.Client
}

type pinger interface {
	Ping(ctx context.Context) error
}

// OpenBackend opens the store selected by cfg.StoreDriver. With
// CACHE_ENABLED a SQL store is fronted by the Redis cache.
func OpenBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backend{Driver: cfg.StoreDriver}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		b.Store = repository.NewInMemoryRecordStore()
		return b, nil

	case config.DriverRedis:
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("app: open redis store: %w", err)
		}
		b.Redis = rdb
		b.Store = cache.NewRedisRecordStore(rdb, redisKeyPrefix)
		return b, nil

	case config.DriverSQLite:
		db, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("app: open sqlite store: %w", err)
		}
		b.DB = db

	case config.DriverPostgres:
		dsn := repository.PostgresDSN(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		db, err := repository.NewPostgresDB(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("app: open postgres store: %w", err)
		}
		b.DB = db

	default:
		return nil, fmt.Errorf("app: unknown store driver %q", cfg.StoreDriver)
	}

	sqlStore := repository.NewSQLRecordStore(b.DB, cfg.DBTable)
	if err := sqlStore.EnsureSchema(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("app: prepare %s store: %w", cfg.StoreDriver, err)
	}
	b.Store = sqlStore

	if cfg.CacheEnabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, running without record cache", zap.Error(err))
			return b, nil
		}
		b.Redis = rdb
		b.Store = repository.NewCachedRecordStore(sqlStore, rdb, logger)
		b.Driver += "+redis"
	}
	return b, nil
}

// Ping checks the connection under the store. Stores without one are
// always reachable.
func (b *Backend) Ping(ctx context.Context) error {
	if b.DB != nil {
		return b.DB.PingContext(ctx)
	}
	if p, ok := b.Store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (b *Backend) Close() error {
	var firstErr error
	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if b.DB != nil {
		if err := b.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

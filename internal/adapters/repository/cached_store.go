package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

const DefaultCacheTTL = 30 * time.Minute

var _ domain.RecordStore = (*CachedRecordStore)(nil)

// CachedRecordStore puts a Redis read cache in front of a durable store.
// The durable store is always written first; cache failures never fail a call.
type CachedRecordStore struct {
	next   domain.RecordStore
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedRecordStore(next domain.RecordStore, cache *redis.Client, logger *zap.Logger) *CachedRecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRecordStore{
		next:   next,
		cache:  cache,
		ttl:    DefaultCacheTTL,
		logger: logger.Named("cache"),
	}
}

func (r *CachedRecordStore) cacheKey(key string) string {
	return "records:" + key
}

func (r *CachedRecordStore) invalidate(ctx context.Context, key string) {
	if err := r.cache.Del(ctx, r.cacheKey(key)).Err(); err != nil {
		r.logger.Warn("failed to invalidate", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedRecordStore) Get(ctx context.Context, key string) (string, error) {
	ck := r.cacheKey(key)

	val, err := r.cache.Get(ctx, ck).Result()
	if err == nil {
		if json.Valid([]byte(val)) {
			return val, nil
		}
		r.logger.Warn("corrupted cache entry, cleaning up", zap.String("key", key))
		r.invalidate(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("redis read error", zap.Error(err))
	}

	val, err = r.next.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if setErr := r.cache.Set(ctx, ck, val, r.ttl).Err(); setErr != nil {
		r.logger.Warn("redis set error", zap.Error(setErr))
	}
	return val, nil
}

func (r *CachedRecordStore) Set(ctx context.Context, key, value string) error {
	if err := r.next.Set(ctx, key, value); err != nil {
		r.invalidate(ctx, key)
		return err
	}
	if err := r.cache.Set(ctx, r.cacheKey(key), value, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set error", zap.Error(err))
		r.invalidate(ctx, key)
	}
	return nil
}

func (r *CachedRecordStore) Remove(ctx context.Context, key string) error {
	if err := r.next.Remove(ctx, key); err != nil {
		return err
	}
	r.invalidate(ctx, key)
	return nil
}

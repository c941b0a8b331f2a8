package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func NewRedisClient(ctx context.Context, host, port, password string, dbIndex int) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     5,
		MinIdleConns: 1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

var _ domain.RecordStore = (*RedisRecordStore)(nil)

// RedisRecordStore uses Redis as the durable store. Values never expire.
type RedisRecordStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRecordStore(rdb *redis.Client, prefix string) *RedisRecordStore {
	return &RedisRecordStore{rdb: rdb, prefix: prefix}
}

func (s *RedisRecordStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisRecordStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrRecordNotFound
		}
		return "", fmt.Errorf("redis store: get %q: %w", key, err)
	}
	return val, nil
}

func (s *RedisRecordStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis store: set %q: %w", key, err)
	}
	return nil
}

func (s *RedisRecordStore) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis store: remove %q: %w", key, err)
	}
	return nil
}

func (s *RedisRecordStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

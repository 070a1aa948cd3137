package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mealops/kitchen-system/internal/api/metrics"
)

const redisKeyPrefix = "kv:"

// RedisStore is a Store backed by Redis. Values never expire; slots are
// plain JSON strings under a shared prefix.
type RedisStore struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisStore(client *redis.Client, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, log: log}
}

func (s *RedisStore) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis save %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		metrics.StorageErrors.WithLabelValues("redis").Inc()
		return false, fmt.Errorf("redis load %q: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("discarding corrupt storage slot")
		metrics.StorageErrors.WithLabelValues("redis").Inc()
		return false, nil
	}
	return true, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}
	return nil
}

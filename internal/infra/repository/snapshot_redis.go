package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis の文字列キー1つにスナップショットを置く
type RedisSnapshotStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// ttl=0 なら期限なし
func NewRedisSnapshotStorage(client *redis.Client, ttl time.Duration) *RedisSnapshotStorage {
	return &RedisSnapshotStorage{client: client, ttl: ttl}
}

func (s *RedisSnapshotStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisSnapshotStorage) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *RedisSnapshotStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

package db

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis は疎通確認まで行う。起動直後で Redis がまだ上がっていないことがあるので数回待つ。
func ConnectRedis(ctx context.Context, cfg config.Config, attempts int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if attempts < 1 {
		attempts = 1
	}

	var err error
	backoff := 500 * time.Millisecond
	for i := 0; i < attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			return client, nil
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 8*time.Second {
			backoff *= 2
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis %s not reachable after %d attempts: %w", cfg.RedisAddr, attempts, err)
}

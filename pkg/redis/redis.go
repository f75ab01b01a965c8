package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Config interface {
	GetAddr() string
	GetPassword() string
	GetDB() int
}

// New creates a redis client and verifies connectivity with a ping.
func New(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.GetPassword(),
		DB:       cfg.GetDB(),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

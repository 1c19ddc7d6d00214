package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sozercan/prodsight/internal/config"
)

type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedis(ctx context.Context, cfg config.StoreConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}, nil
}

func (r *Redis) key(userID string) string {
	return r.prefix + userID
}

func (r *Redis) LatestSummary(ctx context.Context, userID string) (string, bool, error) {
	s, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading summary: %w", err)
	}
	return s, true, nil
}

func (r *Redis) SaveSummary(ctx context.Context, userID, summary string) error {
	if err := r.client.Set(ctx, r.key(userID), summary, r.ttl).Err(); err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

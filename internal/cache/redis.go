package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

const snapshotKey = "inventory:snapshot"

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisCache) Get(ctx context.Context) ([]domain.InventoryItem, error) {
	data, err := r.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.InventoryItem
	if err = json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot failed: %w", err)
	}

	return items, nil
}

func (r *RedisCache) Set(ctx context.Context, items []domain.InventoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}

	if err = r.client.Set(ctx, snapshotKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}

	return nil
}

// Package cache keeps rendered dashboard snapshots in Redis. Snapshots are
// stored in one hash per project, one field per active week, so a single
// delete invalidates every view of the project.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SnapshotCache interface {
	// Get decodes the cached view into dest. It reports false on a miss.
	Get(ctx context.Context, projectID uuid.UUID, view string, dest any) (bool, error)
	Set(ctx context.Context, projectID uuid.UUID, view string, value any) error
	Invalidate(ctx context.Context, projectID uuid.UUID) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func key(projectID uuid.UUID) string {
	return "sitetrack:snapshot:" + projectID.String()
}

// field maps the default view (no week selected) to a stable hash field.
func field(view string) string {
	if view == "" {
		return "_"
	}
	return view
}

func (c *RedisCache) Get(ctx context.Context, projectID uuid.UUID, view string, dest any) (bool, error) {
	raw, err := c.client.HGet(ctx, key(projectID), field(view)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, projectID uuid.UUID, view string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	k := key(projectID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, k, field(view), raw)
	pipe.Expire(ctx, k, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	if err := c.client.Del(ctx, key(projectID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot: %w", err)
	}
	return nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, uuid.UUID, string, any) error         { return nil }
func (Nop) Invalidate(context.Context, uuid.UUID) error               { return nil }

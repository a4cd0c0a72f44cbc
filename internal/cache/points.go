package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdeck/taskdeck/internal/model"
)

const (
	// pointsCachePrefix is the Redis key prefix for project points rollups.
	pointsCachePrefix = "points:project:"
)

// ErrCacheMiss indicates the requested key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// pointsKey scopes the rollup by owner as well as project so one user's
// cached rollup can never be served to another.
func pointsKey(projectID, ownerID string) string {
	return pointsCachePrefix + ownerID + ":" + projectID
}

// GetProjectPoints retrieves a cached points rollup.
// Returns ErrCacheMiss when absent or unreadable.
func (c *Cache) GetProjectPoints(ctx context.Context, projectID, ownerID string) (*model.ProjectPoints, error) {
	data, err := c.client.Get(ctx, pointsKey(projectID, ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get points cache: %w", err)
	}

	var points model.ProjectPoints
	if err := json.Unmarshal(data, &points); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, ErrCacheMiss
	}

	return &points, nil
}

// SetProjectPoints caches a points rollup with the given TTL.
func (c *Cache) SetProjectPoints(ctx context.Context, ownerID string, points *model.ProjectPoints, ttl time.Duration) error {
	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshal points: %w", err)
	}

	return c.client.Set(ctx, pointsKey(points.ProjectID, ownerID), data, ttl).Err()
}

// InvalidateProjectPoints drops the cached rollup for a project.
// Called on every task write so reads never serve a stale sum past the
// write that changed it.
func (c *Cache) InvalidateProjectPoints(ctx context.Context, projectID, ownerID string) error {
	return c.client.Del(ctx, pointsKey(projectID, ownerID)).Err()
}

package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/anmshpython/to-do-list/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "tasks:list:"

// TaskCache caches per-user task lists in Redis.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

func listKey(userID int64) string {
	return keyListPrefix + strconv.FormatInt(userID, 10)
}

// GetList returns the cached list for the user, or nil on a miss.
func (c *TaskCache) GetList(ctx context.Context, userID int64) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, listKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the user's list in cache.
func (c *TaskCache) SetList(ctx context.Context, userID int64, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID), b, c.ttl).Err()
}

// Invalidate drops the user's cached list (cache invalidation on write).
func (c *TaskCache) Invalidate(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, listKey(userID)).Err()
}

// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache is a thin JSON cache over Redis. A nil *Cache is valid and disables
// caching, so callers never branch on availability.
type Cache struct {
	rdb *redis.Client
	log *logrus.Logger
}

// Connect dials Redis at addr. Returns an error when the ping fails; callers
// typically log it and continue with a nil cache.
func Connect(addr string, db int, log *logrus.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Cache{rdb: rdb, log: log}, nil
}

// GetJSON loads the value at key into v. Returns false on miss or any error.
func (c *Cache) GetJSON(ctx context.Context, key string, v interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		c.log.WithError(err).WithField("key", key).Debug("cache: bad payload")
		return false
	}
	return true
}

// SetJSON stores v at key with a TTL. Failures are logged and swallowed;
// the cache is advisory.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Debug("cache: set failed")
	}
}

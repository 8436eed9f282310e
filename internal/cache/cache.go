// Package cache wraps Redis for the two uses the marketplace has:
// a short-TTL JSON cache for restaurant menus and per-order locks that
// collapse concurrent duplicate status transitions into one.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shashikant-75555/swaadserve-demo/internal/config"
	"github.com/Shashikant-75555/swaadserve-demo/internal/logger"
)

// ErrCacheMiss is returned when the key is absent
var ErrCacheMiss = errors.New("cache miss")

const (
	menuTTL      = 5 * time.Minute
	orderLockTTL = 10 * time.Second
)

// Cache wraps the Redis client
type Cache struct {
	client *redis.Client
	logger *logger.Logger
}

// New connects to Redis and verifies the connection
func New(cfg *config.Config, log *logger.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client, logger: log}, nil
}

// Close closes the Redis client
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func menuKey(restaurantID string) string {
	return "menu:" + restaurantID
}

// GetMenu reads a cached restaurant menu into v
func (c *Cache) GetMenu(ctx context.Context, restaurantID string, v interface{}) error {
	data, err := c.client.Get(ctx, menuKey(restaurantID)).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SetMenu caches a restaurant menu. Failures are logged, not returned:
// the menu is always re-readable from the database.
func (c *Cache) SetMenu(ctx context.Context, restaurantID string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("cache_marshal_failed", "Failed to marshal menu for cache", "", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return
	}
	if err := c.client.Set(ctx, menuKey(restaurantID), data, menuTTL).Err(); err != nil {
		c.logger.Error("cache_set_failed", "Failed to cache menu", "", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
	}
}

// InvalidateMenu drops the cached menu for a restaurant
func (c *Cache) InvalidateMenu(ctx context.Context, restaurantID string) {
	if err := c.client.Del(ctx, menuKey(restaurantID)).Err(); err != nil {
		c.logger.Error("cache_del_failed", "Failed to invalidate menu cache", "", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
	}
}

// AcquireOrderLock takes the per-order transition lock. It returns
// false when another transition for the same order is in flight, which
// is how a double-clicked action button collapses to one transition.
func (c *Cache) AcquireOrderLock(ctx context.Context, orderNumber string) (bool, error) {
	key := "order_lock:" + orderNumber
	ok, err := c.client.SetNX(ctx, key, "1", orderLockTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReleaseOrderLock releases the per-order transition lock
func (c *Cache) ReleaseOrderLock(ctx context.Context, orderNumber string) {
	key := "order_lock:" + orderNumber
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("lock_release_failed", "Failed to release order lock", "", err, map[string]interface{}{
			"order_number": orderNumber,
		})
	}
}

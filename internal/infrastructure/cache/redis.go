package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sangkips/autoshop-api/internal/config"
)

// Cache keys
const (
	DashboardKey    = "dashboard:summary"
	DailyCashKeyFmt = "report:daily-cash:%s"

	DashboardTTL = 60 * time.Second
	DailyCashTTL = time.Hour
)

// Cache wraps a Redis client. A nil *Cache, or one whose client failed to
// connect, turns every call into a miss so callers never depend on Redis.
type Cache struct {
	client *redis.Client
}

// New connects to Redis. It returns a disabled cache when no address is
// configured or the server does not answer.
func New(cfg *config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		log.Println("[Cache] REDIS_ADDR not set, caching disabled")
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] Redis unavailable at %s, caching disabled: %v", cfg.Addr, err)
		client.Close()
		return &Cache{}
	}

	log.Printf("[Cache] Connected to Redis at %s", cfg.Addr)
	return &Cache{client: client}
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a Redis connection is available.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON decodes the value at key into dest. It reports false on a miss or
// any error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("[Cache] Corrupt entry %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores value at key for ttl. Failures are logged only.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[Cache] Failed to encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("[Cache] Failed to set %s: %v", key, err)
	}
}

// Delete removes keys, ignoring errors.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// Ping reports Redis health for the health endpoint.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

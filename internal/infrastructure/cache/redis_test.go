package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/autoshop-api/internal/config"
)

func TestDisabledCacheIsANoOp(t *testing.T) {
	ctx := context.Background()

	for name, c := range map[string]*Cache{
		"nil":      nil,
		"no addr":  New(&config.RedisConfig{}),
		"zero val": {},
	} {
		t.Run(name, func(t *testing.T) {
			if c.Enabled() {
				t.Fatalf("expected cache to be disabled")
			}
			c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute)
			var out map[string]int
			if c.GetJSON(ctx, "k", &out) {
				t.Fatalf("expected miss on disabled cache")
			}
			c.Delete(ctx, "k")
			if err := c.Ping(ctx); err != nil {
				t.Fatalf("ping on disabled cache: %v", err)
			}
		})
	}
}

package cache

import (
	"context"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Store is a raw key-value store with per-key expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores JSON encoded values in a Store. It never reports errors to callers:
// a failing read is a miss and a failing write is logged and dropped.
type Cache struct {
	store Store
}

func New(store Store) *Cache {
	return &Cache{store: store}
}

func (c *Cache) Get(ctx context.Context, key string, v any) bool {
	b, ok, err := c.store.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("err", err.Error()))
		return false
	} else if !ok {
		return false
	}

	if err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, v); err != nil {
		slog.WarnContext(ctx, "cache entry could not be decoded", slog.String("key", key), slog.String("err", err.Error()))
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) bool {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		slog.WarnContext(ctx, "cache entry could not be encoded", slog.String("key", key), slog.String("err", err.Error()))
		return false
	}

	if err = c.store.Set(ctx, key, b, normalizeTTL(ttl)); err != nil {
		slog.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("err", err.Error()))
		return false
	}

	return true
}

// TTLs are whole seconds at the store boundary.
func normalizeTTL(ttl time.Duration) time.Duration {
	return max(ttl.Truncate(time.Second), time.Second)
}

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bluele/gcache"
)

type Memory struct {
	c gcache.Cache
}

func NewMemory(size int) *Memory {
	return newMemory(size, gcache.NewRealClock())
}

func newMemory(size int, clock gcache.Clock) *Memory {
	return &Memory{
		c: gcache.New(size).LRU().Clock(clock).Build(),
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := m.c.Get(key)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, false, nil
		}

		return nil, false, err
	}

	b, ok := v.([]byte)
	return b, ok, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.c.SetWithExpire(key, value, ttl)
}

var _ Store = (*Memory)(nil)

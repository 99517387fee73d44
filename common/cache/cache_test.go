package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failingStore struct {
	getErr error
	setErr error
	raw    []byte
}

func (s failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}

	return s.raw, s.raw != nil, nil
}

func (s failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.setErr
}

type value struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemory(16))

	assert.True(t, c.Set(ctx, "k", value{"Якутск", 3}, time.Minute))

	var v value
	if assert.True(t, c.Get(ctx, "k", &v)) {
		assert.Equal(t, value{"Якутск", 3}, v)
	}

	assert.False(t, c.Get(ctx, "missing", &v))
}

func TestCache_FailOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("store read error", func(t *testing.T) {
		var v value
		assert.False(t, New(failingStore{getErr: errors.New("down")}).Get(ctx, "k", &v))
	})

	t.Run("undecodable entry", func(t *testing.T) {
		var v value
		assert.False(t, New(failingStore{raw: []byte("{not json")}).Get(ctx, "k", &v))
	})

	t.Run("store write error", func(t *testing.T) {
		assert.False(t, New(failingStore{setErr: errors.New("down")}).Set(ctx, "k", value{}, time.Minute))
	})

	t.Run("unencodable value", func(t *testing.T) {
		assert.False(t, New(NewMemory(1)).Set(ctx, "k", make(chan int), time.Minute))
	})
}

func TestNormalizeTTL(t *testing.T) {
	assert.Equal(t, time.Second, normalizeTTL(0))
	assert.Equal(t, time.Second, normalizeTTL(time.Millisecond*300))
	assert.Equal(t, time.Second*90, normalizeTTL(time.Second*90+time.Millisecond*999))
}

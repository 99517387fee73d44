package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := New(NewRedis(rdb))
	require.True(t, c.Set(ctx, "gars:timetable:abc", []string{"a", "b"}, time.Minute*30))
	assert.Equal(t, time.Minute*30, mr.TTL("gars:timetable:abc"))

	var v []string
	if assert.True(t, c.Get(ctx, "gars:timetable:abc", &v)) {
		assert.Equal(t, []string{"a", "b"}, v)
	}

	mr.FastForward(time.Minute * 31)
	assert.False(t, c.Get(ctx, "gars:timetable:abc", &v))
}

func TestRedis_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	c := New(NewRedis(rdb))

	var v string
	assert.False(t, c.Get(context.Background(), "k", &v))
	assert.False(t, c.Set(context.Background(), "k", "v", time.Minute))
}

func TestNewRedisFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	store, rdb, err := NewRedisFromURL("redis://" + mr.Addr() + "/0")
	if assert.NoError(t, err) {
		t.Cleanup(func() { _ = rdb.Close() })
		assert.NoError(t, store.Set(context.Background(), "k", []byte("1"), time.Second))
		assert.True(t, mr.Exists("k"))
	}

	_, _, err = NewRedisFromURL("::not a url")
	assert.Error(t, err)
}

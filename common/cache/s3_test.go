package cache

import (
	"context"
	"testing"
	"time"

	"github.com/explore-flights/multimodal/common/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.November, 25, 12, 0, 0, 0, time.UTC)

	store := NewS3(local.NewS3Client(t.TempDir()), "cache_bucket", "cache/")
	store.now = func() time.Time { return now }

	c := New(store)
	require.True(t, c.Set(ctx, "s7:Москва:Якутск:25.11.2025:one-way", []int{1, 2}, time.Hour))

	var v []int
	if assert.True(t, c.Get(ctx, "s7:Москва:Якутск:25.11.2025:one-way", &v)) {
		assert.Equal(t, []int{1, 2}, v)
	}

	assert.False(t, c.Get(ctx, "s7:Москва:Якутск:26.11.2025:one-way", &v))

	now = now.Add(time.Hour)
	assert.False(t, c.Get(ctx, "s7:Москва:Якутск:25.11.2025:one-way", &v))
}

func TestS3_ObjectKey(t *testing.T) {
	store := NewS3(nil, "b", "cache/")
	k := store.objectKey("gars:routes:filtered")

	assert.Regexp(t, `^cache/[0-9A-Za-z]+\.json$`, k)
	assert.NotEqual(t, k, store.objectKey("gars:routes:all"))
}

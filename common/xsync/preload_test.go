package xsync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreload_Value(t *testing.T) {
	var calls atomic.Int32
	pl := NewPreload(func() (string, error) {
		calls.Add(1)
		return "loaded", nil
	})

	for range 3 {
		v, err := pl.Value(context.Background())
		if assert.NoError(t, err) {
			assert.Equal(t, "loaded", v)
		}
	}

	assert.EqualValues(t, 1, calls.Load())
}

func TestPreload_Error(t *testing.T) {
	loadErr := errors.New("ssm unavailable")
	pl := NewPreload(func() (int, error) {
		return 0, loadErr
	})

	_, err := pl.Value(context.Background())
	assert.ErrorIs(t, err, loadErr)
}

func TestPreload_ContextDone(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	pl := NewPreload(func() (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
	defer cancel()

	_, err := pl.Value(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

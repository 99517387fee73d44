package itinerary

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/explore-flights/multimodal/api/flightjob"
	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/cache"
	"github.com/explore-flights/multimodal/common/xtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moscowYakutsk = common.FlightQuery{
	Origin:      "Москва",
	Destination: "Якутск",
	Date:        xtime.MustParseLocalDate("2025-11-25"),
}

func newTestPool(t *testing.T, fn flightjob.SearcherFunc) *flightjob.Pool {
	p := flightjob.NewPool(fn, flightjob.WithParallelism(4))
	t.Cleanup(p.Close)
	return p
}

func TestFlightSearch_CachesResult(t *testing.T) {
	var calls atomic.Int32
	p := newTestPool(t, func(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
		calls.Add(1)
		return []common.FlightOption{{FlightNumber: "S7 3012", Carrier: "S7", Price: 21500, Currency: "RUB"}}, nil
	})

	c := cache.New(cache.NewMemory(16))
	fs := NewFlightSearch(p, c, time.Second*5, DefaultFlightTTL)

	for range 3 {
		flights, err := fs.Flights(context.Background(), moscowYakutsk)
		if assert.NoError(t, err) && assert.Len(t, flights, 1) {
			assert.Equal(t, "S7 3012", flights[0].FlightNumber)
		}
	}

	assert.Equal(t, int32(1), calls.Load())

	var cached []common.FlightOption
	assert.True(t, c.Get(context.Background(), "s7:Москва:Якутск:25.11.2025:one-way", &cached))
	assert.Len(t, cached, 1)
}

func TestFlightSearch_ConcurrentLookupsShareJob(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	p := newTestPool(t, func(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
		calls.Add(1)
		<-release
		return []common.FlightOption{}, nil
	})

	fs := NewFlightSearch(p, cache.New(cache.NewMemory(16)), time.Second*5, DefaultFlightTTL)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fs.Flights(context.Background(), moscowYakutsk)
			assert.NoError(t, err)
		}()
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond*5)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestFlightSearch_EmptyResultIsCached(t *testing.T) {
	var calls atomic.Int32
	p := newTestPool(t, func(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
		calls.Add(1)
		return nil, nil
	})

	fs := NewFlightSearch(p, cache.New(cache.NewMemory(16)), time.Second*5, DefaultFlightTTL)

	for range 2 {
		flights, err := fs.Flights(context.Background(), moscowYakutsk)
		if assert.NoError(t, err) {
			assert.NotNil(t, flights)
			assert.Empty(t, flights)
		}
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestFlightSearch_CancelledCallerKeepsSharedJob(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	p := newTestPool(t, func(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
		calls.Add(1)

		select {
		case <-release:
			return []common.FlightOption{{FlightNumber: "S7 3012"}}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	c := cache.New(cache.NewMemory(16))
	fs := NewFlightSearch(p, c, time.Second*5, DefaultFlightTTL)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := fs.Flights(firstCtx, moscowYakutsk)
		firstErr <- err
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond*5)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	type result struct {
		flights []common.FlightOption
		err     error
	}

	second := make(chan result, 1)
	go func() {
		flights, err := fs.Flights(context.Background(), moscowYakutsk)
		second <- result{flights, err}
	}()

	// the job survived the cancelled caller, so the second lookup joins it instead of starting another
	time.Sleep(time.Millisecond * 50)
	close(release)

	select {
	case res := <-second:
		if assert.NoError(t, res.err) && assert.Len(t, res.flights, 1) {
			assert.Equal(t, "S7 3012", res.flights[0].FlightNumber)
		}
	case <-time.After(time.Second * 5):
		t.Fatal("second caller did not return")
	}

	assert.Equal(t, int32(1), calls.Load())

	var cached []common.FlightOption
	assert.True(t, c.Get(context.Background(), moscowYakutsk.CacheKey(), &cached))
}

func TestFlightSearch_Timeout(t *testing.T) {
	p := newTestPool(t, func(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	c := cache.New(cache.NewMemory(16))
	fs := NewFlightSearch(p, c, time.Millisecond*20, DefaultFlightTTL)

	_, err := fs.Flights(context.Background(), moscowYakutsk)

	var timeoutErr *UpstreamTimeoutError
	if assert.ErrorAs(t, err, &timeoutErr) {
		assert.Equal(t, "flight search", timeoutErr.Upstream)
	}

	var cached []common.FlightOption
	assert.False(t, c.Get(context.Background(), moscowYakutsk.CacheKey(), &cached))
}

func TestFlightSearch_Failure(t *testing.T) {
	searchErr := errors.New("page layout changed")
	p := newTestPool(t, func(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
		return nil, searchErr
	})

	c := cache.New(cache.NewMemory(16))
	fs := NewFlightSearch(p, c, time.Second*5, DefaultFlightTTL)

	_, err := fs.Flights(context.Background(), moscowYakutsk)

	var unavailableErr *UpstreamUnavailableError
	assert.ErrorAs(t, err, &unavailableErr)
	assert.ErrorIs(t, err, searchErr)

	var cached []common.FlightOption
	assert.False(t, c.Get(context.Background(), moscowYakutsk.CacheKey(), &cached))
}

func TestFlightSearch_SubmitRejected(t *testing.T) {
	p := flightjob.NewPool(flightjob.SearcherFunc(func(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
		return nil, nil
	}))
	p.Close()

	fs := NewFlightSearch(p, cache.New(cache.NewMemory(16)), time.Second, DefaultFlightTTL)

	_, err := fs.Flights(context.Background(), moscowYakutsk)
	require.Error(t, err)

	var unavailableErr *UpstreamUnavailableError
	assert.ErrorAs(t, err, &unavailableErr)
	assert.ErrorIs(t, err, flightjob.ErrPoolClosed)
}

package itinerary

import (
	"context"
	"errors"
	"time"

	"github.com/explore-flights/multimodal/api/flightjob"
	"github.com/explore-flights/multimodal/common"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultFlightTTL     = time.Hour
	DefaultFlightTimeout = time.Second * 120
	flightUpstream       = "flight search"
)

type Cache interface {
	Get(ctx context.Context, key string, v any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration) bool
}

// FlightSearch serves flight options from the cache and only submits a search job on a miss.
// Only successful results are cached.
type FlightSearch struct {
	jobs    flightjob.Port
	cache   Cache
	timeout time.Duration
	ttl     time.Duration
	sf      *singleflight.Group
}

func NewFlightSearch(jobs flightjob.Port, cache Cache, timeout, ttl time.Duration) *FlightSearch {
	return &FlightSearch{
		jobs:    jobs,
		cache:   cache,
		timeout: timeout,
		ttl:     ttl,
		sf:      new(singleflight.Group),
	}
}

func (fs *FlightSearch) Flights(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
	key := q.CacheKey()

	var flights []common.FlightOption
	if fs.cache.Get(ctx, key, &flights) {
		return flights, nil
	}

	// identical concurrent lookups share one job, it is bounded by the search timeout only
	ch := fs.sf.DoChan(key, func() (any, error) {
		return fs.search(context.WithoutCancel(ctx), key, q)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.([]common.FlightOption), nil

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (fs *FlightSearch) search(ctx context.Context, key string, q common.FlightQuery) ([]common.FlightOption, error) {
	var flights []common.FlightOption
	if fs.cache.Get(ctx, key, &flights) {
		return flights, nil
	}

	h, err := fs.jobs.Submit(ctx, q)
	if err != nil {
		return nil, &UpstreamUnavailableError{Upstream: flightUpstream, Cause: err}
	}

	flights, err = h.Await(ctx, fs.timeout)
	if err != nil {
		if errors.Is(err, flightjob.ErrTimeout) {
			return nil, &UpstreamTimeoutError{Upstream: flightUpstream, Cause: err}
		}

		return nil, &UpstreamUnavailableError{Upstream: flightUpstream, Cause: err}
	}

	if flights == nil {
		flights = []common.FlightOption{}
	}

	fs.cache.Set(ctx, key, flights, fs.ttl)
	return flights, nil
}

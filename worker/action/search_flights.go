package action

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
)

type FlightSearcher interface {
	Search(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error)
}

type Cache interface {
	Get(ctx context.Context, key string, v any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration) bool
}

type SearchFlightsParams struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DateOut     string `json:"dateOut"`
	DateBack    string `json:"dateBack,omitempty"`
	Force       bool   `json:"force,omitempty"`
}

type SearchFlightsOutput struct {
	Key     string                `json:"key"`
	Cached  bool                  `json:"cached"`
	Flights []common.FlightOption `json:"flights"`
}

type searchFlightsAction struct {
	searcher FlightSearcher
	cache    Cache
	timeout  time.Duration
	ttl      time.Duration
}

// NewSearchFlightsAction runs one flight search and stores the result under the key the API reads.
func NewSearchFlightsAction(searcher FlightSearcher, cache Cache, timeout, ttl time.Duration) Action[SearchFlightsParams, SearchFlightsOutput] {
	return &searchFlightsAction{
		searcher: searcher,
		cache:    cache,
		timeout:  timeout,
		ttl:      ttl,
	}
}

func (a *searchFlightsAction) Handle(ctx context.Context, params SearchFlightsParams) (SearchFlightsOutput, error) {
	date, err := xtime.ParseDottedDate(params.DateOut)
	if err != nil {
		return SearchFlightsOutput{}, fmt.Errorf("invalid dateOut %q: %w", params.DateOut, err)
	}

	q := common.FlightQuery{Origin: params.Origin, Destination: params.Destination, Date: date}
	if params.DateBack != "" {
		back, err := xtime.ParseDottedDate(params.DateBack)
		if err != nil {
			return SearchFlightsOutput{}, fmt.Errorf("invalid dateBack %q: %w", params.DateBack, err)
		}

		q.ReturnDate = &back
	}

	return a.search(ctx, q, params.Force)
}

func (a *searchFlightsAction) search(ctx context.Context, q common.FlightQuery, force bool) (SearchFlightsOutput, error) {
	output := SearchFlightsOutput{Key: q.CacheKey()}
	if !force && a.cache.Get(ctx, output.Key, &output.Flights) {
		output.Cached = true
		return output, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	flights, err := a.searcher.Search(ctx, q)
	if err != nil {
		return SearchFlightsOutput{}, fmt.Errorf("search %s: %w", q, err)
	}

	if flights == nil {
		flights = []common.FlightOption{}
	}

	output.Flights = flights
	a.cache.Set(ctx, output.Key, flights, a.ttl)

	slog.InfoContext(ctx, "flights prefetched", slog.String("query", q.String()), slog.Int("flights", len(flights)))
	return output, nil
}

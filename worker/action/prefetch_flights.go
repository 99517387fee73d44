package action

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/concurrent"
	"github.com/explore-flights/multimodal/common/xtime"
)

type PrefetchRoute struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type PrefetchFlightsParams struct {
	Routes      []PrefetchRoute `json:"routes"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Parallelism uint            `json:"parallelism,omitempty"`
	Force       bool            `json:"force,omitempty"`
}

type PrefetchFlightsOutput struct {
	Queries int      `json:"queries"`
	Cached  int      `json:"cached"`
	Flights int      `json:"flights"`
	Failed  []string `json:"failed"`
}

type prefetchFlightsAction struct {
	sfA *searchFlightsAction
}

// NewPrefetchFlightsAction searches every route for every day of a date range.
// Failed searches are reported in the output instead of failing the whole run.
func NewPrefetchFlightsAction(searcher FlightSearcher, cache Cache, timeout, ttl time.Duration) Action[PrefetchFlightsParams, PrefetchFlightsOutput] {
	return &prefetchFlightsAction{
		sfA: &searchFlightsAction{
			searcher: searcher,
			cache:    cache,
			timeout:  timeout,
			ttl:      ttl,
		},
	}
}

func (a *prefetchFlightsAction) Handle(ctx context.Context, params PrefetchFlightsParams) (PrefetchFlightsOutput, error) {
	var ldr xtime.LocalDateRange
	var err error

	if ldr[0], err = xtime.ParseDottedDate(params.From); err != nil {
		return PrefetchFlightsOutput{}, fmt.Errorf("invalid from %q: %w", params.From, err)
	} else if ldr[1], err = xtime.ParseDottedDate(params.To); err != nil {
		return PrefetchFlightsOutput{}, fmt.Errorf("invalid to %q: %w", params.To, err)
	} else if ldr[0].Compare(ldr[1]) > 0 {
		return PrefetchFlightsOutput{}, errors.New("from must not be after to")
	}

	wg := concurrent.WorkGroup[common.FlightQuery, PrefetchFlightsOutput, PrefetchFlightsOutput]{
		Parallelism: max(params.Parallelism, 1),
		Worker: func(ctx context.Context, q common.FlightQuery, acc PrefetchFlightsOutput) (PrefetchFlightsOutput, error) {
			acc.Queries++

			output, err := a.sfA.search(ctx, q, params.Force)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return acc, ctxErr
				}

				slog.WarnContext(ctx, "flight prefetch failed", slog.String("query", q.String()), slog.String("err", err.Error()))
				acc.Failed = append(acc.Failed, q.CacheKey())
				return acc, nil
			}

			if output.Cached {
				acc.Cached++
			}

			acc.Flights += len(output.Flights)
			return acc, nil
		},
		Combiner: func(ctx context.Context, a, b PrefetchFlightsOutput) (PrefetchFlightsOutput, error) {
			return PrefetchFlightsOutput{
				Queries: a.Queries + b.Queries,
				Cached:  a.Cached + b.Cached,
				Flights: a.Flights + b.Flights,
				Failed:  append(a.Failed, b.Failed...),
			}, nil
		},
		Finisher: func(ctx context.Context, acc PrefetchFlightsOutput) (PrefetchFlightsOutput, error) {
			if acc.Failed == nil {
				acc.Failed = []string{}
			}

			return acc, nil
		},
	}

	return wg.RunSeq(ctx, prefetchQueries(params.Routes, ldr))
}

func prefetchQueries(routes []PrefetchRoute, ldr xtime.LocalDateRange) iter.Seq[common.FlightQuery] {
	return func(yield func(common.FlightQuery) bool) {
		for d := range ldr.Iter() {
			for _, r := range routes {
				if !yield(common.FlightQuery{Origin: r.Origin, Destination: r.Destination, Date: d}) {
					return
				}
			}
		}
	}
}

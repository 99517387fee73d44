package action

import (
	"context"
	"sync/atomic"

	"github.com/explore-flights/multimodal/common"
	"golang.org/x/sync/errgroup"
)

type RouteRefresher interface {
	RefreshRoutes(ctx context.Context) ([]common.RouteDescriptor, error)
	RefreshTimetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error)
}

type WarmRoutesParams struct {
	Timetables  bool `json:"timetables"`
	Parallelism int  `json:"parallelism,omitempty"`
}

type WarmRoutesOutput struct {
	Routes     int `json:"routes"`
	Timetables int `json:"timetables"`
}

type warmRoutesAction struct {
	catalog RouteRefresher
}

func NewWarmRoutesAction(catalog RouteRefresher) Action[WarmRoutesParams, WarmRoutesOutput] {
	return &warmRoutesAction{catalog: catalog}
}

func (a *warmRoutesAction) Handle(ctx context.Context, params WarmRoutesParams) (WarmRoutesOutput, error) {
	routes, err := a.catalog.RefreshRoutes(ctx)
	if err != nil {
		return WarmRoutesOutput{}, err
	}

	output := WarmRoutesOutput{Routes: len(routes)}
	if !params.Timetables {
		return output, nil
	}

	var timetables atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(params.Parallelism, 1))

	for _, r := range routes {
		if r.Id == "" {
			continue
		}

		g.Go(func() error {
			entries, err := a.catalog.RefreshTimetables(ctx, r.Id)
			if err != nil {
				return err
			}

			timetables.Add(int64(len(entries)))
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return WarmRoutesOutput{}, err
	}

	output.Timetables = int(timetables.Load())
	return output, nil
}

package action

import (
	"context"
	"errors"
	"time"

	"github.com/explore-flights/multimodal/common/xtime"
)

type CronParams struct {
	WarmRoutes      *WarmRoutesParams `json:"warmRoutes,omitempty"`
	PrefetchFlights *struct {
		Routes   []PrefetchRoute `json:"routes"`
		Time     time.Time       `json:"time"`
		Schedule string          `json:"schedule"`
	} `json:"prefetchFlights,omitempty"`
}

type CronOutput struct {
	WarmRoutes      *InputOutput[WarmRoutesParams, WarmRoutesOutput]           `json:"warmRoutes,omitempty"`
	PrefetchFlights *InputOutput[PrefetchFlightsParams, PrefetchFlightsOutput] `json:"prefetchFlights,omitempty"`
}

type InputOutput[IN any, OUT any] struct {
	Input  IN  `json:"input"`
	Output OUT `json:"output"`
}

type cronAction struct {
	wrA Action[WarmRoutesParams, WarmRoutesOutput]
	pfA Action[PrefetchFlightsParams, PrefetchFlightsOutput]
}

func NewCronAction(wrA Action[WarmRoutesParams, WarmRoutesOutput], pfA Action[PrefetchFlightsParams, PrefetchFlightsOutput]) Action[CronParams, CronOutput] {
	return &cronAction{
		wrA: wrA,
		pfA: pfA,
	}
}

func (c *cronAction) Handle(ctx context.Context, params CronParams) (CronOutput, error) {
	var output CronOutput
	var err error

	if params.WarmRoutes != nil {
		wrInOut := InputOutput[WarmRoutesParams, WarmRoutesOutput]{Input: *params.WarmRoutes}
		if wrInOut.Output, err = c.wrA.Handle(ctx, wrInOut.Input); err != nil {
			return output, err
		}

		output.WarmRoutes = &wrInOut
	}

	if params.PrefetchFlights != nil {
		pfInOut := InputOutput[PrefetchFlightsParams, PrefetchFlightsOutput]{
			Input: PrefetchFlightsParams{
				Routes:      params.PrefetchFlights.Routes,
				Parallelism: 2,
			},
		}

		switch params.PrefetchFlights.Schedule {
		case "daily":
			today := xtime.NewLocalDate(params.PrefetchFlights.Time.UTC())
			pfInOut.Input.From = today.Next().Dotted()
			pfInOut.Input.To = today.AddDays(7).Dotted()

		default:
			return output, errors.New("invalid schedule")
		}

		if pfInOut.Output, err = c.pfA.Handle(ctx, pfInOut.Input); err != nil {
			return output, err
		}

		output.PrefetchFlights = &pfInOut
	}

	return output, nil
}

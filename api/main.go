package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/explore-flights/multimodal/api/business/itinerary"
	"github.com/explore-flights/multimodal/api/business/routes"
	"github.com/explore-flights/multimodal/api/config"
	"github.com/explore-flights/multimodal/api/flightjob"
	"github.com/explore-flights/multimodal/api/web"
	lwamw "github.com/its-felix/aws-lwa-go-middleware"
	"github.com/labstack/echo/v4"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	settings, err := config.Config.Settings()
	if err != nil {
		panic(err)
	}

	c, err := config.Config.Cache(ctx)
	if err != nil {
		panic(err)
	}

	src, err := config.Config.CatalogSource(ctx)
	if err != nil {
		panic(err)
	}

	searcher, err := config.Config.FlightSearcher()
	if err != nil {
		panic(err)
	}

	pool := flightjob.NewPool(searcher, flightjob.WithParallelism(settings.FlightJobParallelism))
	defer pool.Close()

	catalog := routes.NewCatalog(src, c, settings.RoutesTTL, settings.TimetableTTL)
	flights := itinerary.NewFlightSearch(pool, c, settings.FlightJobTimeout, settings.FlightTTL)
	composer := itinerary.NewComposer(catalog, flights)

	e := echo.New()
	e.Validator = web.NewValidator()
	e.Use(
		lwamw.EchoMiddleware(
			lwamw.WithMaskError(),
			lwamw.WithRemoveHeaders(),
		),
		web.ErrorLogAndMaskMiddleware(log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)),
		web.NoCacheOnErrorMiddleware(),
	)

	{
		group := e.Group("/api")
		group.GET("/health", web.Health, web.NeverCacheMiddleware())

		ih := web.NewItineraryHandler(composer)
		group.GET("/v1/multimodal/itinerary", ih.JSON)
		group.GET("/v1/multimodal/itinerary/png", ih.PNG)

		rh := web.NewRoutesHandler(catalog)
		group.GET("/v1/gars/routes", rh.Routes)
		group.GET("/v1/gars/routes/:routeId/timetables", rh.Timetables)

		fh := web.NewFlightsHandler(flights)
		group.POST("/v1/flights/search", fh.Search)
	}

	if err := run(ctx, e); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, e *echo.Echo) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			slog.Error("error shutting down the echo server", slog.String("err", err.Error()))
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", config.Config.EchoPort())); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}

	return nil
}

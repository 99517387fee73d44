package config

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/explore-flights/multimodal/api/business/itinerary"
	"github.com/explore-flights/multimodal/api/business/routes"
	"github.com/explore-flights/multimodal/api/flightjob"
	"github.com/explore-flights/multimodal/common/adapt"
	"github.com/explore-flights/multimodal/common/cache"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendS3     = "s3"

	memoryCacheSize   = 4096
	s3CachePrefix     = "cache/"
	defaultFlightJobs = 2
)

type Accessor interface {
	EchoPort() int
	Cache(ctx context.Context) (*cache.Cache, error)
	CatalogSource(ctx context.Context) (routes.Source, error)
	FlightSearcher() (flightjob.Searcher, error)
	Settings() (Settings, error)
}

type Settings struct {
	RoutesTTL            time.Duration
	TimetableTTL         time.Duration
	FlightTTL            time.Duration
	FlightJobTimeout     time.Duration
	FlightJobParallelism int
}

func settingsFromEnv() (Settings, error) {
	var s Settings
	var err error

	if s.RoutesTTL, err = envDuration("FLIGHTS_CACHE_TTL_ROUTES", routes.DefaultRoutesTTL); err != nil {
		return s, err
	}

	if s.TimetableTTL, err = envDuration("FLIGHTS_CACHE_TTL_SCHEDULE", routes.DefaultTimetableTTL); err != nil {
		return s, err
	}

	if s.FlightTTL, err = envDuration("FLIGHTS_CACHE_TTL_FLIGHTS", itinerary.DefaultFlightTTL); err != nil {
		return s, err
	}

	if s.FlightJobTimeout, err = envDuration("FLIGHTS_FLIGHT_JOB_TIMEOUT", itinerary.DefaultFlightTimeout); err != nil {
		return s, err
	}

	if raw := os.Getenv("FLIGHTS_FLIGHT_JOB_PARALLELISM"); raw != "" {
		if s.FlightJobParallelism, err = strconv.Atoi(raw); err != nil || s.FlightJobParallelism < 1 {
			return s, fmt.Errorf("env variable FLIGHTS_FLIGHT_JOB_PARALLELISM must be a positive integer, got %q", raw)
		}
	}

	s.FlightJobParallelism = cmp.Or(s.FlightJobParallelism, defaultFlightJobs)
	return s, nil
}

// envDuration accepts Go durations ("90m") as well as plain seconds ("3600").
func envDuration(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}

	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("env variable %s must be positive, got %q", name, raw)
		}

		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("env variable %s: %w", name, err)
	} else if d <= 0 {
		return 0, fmt.Errorf("env variable %s must be positive, got %q", name, raw)
	}

	return d, nil
}

func newCache(backend string, redisUrl string, s3c func() (adapt.S3Client, error), bucket string) (*cache.Cache, error) {
	switch cmp.Or(backend, CacheBackendMemory) {
	case CacheBackendMemory:
		return cache.New(cache.NewMemory(memoryCacheSize)), nil

	case CacheBackendRedis:
		store, _, err := cache.NewRedisFromURL(cmp.Or(redisUrl, "redis://localhost:6379/0"))
		if err != nil {
			return nil, err
		}

		return cache.New(store), nil

	case CacheBackendS3:
		if bucket == "" {
			return nil, fmt.Errorf("env variable FLIGHTS_CACHE_BUCKET required for cache backend %q", CacheBackendS3)
		}

		client, err := s3c()
		if err != nil {
			return nil, err
		}

		return cache.New(cache.NewS3(client, bucket, s3CachePrefix)), nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

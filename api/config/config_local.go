//go:build !lambda

package config

import (
	"cmp"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/explore-flights/multimodal/api/business/routes"
	"github.com/explore-flights/multimodal/api/db"
	"github.com/explore-flights/multimodal/api/flightjob"
	"github.com/explore-flights/multimodal/common/adapt"
	"github.com/explore-flights/multimodal/common/cache"
	"github.com/explore-flights/multimodal/common/gars"
	"github.com/explore-flights/multimodal/common/local"
	"github.com/explore-flights/multimodal/common/s7"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

var Config = func() accessor {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", slog.String("err", err.Error()))
	}

	return accessor{}
}()

type accessor struct{}

func (accessor) EchoPort() int {
	return 8080
}

func (accessor) Cache(ctx context.Context) (*cache.Cache, error) {
	return newCache(
		os.Getenv("FLIGHTS_CACHE_BACKEND"),
		os.Getenv("FLIGHTS_REDIS_URL"),
		localS3Client,
		cmp.Or(os.Getenv("FLIGHTS_CACHE_BUCKET"), "flights_cache_bucket"),
	)
}

// CatalogSource reads from an exported snapshot when FLIGHTS_GARS_SNAPSHOT_DIR is set.
func (accessor) CatalogSource(ctx context.Context) (routes.Source, error) {
	if dir := os.Getenv("FLIGHTS_GARS_SNAPSHOT_DIR"); dir != "" {
		return db.NewCatalogRepo(db.NewDatabase(dir)), nil
	}

	return gars.NewClient(
		cmp.Or(os.Getenv("FLIGHTS_GARS_BASE_URL"), "http://localhost:8081/odata/standard.odata/"),
		os.Getenv("FLIGHTS_GARS_USERNAME"),
		os.Getenv("FLIGHTS_GARS_PASSWORD"),
		gars.WithRateLimiter(rate.NewLimiter(rate.Every(time.Second)*5, 1)),
	), nil
}

func (accessor) FlightSearcher() (flightjob.Searcher, error) {
	var opts []s7.SearcherOption
	if execPath := os.Getenv("FLIGHTS_CHROME_PATH"); execPath != "" {
		opts = append(opts, s7.WithExecPath(execPath))
	}

	return s7.NewSearcher(opts...), nil
}

func (accessor) Settings() (Settings, error) {
	return settingsFromEnv()
}

func localS3Client() (adapt.S3Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return local.NewS3Client(filepath.Join(home, "Downloads", "local_s3")), nil
}

//go:build lambda

package config

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/explore-flights/multimodal/api/business/routes"
	"github.com/explore-flights/multimodal/api/flightjob"
	"github.com/explore-flights/multimodal/common/adapt"
	"github.com/explore-flights/multimodal/common/cache"
	"github.com/explore-flights/multimodal/common/gars"
	"github.com/explore-flights/multimodal/common/s7"
	"github.com/explore-flights/multimodal/common/xsync"
	"golang.org/x/time/rate"
)

var Config = func() *accessor {
	awsConfig := sync.OnceValues(func() (aws.Config, error) {
		return config.LoadDefaultConfig(context.Background())
	})

	return &accessor{
		awsConfig: awsConfig,
		ssmParams: xsync.NewPreload(func() (map[string]string, error) {
			cfg, err := awsConfig()
			if err != nil {
				return nil, err
			}

			return loadSsmParams(
				context.Background(),
				cfg,
				"FLIGHTS_SSM_GARS_USERNAME",
				"FLIGHTS_SSM_GARS_PASSWORD",
			)
		}),
	}
}()

type accessor struct {
	awsConfig func() (aws.Config, error)
	ssmParams *xsync.Preload[map[string]string]
}

func (*accessor) EchoPort() int {
	port, _ := strconv.Atoi(os.Getenv("AWS_LWA_PORT"))
	return cmp.Or(port, 8080)
}

func (a *accessor) Cache(ctx context.Context) (*cache.Cache, error) {
	return newCache(
		os.Getenv("FLIGHTS_CACHE_BACKEND"),
		os.Getenv("FLIGHTS_REDIS_URL"),
		a.s3Client,
		os.Getenv("FLIGHTS_CACHE_BUCKET"),
	)
}

func (a *accessor) CatalogSource(ctx context.Context) (routes.Source, error) {
	baseUrl := os.Getenv("FLIGHTS_GARS_BASE_URL")
	if baseUrl == "" {
		return nil, errors.New("env variable FLIGHTS_GARS_BASE_URL required")
	}

	params, err := a.ssmParams.Value(ctx)
	if err != nil {
		return nil, err
	}

	return gars.NewClient(
		baseUrl,
		params["FLIGHTS_SSM_GARS_USERNAME"],
		params["FLIGHTS_SSM_GARS_PASSWORD"],
		gars.WithRateLimiter(rate.NewLimiter(rate.Every(time.Second)*5, 1)),
	), nil
}

func (*accessor) FlightSearcher() (flightjob.Searcher, error) {
	return s7.NewSearcher(s7.WithExecPath(cmp.Or(os.Getenv("FLIGHTS_CHROME_PATH"), "/opt/chrome/chrome"))), nil
}

func (*accessor) Settings() (Settings, error) {
	return settingsFromEnv()
}

func (a *accessor) s3Client() (adapt.S3Client, error) {
	cfg, err := a.awsConfig()
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg), nil
}

func loadSsmParams(ctx context.Context, cfg aws.Config, envNames ...string) (map[string]string, error) {
	reqNames := make([]string, 0, len(envNames))
	lookup := make(map[string]string)

	for _, envName := range envNames {
		reqName := os.Getenv(envName)
		if reqName == "" {
			return nil, fmt.Errorf("env variable %s required", envName)
		}

		reqNames = append(reqNames, reqName)
		lookup[reqName] = envName
	}

	ssmc := ssm.NewFromConfig(cfg)
	resp, err := ssmc.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          reqNames,
		WithDecryption: aws.Bool(true),
	})

	if err != nil {
		return nil, err
	} else if len(resp.InvalidParameters) > 0 {
		return nil, fmt.Errorf("ssm invalid parameters: %v", resp.InvalidParameters)
	}

	result := make(map[string]string)
	for _, p := range resp.Parameters {
		result[lookup[*p.Name]] = *p.Value
	}

	return result, nil
}

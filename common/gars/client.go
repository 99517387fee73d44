package gars

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/explore-flights/multimodal/common"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

const (
	routesCatalog     = "Catalog_Маршруты"
	timetablesCatalog = "Catalog_РейсыРасписания"
)

var ErrRateLimit = errors.New("rate limit error")

type responseStatusErr struct {
	StatusCode int
	Status     string
}

func (e responseStatusErr) Error() string {
	return fmt.Sprintf("gars: unexpected response status %s", e.Status)
}

// Client reads the route catalog published by the 1C OData interface.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseUrl    string
	username   string
	password   string
	timeout    time.Duration
	maxRetries int
}

type ClientOption func(c *Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
	}
}

func NewClient(baseUrl, username, password string, opts ...ClientOption) *Client {
	c := &Client{
		baseUrl:  baseUrl,
		username: username,
		password: password,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)
	c.timeout = cmp.Or(c.timeout, time.Second*30)
	c.maxRetries = cmp.Or(c.maxRetries, 3)

	if !strings.HasSuffix(c.baseUrl, "/") {
		c.baseUrl += "/"
	}

	return c
}

func (c *Client) ListRoutes(ctx context.Context) ([]common.RouteDescriptor, error) {
	records, err := c.list(ctx, routesCatalog, nil)
	if err != nil {
		return nil, err
	}

	routes := make([]common.RouteDescriptor, 0, len(records))
	for _, r := range records {
		routes = append(routes, MapRoute(r))
	}

	return routes, nil
}

func (c *Client) ListTimetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error) {
	q := make(url.Values)
	q.Set("$filter", fmt.Sprintf("Маршрут_Key eq guid'%s'", routeId))
	q.Set("$expand", "Остановки")

	records, err := c.list(ctx, timetablesCatalog, q)
	if err != nil {
		return nil, err
	}

	entries := make([]common.TimetableEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, MapTimetableEntry(r))
	}

	return entries, nil
}

type listResponse struct {
	Value []Record `json:"value"`
}

func (c *Client) list(ctx context.Context, catalog string, q url.Values) ([]Record, error) {
	errs := make([]error, 0, c.maxRetries)

	for len(errs) < c.maxRetries {
		res, err := c.doRequest(ctx, catalog, q)
		if err != nil {
			var statusErr responseStatusErr
			if errors.As(err, &statusErr) && isRetryableStatus(statusErr.StatusCode) {
				errs = append(errs, err)
				continue
			}

			return nil, err
		}

		if res.Value == nil {
			return nil, fmt.Errorf("gars: %s response has no value array", catalog)
		}

		return res.Value, nil
	}

	return nil, errors.Join(errs...)
}

func (c *Client) doRequest(ctx context.Context, catalog string, q url.Values) (listResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+url.PathEscape(catalog), nil)
	if err != nil {
		return listResponse{}, err
	}

	fullQuery := make(url.Values)
	maps.Copy(fullQuery, q)
	fullQuery.Set("$format", "json")
	req.URL.RawQuery = fullQuery.Encode()

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return listResponse{}, errors.Join(err, ErrRateLimit)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return listResponse{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return listResponse{}, responseStatusErr{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	var res listResponse
	if err = jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(resp.Body).Decode(&res); err != nil {
		return listResponse{}, fmt.Errorf("gars: failed to parse %s response: %w", catalog, err)
	}

	return res, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusGatewayTimeout || status == http.StatusBadGateway || status == http.StatusServiceUnavailable
}

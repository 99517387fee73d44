package routes

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/explore-flights/multimodal/common"
	"golang.org/x/sync/singleflight"
)

const (
	filteredRoutesKey   = "gars:routes:filtered"
	timetableKeyPrefix  = "gars:timetable:"
	DefaultRoutesTTL    = time.Hour * 6
	DefaultTimetableTTL = time.Minute * 30
)

var staleMarkers = []string{"2024", "Тест"}

const deprecatedSuffix = "С"

type Source interface {
	ListRoutes(ctx context.Context) ([]common.RouteDescriptor, error)
	ListTimetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error)
}

type Cache interface {
	Get(ctx context.Context, key string, v any) bool
	Set(ctx context.Context, key string, v any, ttl time.Duration) bool
}

// Catalog serves the stale-filtered route list and per-route timetables through the cache.
type Catalog struct {
	src          Source
	cache        Cache
	routesTTL    time.Duration
	timetableTTL time.Duration
	sf           *singleflight.Group
}

func NewCatalog(src Source, cache Cache, routesTTL, timetableTTL time.Duration) *Catalog {
	return &Catalog{
		src:          src,
		cache:        cache,
		routesTTL:    routesTTL,
		timetableTTL: timetableTTL,
		sf:           new(singleflight.Group),
	}
}

func (c *Catalog) Routes(ctx context.Context) ([]common.RouteDescriptor, error) {
	var routes []common.RouteDescriptor
	if c.cache.Get(ctx, filteredRoutesKey, &routes) {
		return routes, nil
	}

	return c.RefreshRoutes(ctx)
}

// RefreshRoutes reloads the route list from the source regardless of what is cached.
func (c *Catalog) RefreshRoutes(ctx context.Context) ([]common.RouteDescriptor, error) {
	v, err := c.shared(ctx, filteredRoutesKey, func(ctx context.Context) (any, error) {
		all, err := c.src.ListRoutes(ctx)
		if err != nil {
			return nil, err
		}

		filtered := FilterStale(all)
		slog.InfoContext(ctx, "refreshed route catalog", slog.Int("total", len(all)), slog.Int("kept", len(filtered)))

		c.cache.Set(ctx, filteredRoutesKey, filtered, c.routesTTL)
		return filtered, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]common.RouteDescriptor), nil
}

func (c *Catalog) Timetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error) {
	var entries []common.TimetableEntry
	if c.cache.Get(ctx, timetableKeyPrefix+routeId, &entries) {
		return entries, nil
	}

	return c.RefreshTimetables(ctx, routeId)
}

// RefreshTimetables reloads the timetables of a route. Empty results are not cached.
func (c *Catalog) RefreshTimetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error) {
	key := timetableKeyPrefix + routeId

	v, err := c.shared(ctx, key, func(ctx context.Context) (any, error) {
		entries, err := c.src.ListTimetables(ctx, routeId)
		if err != nil {
			return nil, err
		}

		if len(entries) > 0 {
			c.cache.Set(ctx, key, entries, c.timetableTTL)
		}

		return entries, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]common.TimetableEntry), nil
}

// shared runs fn once per key for all concurrent callers. fn does not inherit the cancellation of
// the caller that started it, each caller stops waiting when its own ctx is done.
func (c *Catalog) shared(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	ch := c.sf.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Val, res.Err

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsStale reports routes marked as outdated test or duplicate entries in their description.
func IsStale(description string) bool {
	for _, marker := range staleMarkers {
		if strings.Contains(description, marker) {
			return true
		}
	}

	return strings.HasSuffix(strings.TrimSpace(description), deprecatedSuffix)
}

func FilterStale(routes []common.RouteDescriptor) []common.RouteDescriptor {
	filtered := make([]common.RouteDescriptor, 0, len(routes))
	for _, r := range routes {
		if !IsStale(r.Description) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

package routes

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	routes         []common.RouteDescriptor
	timetables     map[string][]common.TimetableEntry
	err            error
	block          chan struct{}
	routeCalls     atomic.Int32
	timetableCalls atomic.Int32
}

func (s *fakeSource) ListRoutes(ctx context.Context) ([]common.RouteDescriptor, error) {
	s.routeCalls.Add(1)
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	return s.routes, s.err
}

func (s *fakeSource) ListTimetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error) {
	s.timetableCalls.Add(1)
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	return s.timetables[routeId], s.err
}

func (s *fakeSource) wait(ctx context.Context) error {
	if s.block == nil {
		return nil
	}

	select {
	case <-s.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestIsStale(t *testing.T) {
	assert.True(t, IsStale("Якутск - Покровск 2024"))
	assert.True(t, IsStale("Тест маршрут"))
	assert.True(t, IsStale("Сангар - Якутск С"))
	assert.True(t, IsStale("Сангар - Якутск С  "))
	assert.False(t, IsStale("Якутск Автовокзал — Чурапча с."))
	assert.False(t, IsStale("Якутск - Сунтар"))
}

func TestCatalog_Routes(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{
		routes: []common.RouteDescriptor{
			{Id: "1", Description: "Якутск Автовокзал — Чурапча с."},
			{Id: "2", Description: "Сангар - Якутск С"},
			{Id: "3", Description: "Тест"},
		},
	}

	c := NewCatalog(src, cache.New(cache.NewMemory(8)), DefaultRoutesTTL, DefaultTimetableTTL)

	for range 3 {
		routes, err := c.Routes(ctx)
		require.NoError(t, err)
		if assert.Len(t, routes, 1) {
			assert.Equal(t, "1", routes[0].Id)
		}
	}

	assert.EqualValues(t, 1, src.routeCalls.Load())
}

func TestCatalog_Routes_Error(t *testing.T) {
	src := &fakeSource{err: errors.New("unavailable")}
	c := NewCatalog(src, cache.New(cache.NewMemory(8)), DefaultRoutesTTL, DefaultTimetableTTL)

	_, err := c.Routes(context.Background())
	assert.ErrorIs(t, err, src.err)
}

func TestCatalog_Timetables(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{
		timetables: map[string][]common.TimetableEntry{
			"route-1": {{Id: "tt-1", RouteId: "route-1"}},
		},
	}

	store := cache.NewMemory(8)
	c := NewCatalog(src, cache.New(store), DefaultRoutesTTL, time.Minute)

	for range 2 {
		entries, err := c.Timetables(ctx, "route-1")
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	}

	assert.EqualValues(t, 1, src.timetableCalls.Load())

	t.Run("empty results are not cached", func(t *testing.T) {
		for range 2 {
			entries, err := c.Timetables(ctx, "route-2")
			require.NoError(t, err)
			assert.Empty(t, entries)
		}

		_, ok, err := store.Get(ctx, "gars:timetable:route-2")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.EqualValues(t, 3, src.timetableCalls.Load())
	})
}

func TestCatalog_RefreshRoutes(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{
		routes: []common.RouteDescriptor{{Id: "1", Description: "Якутск Автовокзал — Чурапча с."}},
	}

	c := NewCatalog(src, cache.New(cache.NewMemory(8)), DefaultRoutesTTL, DefaultTimetableTTL)

	_, err := c.Routes(ctx)
	require.NoError(t, err)

	src.routes = append(src.routes, common.RouteDescriptor{Id: "2", Description: "Якутск Автовокзал — Покровск"})

	routes, err := c.RefreshRoutes(ctx)
	require.NoError(t, err)
	assert.Len(t, routes, 2)

	routes, err = c.Routes(ctx)
	require.NoError(t, err)
	assert.Len(t, routes, 2)
	assert.EqualValues(t, 2, src.routeCalls.Load())
}

func TestCatalog_CancelledCallerKeepsSharedLoad(t *testing.T) {
	src := &fakeSource{
		routes:     []common.RouteDescriptor{{Id: "1", Description: "Якутск Автовокзал — Чурапча с."}},
		timetables: map[string][]common.TimetableEntry{"1": {{Id: "tt-1", RouteId: "1"}}},
		block:      make(chan struct{}),
	}

	c := NewCatalog(src, cache.New(cache.NewMemory(8)), DefaultRoutesTTL, DefaultTimetableTTL)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErrs := make(chan error, 2)
	go func() {
		_, err := c.Routes(firstCtx)
		firstErrs <- err
	}()
	go func() {
		_, err := c.Timetables(firstCtx, "1")
		firstErrs <- err
	}()

	require.Eventually(t, func() bool {
		return src.routeCalls.Load() == 1 && src.timetableCalls.Load() == 1
	}, time.Second, time.Millisecond*5)

	cancelFirst()
	for range 2 {
		select {
		case err := <-firstErrs:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("cancelled caller did not return")
		}
	}

	routesDone := make(chan []common.RouteDescriptor, 1)
	timetablesDone := make(chan []common.TimetableEntry, 1)
	go func() {
		routes, err := c.Routes(context.Background())
		assert.NoError(t, err)
		routesDone <- routes
	}()
	go func() {
		entries, err := c.Timetables(context.Background(), "1")
		assert.NoError(t, err)
		timetablesDone <- entries
	}()

	time.Sleep(time.Millisecond * 50)
	close(src.block)

	select {
	case routes := <-routesDone:
		assert.Len(t, routes, 1)
	case <-time.After(time.Second * 5):
		t.Fatal("routes caller did not return")
	}

	select {
	case entries := <-timetablesDone:
		assert.Len(t, entries, 1)
	case <-time.After(time.Second * 5):
		t.Fatal("timetables caller did not return")
	}

	assert.EqualValues(t, 1, src.routeCalls.Load())
	assert.EqualValues(t, 1, src.timetableCalls.Load())
}

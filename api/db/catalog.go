package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/gars"
	"github.com/explore-flights/multimodal/common/xsync"
	jsoniter "github.com/json-iterator/go"
)

type catalogRepoDatabase interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

// CatalogRepo serves routes and timetables from an exported catalog snapshot.
type CatalogRepo struct {
	db     catalogRepoDatabase
	mtx    sync.Mutex
	routes *xsync.Preload[[]common.RouteDescriptor]
}

func NewCatalogRepo(db catalogRepoDatabase) *CatalogRepo {
	cr := &CatalogRepo{db: db}
	cr.routes = xsync.NewPreload(cr.routesInternal)

	return cr
}

// ListRoutes serves the preloaded route list. A failed load is discarded so the next call reads
// the snapshot again.
func (cr *CatalogRepo) ListRoutes(ctx context.Context) ([]common.RouteDescriptor, error) {
	cr.mtx.Lock()
	pl := cr.routes
	cr.mtx.Unlock()

	routes, err := pl.Value(ctx)
	if err != nil && ctx.Err() == nil {
		cr.mtx.Lock()
		if cr.routes == pl {
			cr.routes = xsync.NewPreload(cr.routesInternal)
		}
		cr.mtx.Unlock()
	}

	return routes, err
}

func (cr *CatalogRepo) routesInternal() ([]common.RouteDescriptor, error) {
	records, err := cr.query(context.Background(), `SELECT record FROM gars_routes`)
	if err != nil {
		return nil, err
	}

	routes := make([]common.RouteDescriptor, 0, len(records))
	for _, r := range records {
		routes = append(routes, gars.MapRoute(r))
	}

	return routes, nil
}

func (cr *CatalogRepo) ListTimetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error) {
	records, err := cr.query(
		ctx,
		`SELECT record FROM gars_timetables WHERE json_extract_string(record, '/Маршрут_Key') = ?`,
		routeId,
	)
	if err != nil {
		return nil, err
	}

	entries := make([]common.TimetableEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, gars.MapTimetableEntry(r))
	}

	return entries, nil
}

func (cr *CatalogRepo) query(ctx context.Context, query string, args ...any) ([]gars.Record, error) {
	conn, err := cr.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]gars.Record, 0)
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		var r gars.Record
		if err = jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &r); err != nil {
			return nil, fmt.Errorf("invalid snapshot record: %w", err)
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

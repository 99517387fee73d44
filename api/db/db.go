package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/duckdb/duckdb-go/v2"
)

const (
	routesFile     = "routes.json"
	timetablesFile = "timetables.json"
)

type bootQuery struct {
	query string
	args  []any
}

// Database is an in-memory DuckDB exposing an exported catalog snapshot as the views
// gars_routes and gars_timetables, one JSON record per row.
type Database struct {
	initDone   <-chan struct{}
	dbWorkPath string
	connector  *duckdb.Connector
	database   *sql.DB
	err        error
}

func NewDatabase(snapshotDir string) *Database {
	initDone := make(chan struct{})
	db := Database{initDone: initDone}
	go func() {
		defer close(initDone)

		var err error
		defer func() {
			if err != nil {
				db.err = errors.Join(err, db.release())
			}
		}()

		if db.dbWorkPath, err = os.MkdirTemp("", "duckdb_temp_*"); err != nil {
			return
		}

		if db.connector, err = duckdb.NewConnector("", connInit(context.Background())); err != nil {
			return
		}

		db.database = sql.OpenDB(db.connector)

		var conn *sql.Conn
		conn, err = db.database.Conn(context.Background())
		if err != nil {
			return
		}

		if err = dbInit(context.Background(), conn, db.dbWorkPath, snapshotDir); err != nil {
			err = errors.Join(err, conn.Close())
			return
		}

		err = conn.Close()
	}()

	return &db
}

func (db *Database) Conn(ctx context.Context) (*sql.Conn, error) {
	select {
	case <-db.initDone:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := db.err; err != nil {
		return nil, err
	}

	database := db.database
	if database == nil {
		return nil, errors.New("database is nil")
	}

	return database.Conn(ctx)
}

func (db *Database) Close() error {
	<-db.initDone
	return db.release()
}

func (db *Database) release() error {
	var errs []error
	if database := db.database; database != nil {
		db.database = nil

		if err := database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if connector := db.connector; connector != nil {
		db.connector = nil

		if err := connector.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if dbWorkPath := db.dbWorkPath; dbWorkPath != "" {
		db.dbWorkPath = ""

		if err := os.RemoveAll(dbWorkPath); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func dbInit(ctx context.Context, conn *sql.Conn, dbWorkPath, snapshotDir string) error {
	bootQueries := []bootQuery{
		// https://github.com/duckdb/duckdb/issues/12837
		{
			`SET home_directory = ?`,
			[]any{filepath.Join(dbWorkPath, "home")},
		},
		{
			`SET temp_directory = ?`,
			[]any{filepath.Join(dbWorkPath, "tmp")},
		},
		{
			snapshotView("gars_routes", filepath.Join(snapshotDir, routesFile)),
			nil,
		},
		{
			snapshotView("gars_timetables", filepath.Join(snapshotDir, timetablesFile)),
			nil,
		},
	}

	for _, query := range bootQueries {
		if _, err := conn.ExecContext(ctx, query.query, query.args...); err != nil {
			return fmt.Errorf("failed to run query %q: %w", query.query, err)
		}
	}

	return nil
}

// snapshotView unnests the OData "value" array of the file, keeping every record as raw JSON text.
func snapshotView(name, path string) string {
	return fmt.Sprintf(
		`CREATE OR REPLACE VIEW %s AS SELECT CAST(unnest(json_extract(CAST(content AS JSON), '$.value[*]')) AS VARCHAR) AS record FROM read_text('%s')`,
		name,
		strings.ReplaceAll(path, "'", "''"),
	)
}

func connInit(ctx context.Context) func(execer driver.ExecerContext) error {
	return func(execer driver.ExecerContext) error {
		if _, err := execer.ExecContext(ctx, `SET threads TO 1`, []driver.NamedValue{}); err != nil {
			return fmt.Errorf("failed to run query %q: %w", `SET threads TO 1`, err)
		}

		return nil
	}
}

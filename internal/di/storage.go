package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/saltaireguide/directory/internal/runtimeconfig"
)

const pingTimeout = 5 * time.Second

// OpenDatabase opens and pings the configured store.
func OpenDatabase(ctx context.Context, cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	var (
		driverName string
		dialect    func(*sql.DB) *bun.DB
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case runtimeconfig.DriverSQLite:
		driverName = "sqlite3"
		dialect = func(sqlDB *sql.DB) *bun.DB {
			// in-memory sqlite databases are per connection
			sqlDB.SetMaxOpenConns(1)
			return bun.NewDB(sqlDB, sqlitedialect.New())
		}
	case runtimeconfig.DriverPostgres:
		driverName = "postgres"
		dialect = func(sqlDB *sql.DB) *bun.DB {
			return bun.NewDB(sqlDB, pgdialect.New())
		}
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}

	sqlDB, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db := dialect(sqlDB)

	if ctx == nil {
		ctx = context.Background()
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

package guide

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/migrate"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files, one directory per
// dialect.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// MigrationsFor returns the migrations for db's dialect.
func MigrationsFor(db *bun.DB) (fs.FS, error) {
	var dir string
	switch db.Dialect().Name() {
	case dialect.PG:
		dir = "data/sql/migrations/postgres"
	case dialect.SQLite:
		dir = "data/sql/migrations/sqlite"
	default:
		return nil, fmt.Errorf("guide migrate: unsupported dialect %s", db.Dialect().Name())
	}
	return fs.Sub(migrationsFS, dir)
}

// Migrate applies pending migrations and returns the names it applied.
func Migrate(ctx context.Context, db *bun.DB) ([]string, error) {
	sub, err := MigrationsFor(db)
	if err != nil {
		return nil, err
	}
	migrations := migrate.NewMigrations()
	if err := migrations.Discover(sub); err != nil {
		return nil, fmt.Errorf("guide migrate: discover: %w", err)
	}

	migrator := migrate.NewMigrator(db, migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("guide migrate: init: %w", err)
	}
	if err := migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("guide migrate: lock: %w", err)
	}
	defer func() { _ = migrator.Unlock(ctx) }()

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("guide migrate: %w", err)
	}
	applied := make([]string, 0, len(group.Migrations))
	for _, m := range group.Migrations {
		applied = append(applied, m.Name)
	}
	return applied, nil
}

package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations brings the key-value schema up to date. It uses its own
// connection because closing the migrate instance closes the database handle.
func RunMigrations(dialect Dialect, dsn string) error {
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return fmt.Errorf("opening migration database: %w", err)
	}
	defer db.Close()

	var (
		driver database.Driver
		name   string
	)

	switch dialect {
	case SQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
		name = "sqlite"
	case Postgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
		name = "pgx5"
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	if err != nil {
		return fmt.Errorf("creating %s migration driver: %w", name, err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, name, driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

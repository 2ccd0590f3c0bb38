package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/smartexpense/internal/config"
	"github.com/MrJamesThe3rd/smartexpense/internal/database"
)

// Backend is the key-value primitive every storage implementation provides.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
	_ Backend = (*SQL)(nil)
)

// Result carries the opened backend and the function releasing its resources.
type Result struct {
	Backend Backend
	Cleanup func() error
}

func noCleanup() error { return nil }

// Open creates the backend selected in configuration.
func Open(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Info("using memory storage; data is lost on exit")
		return &Result{Backend: NewMemory(), Cleanup: noCleanup}, nil

	case config.BackendFile:
		f, err := NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}

		logger.Info("using file storage", "dir", cfg.Storage.Dir)

		return &Result{Backend: f, Cleanup: noCleanup}, nil

	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}

		if err := RunMigrations(SQLite, database.SQLiteDSN(cfg.Storage.SQLitePath)); err != nil {
			db.Close()
			return nil, err
		}

		logger.Info("using sqlite storage", "path", cfg.Storage.SQLitePath)

		return sqlResult(db, SQLite), nil

	case config.BackendPostgres:
		db, err := database.NewPostgres(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		if err := RunMigrations(Postgres, cfg.ConnectionString()); err != nil {
			db.Close()
			return nil, err
		}

		logger.Info("using postgres storage", "host", cfg.DB.Host, "database", cfg.DB.Name)

		return sqlResult(db, Postgres), nil
	}

	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}

func sqlResult(db *sql.DB, dialect Dialect) *Result {
	return &Result{Backend: NewSQL(db, dialect), Cleanup: db.Close}
}

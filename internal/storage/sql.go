package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Dialect is the database/sql driver name of a supported database.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "pgx"
)

type queries struct {
	get    string
	set    string
	remove string
}

var dialectQueries = map[Dialect]queries{
	SQLite: {
		get: `SELECT value FROM kv_store WHERE name = ?`,
		set: `
			INSERT INTO kv_store (name, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`,
		remove: `DELETE FROM kv_store WHERE name = ?`,
	},
	Postgres: {
		get: `SELECT value FROM kv_store WHERE name = $1`,
		set: `
			INSERT INTO kv_store (name, value, updated_at)
			VALUES ($1, $2, CURRENT_TIMESTAMP)
			ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`,
		remove: `DELETE FROM kv_store WHERE name = $1`,
	},
}

// SQL stores values in the kv_store table.
type SQL struct {
	db *sql.DB
	q  queries
}

func NewSQL(db *sql.DB, dialect Dialect) *SQL {
	return &SQL{db: db, q: dialectQueries[dialect]}
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("getting %q: %w", key, err)
	}

	return value, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.q.set, key, value); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}

	return nil
}

func (s *SQL) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.remove, key); err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}

	return nil
}

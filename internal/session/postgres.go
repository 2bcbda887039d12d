package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	sessionTableDDL = `CREATE TABLE IF NOT EXISTS session_state (key text PRIMARY KEY, value text NOT NULL)`
	sessionGetSQL   = `SELECT value FROM session_state WHERE key = $1`
	sessionSetSQL   = `INSERT INTO session_state (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	sessionDelSQL   = `DELETE FROM session_state WHERE key = $1`
)

// Querier is the subset of pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps session state in a single key/value table, for runs
// where the session must outlive the local filesystem (shared machines, CI).
type PostgresStore struct {
	db Querier
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Init creates the session table if it does not exist.
func (s *PostgresStore) Init(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, sessionTableDDL); err != nil {
		return fmt.Errorf("failed to create session table: %w", err)
	}
	return nil
}

// ConnectPostgres opens a pool for databaseURL, ensures the session table
// exists, and returns the store with a close function for the pool.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, func(), error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := NewPostgresStore(pool)
	if err := store.Init(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}

// Get returns the value for key and whether it was present.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, sessionGetSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts key to value.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.Exec(ctx, sessionSetSQL, key, value); err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, sessionDelSQL, key); err != nil {
		return fmt.Errorf("failed to remove session key %s: %w", key, err)
	}
	return nil
}

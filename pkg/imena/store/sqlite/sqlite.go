package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nauchpop/imena/pkg/imena/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time; concurrent Puts queue in the pool instead of
	// failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS objects (
	key TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	size INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Put inserts or replaces an object
func (s *sqliteStore) Put(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	const stmt = `
INSERT INTO objects (key, data, size, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
	data=excluded.data,
	size=excluded.size,
	updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt, key, data, len(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

// Get returns an object's data
func (s *sqliteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM objects WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// List returns keys with the given prefix in lexical order
func (s *sqliteStore) List(ctx context.Context, prefix string) ([]string, error) {
	// substr keeps the comparison case-sensitive, unlike LIKE.
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM objects WHERE substr(key, 1, length(?1)) = ?1 ORDER BY key`,
		prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

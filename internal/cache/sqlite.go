package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteCache stores entries in a single SQLite table.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. The parent
// directory must already exist.
func OpenSQLite(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	const schema = `CREATE TABLE IF NOT EXISTS entries (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create cache schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Get implements Reader.
func (c *SQLiteCache) Get(ctx context.Context, key string) (string, bool, error) {
	if !ValidKey(key) {
		return "", false, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Cache.
func (c *SQLiteCache) Set(ctx context.Context, key, value string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO entries (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete implements Cache.
func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	if _, err := c.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package ratelimit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

func init() {
	Stores.Register("sqlite", func(_ context.Context, params map[string]string) (Store, error) {
		window, err := time.ParseDuration(params["window"])
		if err != nil {
			return nil, fmt.Errorf("sqlite store: invalid window %q: %w", params["window"], err)
		}
		path := params["path"]
		if path == "" {
			return nil, fmt.Errorf("sqlite store: path parameter is required")
		}
		return NewSQLiteStore(path, window)
	})
}

// SQLiteStore keeps window state in a local database file, surviving
// process restarts on a single node. Timestamps are stored as unix
// milliseconds.
type SQLiteStore struct {
	db     *sql.DB
	window time.Duration
}

// NewSQLiteStore opens (or creates) the database file and ensures the
// window table exists.
func NewSQLiteStore(path string, window time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// a single writer avoids SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, window: window}
	if err := s.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTable() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS rate_limit_windows (
		key TEXT PRIMARY KEY,
		count INTEGER NOT NULL,
		window_start INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create rate_limit_windows: %w", err)
	}
	return nil
}

// Incr implements Store with the same single-upsert discipline as the
// postgres backend.
func (s *SQLiteStore) Incr(ctx context.Context, key string) (int, time.Time, error) {
	now := time.Now()
	nowMs := now.UnixMilli()
	expiredBefore := now.Add(-s.window).UnixMilli()

	var count int
	var startMs int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO rate_limit_windows (key, count, window_start)
		VALUES (?1, 1, ?2)
		ON CONFLICT (key) DO UPDATE SET
			count = CASE WHEN window_start <= ?3 THEN 1 ELSE count + 1 END,
			window_start = CASE WHEN window_start <= ?3 THEN ?2 ELSE window_start END
		RETURNING count, window_start
	`, key, nowMs, expiredBefore).Scan(&count, &startMs)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("increment window: %w", err)
	}
	return count, time.UnixMilli(startMs), nil
}

// Purge removes windows that expired before the cutoff
func (s *SQLiteStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM rate_limit_windows WHERE window_start < ?1`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge windows: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database file
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

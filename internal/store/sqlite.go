// Package store persists fetched bars in a SQLite cache and exports sweep
// records to Parquet.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"robosweep/internal/data"
	"robosweep/internal/domain"
)

// Compile-time interface check.
var _ data.BarCache = (*SQLiteCache)(nil)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS bars (
	symbol      TEXT    NOT NULL,
	interval    TEXT    NOT NULL,
	period      TEXT    NOT NULL,
	ts          INTEGER NOT NULL,
	open        REAL    NOT NULL,
	high        REAL    NOT NULL,
	low         REAL    NOT NULL,
	close       REAL    NOT NULL,
	volume      REAL    NOT NULL,
	trade_count INTEGER NOT NULL,
	vwap        REAL    NOT NULL,
	PRIMARY KEY (symbol, interval, period, ts)
);
CREATE TABLE IF NOT EXISTS fetches (
	symbol     TEXT    NOT NULL,
	interval   TEXT    NOT NULL,
	period     TEXT    NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (symbol, interval, period)
);`

// SQLiteCache implements data.BarCache backed by a SQLite database. Entries
// expire after the configured TTL; expired entries are treated as misses.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLiteCache opens (or creates) a SQLite database at dbPath, creates the
// cache schema, and returns a ready-to-use cache.
func NewSQLiteCache(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &SQLiteCache{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Get returns the cached bars for the key, reporting a miss when the entry
// is absent or older than the TTL.
func (c *SQLiteCache) Get(ctx context.Context, symbol, interval, period string) ([]domain.Bar, bool, error) {
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM fetches WHERE symbol = ? AND interval = ? AND period = ?`,
		symbol, interval, period,
	).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if c.ttl > 0 && c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return nil, false, nil
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT ts, open, high, low, close, volume, trade_count, vwap
		 FROM bars WHERE symbol = ? AND interval = ? AND period = ? ORDER BY ts`,
		symbol, interval, period,
	)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var bars []domain.Bar
	for rows.Next() {
		var ts int64
		b := domain.Bar{Symbol: symbol}
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &b.TradeCount, &b.VWAP); err != nil {
			return nil, false, err
		}
		b.Timestamp = time.Unix(ts, 0).UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(bars) == 0 {
		return nil, false, nil
	}
	return bars, true, nil
}

// Put replaces the cached bars for the key and refreshes its fetch time.
func (c *SQLiteCache) Put(ctx context.Context, symbol, interval, period string, bars []domain.Bar) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bars WHERE symbol = ? AND interval = ? AND period = ?`,
		symbol, interval, period,
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO bars (symbol, interval, period, ts, open, high, low, close, volume, trade_count, vwap)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, interval, period, b.Timestamp.Unix(),
			b.Open, b.High, b.Low, b.Close, b.Volume, b.TradeCount, b.VWAP); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO fetches (symbol, interval, period, fetched_at) VALUES (?, ?, ?, ?)`,
		symbol, interval, period, c.now().Unix(),
	); err != nil {
		return err
	}
	return tx.Commit()
}

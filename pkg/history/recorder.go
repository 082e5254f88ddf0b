// Package history records search queries for operational insight: which
// names users look for, how often exact search misses, and the slowest
// queries. Recording is best-effort and never blocks a search result.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Recorder logs search activity to a SQL database. The driver name decides
// the placeholder style, so sqlite3 and postgres both work.
type Recorder struct {
	db     *sql.DB
	driver string
}

// NewRecorder creates a recorder over an open database handle.
func NewRecorder(db *sql.DB, driver string) *Recorder {
	return &Recorder{db: db, driver: driver}
}

// InitSchema creates the history table when it does not exist.
func (r *Recorder) InitSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS search_history (
			query TEXT NOT NULL,
			mode TEXT NOT NULL,
			result_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at BIGINT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create search_history table: %w", err)
	}
	return nil
}

// Record logs one search. mode is "exact" or "suggest".
func (r *Recorder) Record(ctx context.Context, mode, query string, resultCount int, duration time.Duration) error {
	stmt := r.rebind(`
		INSERT INTO search_history (query, mode, result_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	// Epoch milliseconds scan identically under sqlite3 and postgres.
	_, err := r.db.ExecContext(ctx, stmt, query, mode, resultCount, duration.Milliseconds(), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// QueryStat is one aggregated history row.
type QueryStat struct {
	Query      string
	Searches   int
	LastSearch time.Time
}

// TopQueries returns the most frequent queries, most recent first among
// ties.
func (r *Recorder) TopQueries(ctx context.Context, limit int) ([]QueryStat, error) {
	if limit <= 0 {
		limit = 10
	}

	stmt := r.rebind(`
		SELECT query, COUNT(*) AS searches, MAX(created_at) AS last_search
		FROM search_history
		GROUP BY query
		ORDER BY searches DESC, last_search DESC
		LIMIT ?
	`)
	rows, err := r.db.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	stats := make([]QueryStat, 0, limit)
	for rows.Next() {
		var s QueryStat
		var lastMilli int64
		if err := rows.Scan(&s.Query, &s.Searches, &lastMilli); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		s.LastSearch = time.UnixMilli(lastMilli).UTC()
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return stats, nil
}

// rebind rewrites ? placeholders to $N for postgres.
func (r *Recorder) rebind(stmt string) string {
	if r.driver != "postgres" {
		return stmt
	}
	var b strings.Builder
	n := 0
	for _, ch := range stmt {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

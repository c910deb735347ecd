// Package sqlite provides a SQLite-backed implementation of
// analytics.Repository.
//
// WAL mode is enabled on Open so readers never block writers and vice
// versa — request handlers append events while an operator may be querying
// the log for an audit.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sellora/saree-storefront/internal/storefront/analytics"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps the Docker build on Alpine simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. The table is append-only: one
// immutable row per emitted analytics event.
const schema = `
CREATE TABLE IF NOT EXISTS analytics_events (
    -- Surrogate primary key, auto-incremented by SQLite.
    id           INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Per-event UUID assigned at emission time.
    event_id     TEXT NOT NULL,

    -- Event name as sent to the collector ("view_content", "add_to_cart").
    event_type   TEXT NOT NULL,

    -- JSON body exactly as delivered.
    payload      TEXT NOT NULL DEFAULT '{}',

    -- W3C trace_id (32 hex chars) from the active OTel span, for jumping
    -- from an event row to the request trace.
    trace_id     TEXT NOT NULL DEFAULT '',

    -- W3C span_id (16 hex chars).
    span_id      TEXT NOT NULL DEFAULT '',

    -- Wall-clock emission time (RFC3339 stored as TEXT, SQLite idiom).
    occurred_at  TEXT NOT NULL
);

-- Most common audit query: "all events of a type, newest first".
CREATE INDEX IF NOT EXISTS idx_analytics_events_type ON analytics_events(event_type, occurred_at);

-- Observability query: "which events belong to trace X".
CREATE INDEX IF NOT EXISTS idx_analytics_events_trace_id ON analytics_events(trace_id);
`

// Repository is the SQLite implementation of analytics.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the event log database at path and applies the
// schema. Missing parent directories are created.
func Open(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create event log dir %q: %w", dir, err)
		}
	}

	// The pure-Go driver takes its pragmas as DSN query parameters.
	// busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends one event row. Safe for concurrent use.
func (r *Repository) Save(ctx context.Context, entry *analytics.Entry) error {
	const q = `
		INSERT INTO analytics_events
			(event_id, event_type, payload, trace_id, span_id, occurred_at)
		VALUES
			(?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.ID,
		entry.Type,
		entry.Payload,
		entry.TraceID,
		entry.SpanID,
		entry.OccurredAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save %s event %q: %w", entry.Type, entry.ID, err)
	}
	return nil
}

// Recent returns up to limit most recent entries of the given type, newest
// first. Intended for audits and tests, not the hot path.
func (r *Repository) Recent(ctx context.Context, eventType string, limit int) ([]analytics.Entry, error) {
	const q = `
		SELECT event_id, event_type, payload, trace_id, span_id, occurred_at
		FROM   analytics_events
		WHERE  event_type = ?
		ORDER  BY occurred_at DESC, id DESC
		LIMIT  ?`

	rows, err := r.db.QueryContext(ctx, q, eventType, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s events: %w", eventType, err)
	}
	defer rows.Close()

	var entries []analytics.Entry
	for rows.Next() {
		var entry analytics.Entry
		var occurredAt string
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Payload, &entry.TraceID, &entry.SpanID, &occurredAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan event row: %w", err)
		}
		if entry.OccurredAt, err = parseRFC3339(occurredAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// parseRFC3339 turns an occurred_at TEXT column back into a time.Time. Reads
// must accept whatever precision Save wrote.
func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}

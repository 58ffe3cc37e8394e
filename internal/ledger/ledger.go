// Package ledger records what has been published so a re-run of the daily
// job does not post the same poster twice.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Memory opens a private in-memory ledger.
const Memory = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS posts (
    topic      TEXT NOT NULL,
    day        TEXT NOT NULL,
    platform   TEXT NOT NULL,
    remote_id  TEXT NOT NULL,
    url        TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    PRIMARY KEY (topic, day, platform)
);

CREATE TABLE IF NOT EXISTS indexed (
    url          TEXT NOT NULL,
    day          TEXT NOT NULL,
    submitted_at INTEGER NOT NULL,
    PRIMARY KEY (url, day)
);
`

// Entry is one published post.
type Entry struct {
	Topic    string
	Day      string
	Platform string
	RemoteID string
	URL      string
	Created  time.Time
}

// Ledger is a sqlite-backed publish log. It is safe for concurrent use.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger at path. Use Memory for a throwaway one.
func Open(path string) (*Ledger, error) {
	dsn := path
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if path == Memory {
		// Each connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect ledger: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error { return l.db.Close() }

// Posted reports whether topic was already published to platform on day.
func (l *Ledger) Posted(ctx context.Context, topic, day, platform string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE topic = ? AND day = ? AND platform = ?`,
		topic, day, platform).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return n > 0, nil
}

// Record stores e, replacing any earlier entry for the same topic, day
// and platform.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	created := e.Created
	if created.IsZero() {
		created = time.Now()
	}
	_, err := l.db.ExecContext(ctx, `
INSERT INTO posts (topic, day, platform, remote_id, url, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (topic, day, platform) DO UPDATE SET
    remote_id = excluded.remote_id,
    url = excluded.url,
    created_at = excluded.created_at`,
		e.Topic, e.Day, e.Platform, e.RemoteID, e.URL, created.UnixMilli())
	if err != nil {
		return fmt.Errorf("record post: %w", err)
	}
	return nil
}

// Day lists the posts of one day ordered by topic and platform.
func (l *Ledger) Day(ctx context.Context, day string) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
SELECT topic, day, platform, remote_id, url, created_at
FROM posts WHERE day = ? ORDER BY topic, platform`, day)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.Topic, &e.Day, &e.Platform, &e.RemoteID, &e.URL, &created); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		e.Created = time.UnixMilli(created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkIndexed records that url was submitted for indexing on day.
func (l *Ledger) MarkIndexed(ctx context.Context, url, day string, at time.Time) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO indexed (url, day, submitted_at) VALUES (?, ?, ?)`,
		url, day, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("mark indexed: %w", err)
	}
	return nil
}

// Unindexed returns the urls not yet submitted on day, in input order.
func (l *Ledger) Unindexed(ctx context.Context, urls []string, day string) ([]string, error) {
	stmt, err := l.db.PrepareContext(ctx, `SELECT COUNT(*) FROM indexed WHERE url = ? AND day = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare indexed lookup: %w", err)
	}
	defer stmt.Close()

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		var n int
		if err := stmt.QueryRowContext(ctx, u, day).Scan(&n); err != nil {
			return nil, fmt.Errorf("query indexed: %w", err)
		}
		if n == 0 {
			out = append(out, u)
		}
	}
	return out, nil
}

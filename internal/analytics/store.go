// Package analytics records privacy-conscious page views in sqlite.
//
// Raw client IPs are never stored: visitors are identified by a salted hash
// that changes whenever the process restarts.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Retention is how long page views are kept.
const Retention = 365 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS page_views (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_visitor TEXT NOT NULL,
	user_agent TEXT,
	path TEXT NOT NULL,
	viewed_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_page_views_viewed_at ON page_views(viewed_at);
`

// PageView is one recorded page render.
type PageView struct {
	ID            int64     `json:"id"`
	HashedVisitor string    `json:"hashed_visitor"`
	UserAgent     string    `json:"user_agent"`
	Path          string    `json:"path"`
	Timestamp     time.Time `json:"timestamp"`
}

// PageStat is the view count of a single path.
type PageStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type Stats struct {
	TotalViews     int64      `json:"total_views"`
	UniqueVisitors int64      `json:"unique_visitors"`
	ViewsToday     int64      `json:"views_today"`
	ViewsThisWeek  int64      `json:"views_this_week"`
	TopPages       []PageStat `json:"top_pages"`
	RecentViews    []PageView `json:"recent_views"`
}

type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens or creates the sqlite database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening analytics db %s: %w", path, err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating analytics schema: %w", err)
	}

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, salt: salt, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashVisitor returns the stored identity for a client IP. It is stable for
// the lifetime of the store.
func (s *Store) HashVisitor(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores a page view for the client IP.
func (s *Store) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_views (hashed_visitor, user_agent, path, viewed_at) VALUES (?, ?, ?, ?)`,
		s.HashVisitor(ip), userAgent, path, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording page view: %w", err)
	}
	return nil
}

// Cleanup deletes views recorded before cutoff and returns how many went.
func (s *Store) Cleanup(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM page_views WHERE viewed_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("cleaning up page views: %w", err)
	}
	return res.RowsAffected()
}

// Stats aggregates the recorded views.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	week := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalViews, `SELECT COUNT(*) FROM page_views`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_visitor) FROM page_views`, nil},
		{&stats.ViewsToday, `SELECT COUNT(*) FROM page_views WHERE viewed_at >= ?`, []any{today.Unix()}},
		{&stats.ViewsThisWeek, `SELECT COUNT(*) FROM page_views WHERE viewed_at >= ?`, []any{week.Unix()}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("counting page views: %w", err)
		}
	}

	var err error
	if stats.TopPages, err = s.topPages(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentViews, err = s.Recent(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) topPages(ctx context.Context, limit int) ([]PageStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM page_views
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top pages: %w", err)
	}
	defer rows.Close()

	var out []PageStat
	for rows.Next() {
		var ps PageStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			return nil, fmt.Errorf("scanning top pages: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// Recent returns the latest views, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]PageView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_visitor, COALESCE(user_agent, ''), path, viewed_at
		FROM page_views
		ORDER BY viewed_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent views: %w", err)
	}
	defer rows.Close()

	var out []PageView
	for rows.Next() {
		var (
			v  PageView
			ts int64
		)
		if err := rows.Scan(&v.ID, &v.HashedVisitor, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scanning recent views: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

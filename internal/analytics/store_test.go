package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func at(s *Store, ts time.Time) {
	s.now = func() time.Time { return ts }
}

func TestHashVisitor(t *testing.T) {
	s := openStore(t)

	a := s.HashVisitor("203.0.113.7")
	require.Len(t, a, 16)
	require.Equal(t, a, s.HashVisitor("203.0.113.7"))
	require.NotEqual(t, a, s.HashVisitor("203.0.113.8"))
	require.NotContains(t, a, "203")
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	at(s, now.Add(-30*24*time.Hour))
	require.NoError(t, s.Record(ctx, "1.1.1.1", "old", "/"))
	at(s, now.Add(-3*24*time.Hour))
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/projects/camcussion"))
	at(s, now.Add(-time.Hour))
	require.NoError(t, s.Record(ctx, "2.2.2.2", "ua", "/"))
	at(s, now)
	require.NoError(t, s.Record(ctx, "3.3.3.3", "ua", "/"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	require.EqualValues(t, 4, stats.TotalViews)
	require.EqualValues(t, 3, stats.UniqueVisitors)
	require.EqualValues(t, 2, stats.ViewsToday)
	require.EqualValues(t, 3, stats.ViewsThisWeek)
	require.Equal(t, []PageStat{
		{Path: "/", Views: 3},
		{Path: "/projects/camcussion", Views: 1},
	}, stats.TopPages)

	require.Len(t, stats.RecentViews, 4)
	require.Equal(t, now, stats.RecentViews[0].Timestamp)
	require.Equal(t, "old", stats.RecentViews[3].UserAgent)
}

func TestStatsEmpty(t *testing.T) {
	s := openStore(t)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.TotalViews)
	require.Empty(t, stats.TopPages)
	require.Empty(t, stats.RecentViews)
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	at(s, now.Add(-2*Retention))
	require.NoError(t, s.Record(ctx, "1.1.1.1", "", "/"))
	at(s, now)
	require.NoError(t, s.Record(ctx, "1.1.1.1", "", "/"))

	n, err := s.Cleanup(ctx, now.Add(-Retention))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, now, recent[0].Timestamp)
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analytics.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, "1.1.1.1", "", "/"))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
}

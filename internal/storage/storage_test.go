package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "portfolio.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIsStableAndOpaque(t *testing.T) {
	s := openTestStore(t)
	h := s.Hash("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.Hash("203.0.113.7"))
	assert.NotEqual(t, h, s.Hash("203.0.113.8"))
	assert.NotContains(t, h, "203")
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "curl", "/", now.Add(-time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "curl", "/interests", now.Add(-2*time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.2", "firefox", "/", now.Add(-3*24*time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.3", "safari", "/projects", now.Add(-30*24*time.Hour)))
	require.NoError(t, s.RecordUnlock(ctx, "session-a", now.Add(-time.Minute)))
	require.NoError(t, s.RecordUnlock(ctx, "session-b", now.Add(-10*24*time.Hour)))

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalVisitors)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(2), stats.VisitorsToday)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
	assert.Equal(t, int64(2), stats.TotalUnlocks)
	assert.Equal(t, int64(1), stats.UnlocksThisWeek)
	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathStat{Path: "/", Views: 2}, stats.TopPaths[0])
	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, "/", stats.RecentVisitors[0].Path)
	assert.Equal(t, s.Hash("10.0.0.1"), stats.RecentVisitors[0].HashedIP)
}

func TestCleanupOldVisitors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "", "/", now.Add(-400*24*time.Hour)))
	require.NoError(t, s.RecordVisit(ctx, "10.0.0.1", "", "/", now.Add(-24*time.Hour)))

	n, err := s.CleanupOldVisitors(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	visitors, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visitors, 1)
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.RecordUnlock(context.Background(), "x", time.Now()))
	stats, err := s.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUnlocks)
}

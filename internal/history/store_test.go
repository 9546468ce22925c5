package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoadSnapshot(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := Snapshot{
		Timestamp:       base,
		CommitHash:      "abc123",
		FileCount:       10,
		DependencyCount: 4,
		UnresolvedCount: 1,
		WarningCount:    0,
		ParseCacheHits:  3,
		LookupCount:     2,
		DurationMs:      120,
	}
	second := Snapshot{
		Timestamp:       base.Add(time.Hour),
		CommitHash:      "def456",
		FileCount:       12,
		DependencyCount: 6,
		UnresolvedCount: 2,
		WarningCount:    1,
		ParseCacheHits:  5,
		LookupCount:     3,
		DurationMs:      140,
	}

	require.NoError(t, store.SaveSnapshot(first))
	require.NoError(t, store.SaveSnapshot(second))

	loaded, err := store.LoadSnapshots(time.Time{})
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "abc123", loaded[0].CommitHash)
	assert.Equal(t, 4, loaded[0].DependencyCount)
	assert.Equal(t, "def456", loaded[1].CommitHash)
	assert.Equal(t, 6, loaded[1].DependencyCount)

	sinceSecond, err := store.LoadSnapshots(base.Add(30 * time.Minute))
	require.NoError(t, err)
	require.Len(t, sinceSecond, 1)
	assert.Equal(t, "def456", sinceSecond[0].CommitHash)
}

func TestStore_SaveSnapshot_OverwritesOnConflict(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveSnapshot(Snapshot{
		Timestamp:       ts,
		CommitHash:      "abc123",
		DependencyCount: 4,
	}))
	require.NoError(t, store.SaveSnapshot(Snapshot{
		Timestamp:       ts,
		CommitHash:      "abc123",
		DependencyCount: 9,
	}))

	loaded, err := store.LoadSnapshots(time.Time{})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 9, loaded[0].DependencyCount)
}

func TestStore_SaveSnapshot_RejectsZeroTimestamp(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	err = store.SaveSnapshot(Snapshot{})
	assert.Error(t, err)
}

func TestBuildTrendReport_ComputesDeltas(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	snapshots := []Snapshot{
		{Timestamp: base, DependencyCount: 10, UnresolvedCount: 2, WarningCount: 1},
		{Timestamp: base.Add(time.Hour), DependencyCount: 15, UnresolvedCount: 1, WarningCount: 2},
		{Timestamp: base.Add(2 * time.Hour), DependencyCount: 12, UnresolvedCount: 0, WarningCount: 0},
	}

	report, err := BuildTrendReport(snapshots, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, report.Points, 3)

	assert.Equal(t, 0, report.Points[0].DeltaDependencyCount)
	assert.Equal(t, 5, report.Points[1].DeltaDependencyCount)
	assert.InDelta(t, 50.0, report.Points[1].DependencyGrowthPct, 0.001)
	assert.Equal(t, -3, report.Points[2].DeltaDependencyCount)
	assert.Equal(t, 3, report.RunCount)
}

func TestBuildTrendReport_EmptyInput(t *testing.T) {
	_, err := BuildTrendReport(nil, time.Hour)
	assert.Error(t, err)
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/artem20051205/bady/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestGetMissing(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	rec := domain.NewUserRecord(42, time.Now())
	rec.FullName = "Тест Тестович"
	rec.Survey.Progress = 3
	rec.Survey.Scores[domain.CategoryRed] = 2
	rec.Tracking = domain.NewTrackingState()
	rec.Tracking.PutWeight("2025-03-01", 75.5)

	require.NoError(t, repo.Put(ctx, rec))

	got, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, "Тест Тестович", got.FullName)
	require.Equal(t, 3, got.Survey.Progress)
	require.Equal(t, 2, got.Survey.Scores[domain.CategoryRed])
	require.NotNil(t, got.Tracking)
	require.Equal(t, 75.5, got.Tracking.Weights["2025-03-01"])
	require.Equal(t, "2025-03-01", got.Tracking.LastEntryDate)
}

func TestPutOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	rec := domain.NewUserRecord(7, time.Now())
	require.NoError(t, repo.Put(ctx, rec))

	rec.Survey.Progress = 5
	require.NoError(t, repo.Put(ctx, rec))

	got, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 5, got.Survey.Progress)
}

func TestListIDsAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, repo.Put(ctx, domain.NewUserRecord(id, time.Now())))
	}

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, ids)

	require.NoError(t, repo.Delete(ctx, 2))
	// Deleting again is not an error.
	require.NoError(t, repo.Delete(ctx, 2))

	ids, err = repo.ListIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, ids)
}

package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/undoctl/internal/database"
	"github.com/jask/undoctl/internal/database/repository"
)

func newRepo(t *testing.T) *repository.NameRepo {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "names.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))
	return repository.NewNameRepo(db)
}

func names(t *testing.T, repo *repository.NameRepo) []string {
	t.Helper()
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Name
	}
	return out
}

func TestSoftDeleteAndRestore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newRepo(t)
	james, linda := database.NameID("James"), database.NameID("Linda")

	require.NoError(t, repo.SoftDelete(ctx, database.Now(), james, linda))
	got := names(t, repo)
	require.Len(t, got, 8)
	require.NotContains(t, got, "James")
	require.NotContains(t, got, "Linda")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, count)

	require.NoError(t, repo.Restore(ctx, james, linda))
	require.Equal(t, database.DefaultNames, names(t, repo))
}

func TestPurgeOnlyRemovesDeletedRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newRepo(t)
	john, mary := database.NameID("John"), database.NameID("Mary")

	require.NoError(t, repo.SoftDelete(ctx, database.Now(), john))
	n, err := repo.Purge(ctx, john, mary)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 9, count)
	require.Contains(t, names(t, repo), "Mary")

	require.NoError(t, repo.Restore(ctx, john))
	require.NotContains(t, names(t, repo), "John")
}

func TestPurgeDeletedClearsLeftovers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.SoftDelete(ctx, time.Now().UTC(), database.NameID("Robert"), database.NameID("William")))

	n, err := repo.PurgeDeleted(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	n, err = repo.PurgeDeleted(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Len(t, names(t, repo), 8)
}

func TestEmptyIDListsAreNoops(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.SoftDelete(ctx, database.Now()))
	require.NoError(t, repo.Restore(ctx))
	n, err := repo.Purge(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Len(t, names(t, repo), 10)
}

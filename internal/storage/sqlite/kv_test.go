package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *KVRepo {
	t.Helper()
	ctx := context.Background()

	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "bondtrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewKVRepo(db)
}

func TestKVRepo_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	_, ok := repo.Get(ctx, "missing")
	require.False(t, ok)

	require.NoError(t, repo.Set(ctx, "bondtrack_store::c::t", `{"history":[]}`))

	value, ok := repo.Get(ctx, "bondtrack_store::c::t")
	require.True(t, ok)
	require.Equal(t, `{"history":[]}`, value)
}

func TestKVRepo_UpsertOverwrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Set(ctx, "k", "first"))
	require.NoError(t, repo.Set(ctx, "k", "second"))

	value, ok := repo.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, "second", value)
}

func TestKVRepo_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Set(ctx, "k", "v"))
	require.NoError(t, repo.Delete(ctx, "k"))

	_, ok := repo.Get(ctx, "k")
	require.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, repo.Delete(ctx, "k"))
}

func TestKVRepo_KeysPrefix(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Set(ctx, "bondtrack_latest::a::x", "1"))
	require.NoError(t, repo.Set(ctx, "bondtrack_latest::b::y", "2"))
	require.NoError(t, repo.Set(ctx, "bondtrack_store::a::x", "3"))

	keys := repo.Keys(ctx, "bondtrack_latest::")
	require.Equal(t, []string{"bondtrack_latest::a::x", "bondtrack_latest::b::y"}, keys)
}

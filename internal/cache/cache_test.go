package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/cache"
)

// backends returns a fresh instance of every Cache implementation.
func backends(t *testing.T) map[string]cache.Cache {
	t.Helper()

	sq, err := cache.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]cache.Cache{
		"file":   cache.NewFileCache(filepath.Join(t.TempDir(), "creds")),
		"sqlite": sq,
		"memory": cache.NewMemoryCache(),
	}
}

func TestCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := c.Get(ctx, cache.KeyToken)
			require.NoError(t, err)
			assert.False(t, ok, "fresh cache should be empty")

			require.NoError(t, c.Set(ctx, cache.KeyToken, "t1"))
			v, ok, err := c.Get(ctx, cache.KeyToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "t1", v)

			require.NoError(t, c.Set(ctx, cache.KeyToken, "t2"))
			v, _, _ = c.Get(ctx, cache.KeyToken)
			assert.Equal(t, "t2", v, "set should overwrite")

			require.NoError(t, c.Delete(ctx, cache.KeyToken))
			_, ok, err = c.Get(ctx, cache.KeyToken)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestCache_DeleteMissingKey(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, c.Delete(ctx, cache.KeyUserID))
		})
	}
}

func TestCache_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, cache.KeyToken, "t1"))
			require.NoError(t, c.Set(ctx, cache.KeyUserID, "u1"))
			require.NoError(t, c.Set(ctx, cache.KeyRememberedEmail, "a@b.com"))

			require.NoError(t, c.Delete(ctx, cache.KeyToken))

			v, ok, _ := c.Get(ctx, cache.KeyUserID)
			assert.True(t, ok)
			assert.Equal(t, "u1", v)
			v, ok, _ = c.Get(ctx, cache.KeyRememberedEmail)
			assert.True(t, ok)
			assert.Equal(t, "a@b.com", v)
		})
	}
}

func TestCache_InvalidKey(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := c.Get(ctx, "../etc/passwd")
			assert.ErrorIs(t, err, cache.ErrInvalidKey)
			assert.ErrorIs(t, c.Set(ctx, "other", "x"), cache.ErrInvalidKey)
			assert.ErrorIs(t, c.Delete(ctx, ""), cache.ErrInvalidKey)
		})
	}
}

func TestFileCache_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "creds")

	require.NoError(t, cache.NewFileCache(dir).Set(ctx, cache.KeyToken, "t1"))

	v, ok, err := cache.NewFileCache(dir).Get(ctx, cache.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "t1", v)
}

func TestFileCache_Permissions(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "creds")
	c := cache.NewFileCache(dir)

	require.NoError(t, c.Set(ctx, cache.KeyToken, "secret"))

	info, err := os.Stat(filepath.Join(dir, cache.KeyToken))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())
}

func TestSQLiteCache_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := cache.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, cache.KeyRememberedEmail, "a@b.com"))
	require.NoError(t, c.Close())

	c, err = cache.OpenSQLite(path)
	require.NoError(t, err)
	defer c.Close()

	v, ok, err := c.Get(ctx, cache.KeyRememberedEmail)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", v)
}

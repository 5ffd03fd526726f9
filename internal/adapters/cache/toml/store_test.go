package toml

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTripAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "drill-cache.toml")
	store, err := NewStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	key := "https%3A%2F%2Famee.example;%2Fhome%2Fenergy;country=UK;true"
	require.NoError(t, store.Set(ctx, "AMEE", key, `{"uid":"abc123"}`))
	require.NoError(t, store.Set(ctx, "AMEE", key, `{"uid":"def456"}`))
	require.NoError(t, store.Set(ctx, "other", key, "ignored"))

	reopened, err := NewStore(path)
	require.NoError(t, err)

	got, ok, err := reopened.Get(ctx, "AMEE", key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"uid":"def456"}`, got)

	_, ok, err = reopened.Get(ctx, "AMEE", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(cacheFileMode), info.Mode().Perm())
}

func TestStoreGetOnMissingFile(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	_, ok, err := store.Get(context.Background(), "AMEE", "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "drill-cache.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 99\n"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "AMEE", "k")
	assert.ErrorContains(t, err, "unsupported drill cache schema version 99")
}

func TestStoreConcurrentWritersKeepAllEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "drill-cache.toml")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store, err := NewStore(path)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, store.Set(ctx, "AMEE", "key-"+strconv.Itoa(i), strconv.Itoa(i)))
		}(i)
	}
	wg.Wait()

	store, err := NewStore(path)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, ok, err := store.Get(ctx, "AMEE", "key-"+strconv.Itoa(i))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, strconv.Itoa(i), got)
	}
}

func TestNewStoreRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewStore("")
	assert.EqualError(t, err, "drill cache path is empty")
}

package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.ErrorIs(t, err, domain.ErrIOFailure)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_RequiresDir(t *testing.T) {
	_, err := NewStore("")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, DBFile)
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	tempDir := t.TempDir()

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), "rfc1.txt", []byte("kept")))
	require.NoError(t, first.Close())

	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	data, ok, err := second.Get(context.Background(), "rfc1.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", string(data))

	var versions int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestStore_GetMissing(t *testing.T) {
	store := setupTestStore(t)

	data, ok, err := store.Get(context.Background(), "rfc-index.json")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestStore_PutAndReplace(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.Put(ctx, "rfc2616.txt", []byte("v1")))
	require.NoError(t, store.Put(ctx, "rfc2616.txt", []byte("v2")))
	require.NoError(t, store.Put(ctx, "rfc-index.json", []byte("{}")))

	data, ok, err := store.Get(ctx, "rfc2616.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", string(data))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rfc-index.json", "rfc2616.txt"}, keys)
}

func TestStore_PutEmptyKey(t *testing.T) {
	store := setupTestStore(t)

	err := store.Put(context.Background(), "", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestStore_ConcurrentPuts(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Put(ctx, "rfc791.txt", []byte("INTERNET PROTOCOL")))
		}()
	}
	wg.Wait()

	data, ok, err := store.Get(ctx, "rfc791.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "INTERNET PROTOCOL", string(data))
}

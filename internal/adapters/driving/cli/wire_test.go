package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rfcdocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/rfcdocs/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

func TestWire_FileBackend(t *testing.T) {
	cache := t.TempDir()

	app, err := wire(Options{CacheDir: cache, ConfigDir: t.TempDir()})
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.RFC)
	assert.NotNil(t, app.Settings)
	assert.Equal(t, cache, app.CacheDir)
	assert.Equal(t, domain.CacheBackendFile, app.Backend)
	assert.FileExists(t, filepath.Join(cache, domain.DefaultLogFile))
}

func TestWire_SQLiteBackend(t *testing.T) {
	cache := t.TempDir()
	configDir := t.TempDir()

	store, err := file.NewConfigStore(configDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("cache.backend", "sqlite"))

	app, err := wire(Options{CacheDir: cache, ConfigDir: configDir})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, domain.CacheBackendSQLite, app.Backend)
	assert.FileExists(t, filepath.Join(cache, sqlite.DBFile))
}

func TestWire_MemoryBackendWritesNothing(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "unused")
	configDir := t.TempDir()

	store, err := file.NewConfigStore(configDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("cache.backend", "memory"))

	app, err := wire(Options{CacheDir: cache, ConfigDir: configDir})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, domain.CacheBackendMemory, app.Backend)
	_, err = os.Stat(cache)
	assert.True(t, os.IsNotExist(err))
}

func TestWire_InvalidRemoteURL(t *testing.T) {
	configDir := t.TempDir()

	store, err := file.NewConfigStore(configDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("remote.index_url", "ftp://example.test/index"))

	_, err = wire(Options{CacheDir: t.TempDir(), ConfigDir: configDir})

	assert.Error(t, err)
}

func TestWire_BadLogLevelFallsBack(t *testing.T) {
	configDir := t.TempDir()

	store, err := file.NewConfigStore(configDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("log.level", "chatty"))

	app, err := wire(Options{CacheDir: t.TempDir(), ConfigDir: configDir})
	require.NoError(t, err)
	app.Close()
}

func TestOpenBlobStore_UnknownBackend(t *testing.T) {
	_, err := openBlobStore("floppy", t.TempDir())
	assert.Error(t, err)
}

func TestOpenBlobStore_RoundTrip(t *testing.T) {
	for _, backend := range []domain.CacheBackend{
		domain.CacheBackendFile,
		domain.CacheBackendSQLite,
		domain.CacheBackendMemory,
	} {
		t.Run(backend.String(), func(t *testing.T) {
			store, err := openBlobStore(backend, t.TempDir())
			require.NoError(t, err)
			defer store.Close()

			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "rfc1.txt", []byte("Host Software\n")))

			data, ok, err := store.Get(ctx, "rfc1.txt")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "Host Software\n", string(data))
		})
	}
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rfcdocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/rfcdocs/internal/core/domain"
	"github.com/custodia-labs/rfcdocs/internal/core/services"
)

func TestSettingsCmd_Shows(t *testing.T) {
	cleanup := setupTestServices(&mockRFCService{})
	defer cleanup()

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("cache.backend", "sqlite"))

	oldSettings := settingsService
	settingsService = services.NewSettingsService(store, func(string) (string, bool) { return "", false })
	defer func() { settingsService = oldSettings }()

	out, err := executeRoot(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Backend:     sqlite")
	assert.Contains(t, out, "https://www.rfc-editor.org/rfc-index.txt")
	assert.Contains(t, out, "Retries:     3")
	assert.Contains(t, out, "Level:       info")
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices(&mockRFCService{})
	defer cleanup()

	oldSettings := settingsService
	settingsService = nil
	defer func() { settingsService = oldSettings }()

	_, err := executeRoot(t, "settings")

	assert.Error(t, err)
}

func useSettingsStore(t *testing.T, dir string) func() {
	t.Helper()
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)

	oldSettings := settingsService
	settingsService = services.NewSettingsService(store, func(string) (string, bool) { return "", false })
	return func() { settingsService = oldSettings }
}

func TestSettingsSetCmd_Persists(t *testing.T) {
	cleanup := setupTestServices(&mockRFCService{})
	defer cleanup()
	dir := t.TempDir()
	restore := useSettingsStore(t, dir)
	defer restore()

	out, err := executeRoot(t, "settings", "set", "remote.retries", "6")

	require.NoError(t, err)
	assert.Contains(t, out, "Set remote.retries = 6")

	reloaded, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	got, err := services.NewSettingsService(reloaded, func(string) (string, bool) { return "", false }).Get()
	require.NoError(t, err)
	assert.Equal(t, 6, got.Remote.Retries)

	out, err = executeRoot(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Retries:     6")
}

func TestSettingsSetCmd_RejectsInvalid(t *testing.T) {
	cleanup := setupTestServices(&mockRFCService{})
	defer cleanup()
	restore := useSettingsStore(t, t.TempDir())
	defer restore()

	_, err := executeRoot(t, "settings", "set", "cache.backend", "redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_argument")

	_, err = executeRoot(t, "settings", "set", "no.such.key", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
	assert.Contains(t, err.Error(), "cache.backend")

	_, err = executeRoot(t, "settings", "set", "log.level")
	assert.Error(t, err)
}

func TestSettingsResetCmd_RestoresDefaults(t *testing.T) {
	cleanup := setupTestServices(&mockRFCService{})
	defer cleanup()
	dir := t.TempDir()
	restore := useSettingsStore(t, dir)
	defer restore()

	_, err := executeRoot(t, "settings", "set", "cache.backend", "memory")
	require.NoError(t, err)

	out, err := executeRoot(t, "settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings reset to defaults")

	reloaded, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	got, err := services.NewSettingsService(reloaded, func(string) (string, bool) { return "", false }).Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *got)
}

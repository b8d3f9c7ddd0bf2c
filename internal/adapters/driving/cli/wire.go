package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/rfcdocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/rfcdocs/internal/adapters/driven/storage/disk"
	"github.com/custodia-labs/rfcdocs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rfcdocs/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/rfcdocs/internal/connectors/rfceditor"
	"github.com/custodia-labs/rfcdocs/internal/core/domain"
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driven"
	"github.com/custodia-labs/rfcdocs/internal/core/services"
	"github.com/custodia-labs/rfcdocs/internal/logger"
)

// Options are the command-line overrides applied on top of stored settings.
type Options struct {
	CacheDir  string
	ConfigDir string
	Verbose   bool
}

// App is the wired service graph.
type App struct {
	Settings *services.SettingsService
	RFC      *services.RFCService
	CacheDir string
	Backend  domain.CacheBackend

	closers []io.Closer
}

// Close releases the blob store and log file.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logger.Warn("closing: %v", err)
		}
	}
	a.closers = nil
}

// wire constructs the service graph from stored settings and opts.
func wire(opts Options) (*App, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settingsSvc := services.NewSettingsService(configStore, nil)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	dir := settings.Cache.Dir
	if opts.CacheDir != "" {
		dir = opts.CacheDir
	}
	if dir == "" {
		dir, err = disk.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("%w: resolving cache dir: %v", domain.ErrIOFailure, err)
		}
	}

	app := &App{
		Settings: settingsSvc,
		CacheDir: dir,
		Backend:  settings.Cache.Backend,
	}

	if err := configureLogging(app, settings.Log, opts.Verbose); err != nil {
		return nil, err
	}

	store, err := openBlobStore(settings.Cache.Backend, dir)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.closers = append(app.closers, store)

	remote, err := rfceditor.NewClient(rfceditor.ConfigFromSettings(settings.Remote))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("configuring remote: %w", err)
	}

	index := services.NewIndexManager(store, remote)
	fetcher := services.NewDocumentFetcher(store, remote)
	app.RFC = services.NewRFCService(index, fetcher)

	logger.Debug("cache %s (%s backend), index %s", dir, settings.Cache.Backend, remote.IndexLocator())
	return app, nil
}

// configureLogging applies the log level and adds the file sink.
// Stdout is never used; it carries MCP stdio framing.
func configureLogging(app *App, cfg domain.LogSettings, verbose bool) error {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warn("%v, using info", err)
		level = logger.LevelInfo
	}
	logger.SetLevel(level)
	if verbose {
		logger.SetVerbose(true)
	}

	if cfg.File == "" || app.Backend == domain.CacheBackendMemory {
		logger.SetOutput(os.Stderr)
		return nil
	}

	if err := os.MkdirAll(app.CacheDir, 0700); err != nil {
		return fmt.Errorf("%w: creating cache dir: %v", domain.ErrIOFailure, err)
	}
	f, err := os.OpenFile(filepath.Join(app.CacheDir, cfg.File), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("%w: opening log file: %v", domain.ErrIOFailure, err)
	}

	logger.SetOutput(io.MultiWriter(os.Stderr, f))
	app.closers = append(app.closers, closerFunc(func() error {
		logger.SetOutput(os.Stderr)
		return f.Close()
	}))
	return nil
}

func openBlobStore(backend domain.CacheBackend, dir string) (driven.BlobStore, error) {
	switch backend {
	case domain.CacheBackendFile, "":
		store, err := disk.NewBlobStore(dir)
		if err != nil {
			return nil, fmt.Errorf("opening file cache: %w", err)
		}
		return store, nil
	case domain.CacheBackendSQLite:
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite cache: %w", err)
		}
		return store, nil
	case domain.CacheBackendMemory:
		return memory.NewBlobStore(), nil
	default:
		return nil, errors.New("unknown cache backend: " + backend.String())
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

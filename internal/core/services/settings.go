package services

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driven"
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driving"
	"github.com/custodia-labs/rfcdocs/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCacheDir          = "cache.dir"
	keyCacheBackend      = "cache.backend"
	keyRemoteIndexURL    = "remote.index_url"
	keyRemoteDocumentURL = "remote.document_url"
	keyRemoteTimeout     = "remote.timeout_seconds"
	keyRemoteRate        = "remote.requests_per_second"
	keyRemoteRetries     = "remote.retries"
	keyLogLevel          = "log.level"
	keyLogFile           = "log.file"
)

// Environment variables that override stored settings.
const (
	EnvCacheDir = "RFCDOCS_CACHE_DIR"
	EnvLogLevel = "LOG_LEVEL"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// lookupEnv defaults to os.LookupEnv when nil.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Get retrieves current application settings.
// Environment overrides win over stored values.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := s.stored()

	if dir, ok := s.lookupEnv(EnvCacheDir); ok && dir != "" {
		settings.Cache.Dir = dir
	}
	if level, ok := s.lookupEnv(EnvLogLevel); ok && level != "" {
		settings.Log.Level = level
	}

	return settings, nil
}

// stored reads persisted settings with defaults applied and no environment overrides.
func (s *SettingsService) stored() *domain.Settings {
	defaults := domain.DefaultSettings()

	return &domain.Settings{
		Cache: domain.CacheSettings{
			Dir:     s.getString(keyCacheDir, defaults.Cache.Dir),
			Backend: s.getBackend(defaults.Cache.Backend),
		},
		Remote: domain.RemoteSettings{
			IndexURL:          s.getString(keyRemoteIndexURL, defaults.Remote.IndexURL),
			DocumentURL:       s.getString(keyRemoteDocumentURL, defaults.Remote.DocumentURL),
			Timeout:           s.getSeconds(keyRemoteTimeout, defaults.Remote.Timeout),
			RequestsPerSecond: s.getFloat(keyRemoteRate, defaults.Remote.RequestsPerSecond),
			Retries:           s.getInt(keyRemoteRetries, defaults.Remote.Retries),
		},
		Log: domain.LogSettings{
			Level: s.getString(keyLogLevel, defaults.Log.Level),
			File:  s.getString(keyLogFile, defaults.Log.File),
		},
	}
}

// Keys lists the setting keys accepted by Update.
func (s *SettingsService) Keys() []string {
	return []string{
		keyCacheDir,
		keyCacheBackend,
		keyRemoteIndexURL,
		keyRemoteDocumentURL,
		keyRemoteTimeout,
		keyRemoteRate,
		keyRemoteRetries,
		keyLogLevel,
		keyLogFile,
	}
}

// Update validates value for key and persists it alongside the other stored settings.
// Environment overrides are never written back.
func (s *SettingsService) Update(key, value string) error {
	settings := s.stored()
	value = strings.TrimSpace(value)

	switch key {
	case keyCacheDir:
		settings.Cache.Dir = value
	case keyCacheBackend:
		backend := domain.CacheBackend(value)
		if !backend.IsValid() {
			return domain.NewError(domain.KindInvalidArgument, "%s must be one of file, sqlite, memory, got %q", key, value)
		}
		settings.Cache.Backend = backend
	case keyRemoteIndexURL:
		if err := validateURL(key, value); err != nil {
			return err
		}
		settings.Remote.IndexURL = value
	case keyRemoteDocumentURL:
		if err := validateURL(key, value); err != nil {
			return err
		}
		if !strings.Contains(value, "{number}") {
			return domain.NewError(domain.KindInvalidArgument, "%s must contain {number}", key)
		}
		settings.Remote.DocumentURL = value
	case keyRemoteTimeout:
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		settings.Remote.Timeout = time.Duration(n) * time.Second
	case keyRemoteRate:
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate <= 0 {
			return domain.NewError(domain.KindInvalidArgument, "%s must be a positive number, got %q", key, value)
		}
		settings.Remote.RequestsPerSecond = rate
	case keyRemoteRetries:
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		settings.Remote.Retries = n
	case keyLogLevel:
		if _, err := logger.ParseLevel(value); err != nil {
			return domain.NewError(domain.KindInvalidArgument, "%s: %v", key, err)
		}
		settings.Log.Level = strings.ToLower(value)
	case keyLogFile:
		settings.Log.File = value
	default:
		return domain.NewError(domain.KindInvalidArgument, "unknown setting %q", key)
	}

	return s.Save(settings)
}

func validateURL(key, value string) error {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.NewError(domain.KindInvalidArgument, "%s must be an http or https URL, got %q", key, value)
	}
	return nil
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, domain.NewError(domain.KindInvalidArgument, "%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if !settings.Cache.Backend.IsValid() {
		return fmt.Errorf("%w: cache backend %q", domain.ErrInvalidArgument, settings.Cache.Backend)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyCacheDir, settings.Cache.Dir},
		{keyCacheBackend, settings.Cache.Backend.String()},
		{keyRemoteIndexURL, settings.Remote.IndexURL},
		{keyRemoteDocumentURL, settings.Remote.DocumentURL},
		{keyRemoteTimeout, int(settings.Remote.Timeout / time.Second)},
		{keyRemoteRate, settings.Remote.RequestsPerSecond},
		{keyRemoteRetries, settings.Remote.Retries},
		{keyLogLevel, settings.Log.Level},
		{keyLogFile, settings.Log.File},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("%w: save %s: %v", domain.ErrIOFailure, v.key, err)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}

	// TOML integers are parsed as int64, floats as float64
	var val float64
	switch v := raw.(type) {
	case float64:
		val = v
	case int64:
		val = float64(v)
	case int:
		val = float64(v)
	default:
		return defaultVal
	}
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.CacheBackend) domain.CacheBackend {
	val := s.configStore.GetString(keyCacheBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.CacheBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

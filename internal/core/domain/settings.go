package domain

import "time"

// Default settings values.
const (
	DefaultIndexURL          = "https://www.rfc-editor.org/rfc-index.txt"
	DefaultDocumentURL       = "https://www.rfc-editor.org/rfc/rfc{number}.txt"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultRetries           = 3
	DefaultMaxLines          = 200
	DefaultLogLevel          = "info"
	DefaultLogFile           = "rfcdocs.log"
)

// CacheBackend selects the storage adapter behind the cache.
type CacheBackend string

// Available cache backends.
const (
	// CacheBackendFile stores one file per key under the cache directory.
	CacheBackendFile CacheBackend = "file"

	// CacheBackendSQLite stores all keys in a single database file.
	CacheBackendSQLite CacheBackend = "sqlite"

	// CacheBackendMemory keeps everything in process memory.
	CacheBackendMemory CacheBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheBackendFile, CacheBackendSQLite, CacheBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// CacheSettings holds local cache configuration.
type CacheSettings struct {
	// Dir is the cache root directory.
	Dir string

	// Backend selects the storage adapter.
	Backend CacheBackend
}

// RemoteSettings holds configuration for the RFC Editor source.
type RemoteSettings struct {
	// IndexURL is where the plain-text RFC index is downloaded from.
	IndexURL string

	// DocumentURL is a template containing {number}.
	DocumentURL string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64

	// Retries is the number of attempts for transient failures.
	Retries int
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File is the log file name inside the cache dir. Empty disables the file sink.
	File string
}

// Settings holds application configuration.
type Settings struct {
	Cache  CacheSettings
	Remote RemoteSettings
	Log    LogSettings
}

// DefaultSettings returns settings with sensible defaults.
// The cache directory is left empty and resolved by the caller.
func DefaultSettings() Settings {
	return Settings{
		Cache: CacheSettings{
			Backend: CacheBackendFile,
		},
		Remote: RemoteSettings{
			IndexURL:          DefaultIndexURL,
			DocumentURL:       DefaultDocumentURL,
			Timeout:           DefaultTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Retries:           DefaultRetries,
		},
		Log: LogSettings{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

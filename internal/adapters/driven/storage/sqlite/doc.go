// Package sqlite provides a SQLite-backed driven.BlobStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. All cache keys live in one table of a
// single database file, which suits filesystems where many small files are costly.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory and embedded at compile time.
//
// # Data Location
//
// The database is stored at <cache dir>/cache.db.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode; each Put is a single upsert statement.
package sqlite

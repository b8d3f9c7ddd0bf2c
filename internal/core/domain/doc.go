// Package domain defines the core business entities for rfcdocs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - IndexEntry: One RFC number and its title
//   - IndexSnapshot: The full cached RFC index with its fetch time
//   - Window: A line-bounded view of a document
//   - DocumentPage: The paginated result returned to callers
//   - Error: The caller-facing error with its Kind
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

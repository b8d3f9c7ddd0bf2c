package driven

import "context"

// BlobStore persists opaque blobs under flat string keys.
//
// Implementations must be safe for concurrent use. Put replaces the whole
// value atomically so readers never observe a partial write. Failures wrap
// domain.ErrIOFailure.
type BlobStore interface {
	// Get returns the blob stored under key.
	// The boolean is false when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put creates or replaces the blob stored under key.
	Put(ctx context.Context, key string, data []byte) error

	// Keys returns every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases resources held by the store.
	Close() error
}

package disk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// BlobStore stores blobs as files under a root directory.
type BlobStore struct {
	root string
}

// NewBlobStore creates a blob store rooted at dir.
// If dir is empty, defaults to the per-user cache directory.
// The directory is created on first write.
func NewBlobStore(dir string) (*BlobStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &BlobStore{root: dir}, nil
}

// DefaultDir returns the default cache root, e.g. ~/.cache/rfcdocs.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", fmt.Errorf("%w: resolving cache directory: %v", domain.ErrIOFailure, err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "rfcdocs"), nil
}

// Root returns the cache root directory.
func (s *BlobStore) Root() string {
	return s.root
}

// Get reads the file for key.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: reading %s: %v", domain.ErrIOFailure, key, err)
	}
	return data, true, nil
}

// Put atomically replaces the file for key.
func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureRoot(); err != nil {
		return err
	}

	if err := atomicwriter.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("%w: writing %s: %v", domain.ErrIOFailure, key, err)
	}
	return nil
}

// Keys lists the files under the root. A root that does not exist yet is empty.
// Hidden files, such as in-flight temporaries, are skipped.
func (s *BlobStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: listing %s: %v", domain.ErrIOFailure, s.root, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}

// Close is a no-op; files are closed after every operation.
func (s *BlobStore) Close() error {
	return nil
}

func (s *BlobStore) ensureRoot() error {
	if err := os.MkdirAll(s.root, dirPerm); err != nil {
		return fmt.Errorf("%w: creating cache directory %s: %v", domain.ErrIOFailure, s.root, err)
	}
	return nil
}

func (s *BlobStore) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: invalid blob key %q", domain.ErrInvalidArgument, key)
	}
	return filepath.Join(s.root, key), nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driven"
	"github.com/custodia-labs/rfcdocs/internal/logger"
)

// DocumentKey returns the blob key for the text of RFC number.
func DocumentKey(number int) string {
	return fmt.Sprintf("rfc%d.txt", number)
}

var documentKeyPattern = regexp.MustCompile(`^rfc\d+\.txt$`)

// DocumentFetcher is a write-through cache of RFC texts.
// Cached texts are never invalidated; RFCs do not change once published.
type DocumentFetcher struct {
	store  driven.BlobStore
	remote driven.RemoteSource
	group  singleflight.Group
}

// NewDocumentFetcher creates a new document fetcher.
func NewDocumentFetcher(store driven.BlobStore, remote driven.RemoteSource) *DocumentFetcher {
	return &DocumentFetcher{
		store:  store,
		remote: remote,
	}
}

// Text returns the full text of RFC number.
func (f *DocumentFetcher) Text(ctx context.Context, number int) (string, error) {
	if number <= 0 {
		return "", fmt.Errorf("%w: rfc number must be positive, got %d", domain.ErrInvalidArgument, number)
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: rfc %d: %v", domain.ErrFetchFailure, number, err)
	}

	key := DocumentKey(number)
	data, ok, err := f.store.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("reading cached %s, fetching remotely: %v", key, err)
	case ok && len(data) > 0:
		logger.Debug("cache hit for %s", key)
		return string(data), nil
	}

	text, joined, err := shared(ctx, &f.group, key, func(ctx context.Context) (string, error) {
		return f.fetch(ctx, number)
	})
	if err != nil {
		return "", err
	}
	if joined {
		logger.Debug("shared download of %s", key)
	}
	return text, nil
}

func (f *DocumentFetcher) fetch(ctx context.Context, number int) (string, error) {
	logger.Debug("cache miss for rfc %d, downloading", number)
	data, err := f.remote.FetchDocument(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrFetchFailure) {
			return "", fmt.Errorf("rfc %d: %w", number, err)
		}
		return "", fmt.Errorf("%w: rfc %d: %v", domain.ErrFetchFailure, number, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: rfc %d: empty response body", domain.ErrFetchFailure, number)
	}

	if err := f.store.Put(ctx, DocumentKey(number), data); err != nil {
		logger.Warn("caching rfc %d failed: %v", number, err)
	}
	return string(data), nil
}

// CachedCount returns how many RFC texts are held in the store.
func (f *DocumentFetcher) CachedCount(ctx context.Context) (int, error) {
	keys, err := f.store.Keys(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, k := range keys {
		if documentKeyPattern.MatchString(k) {
			n++
		}
	}
	return n, nil
}

package driving

import (
	"context"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// RFCService is the query facade over the RFC cache and index.
// Every error it returns is a *domain.Error.
type RFCService interface {
	// ListCount returns the number of entries in the current index snapshot.
	ListCount(ctx context.Context) (int, error)

	// FetchDocument returns a line window of the RFC identified by id.
	// id must be a positive integer, optionally prefixed with "RFC".
	FetchDocument(ctx context.Context, id string, startLine, maxLines int) (*domain.DocumentPage, error)

	// Search returns index entries whose title contains keyword, ignoring case.
	Search(ctx context.Context, keyword string) ([]domain.IndexEntry, error)

	// RefreshIndex forces a remote download of the index.
	RefreshIndex(ctx context.Context) (*domain.IndexStatus, error)

	// IndexStatus describes the snapshot currently served.
	IndexStatus(ctx context.Context) (*domain.IndexStatus, error)
}

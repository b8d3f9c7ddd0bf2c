package driven

import "context"

// RemoteSource fetches authoritative RFC data.
//
// FetchDocument returns an error wrapping domain.ErrNotFound when the
// remote source reports the document does not exist. All other failures
// wrap domain.ErrFetchFailure.
type RemoteSource interface {
	// FetchIndex downloads the raw plain-text RFC index.
	FetchIndex(ctx context.Context) ([]byte, error)

	// FetchDocument downloads the raw text of one RFC.
	FetchDocument(ctx context.Context, number int) ([]byte, error)

	// IndexLocator returns the locator the index is fetched from.
	IndexLocator() string
}

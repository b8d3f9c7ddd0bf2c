package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// sampleIndex mirrors the layout of rfc-index.txt.
const sampleIndex = `
~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~

                             RFC INDEX
                           -------------

(CREATED ON: 03/04/2025.)

This file contains citations for all RFCs in numeric order.

~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~

                                RFC INDEX
                                ---------

0001 Host Software. S. Crocker. April 1969. (Format: TXT, HTML) (Status:
     UNKNOWN) (DOI: 10.17487/RFC0001)

0002 Host software. B. Duvall. April 1969. (Format: TXT, PDF, HTML)
     (Status: UNKNOWN) (DOI: 10.17487/RFC0002)

0014 Not Issued.

1149 Automated Directory and Database Update. B. Kahle. April 1990.
     (Format: TXT) (Status: INFORMATIONAL) (DOI: 10.17487/RFC1149)

9748 The Latest RFC. Some Author. March 2025. (Format: TXT, HTML) (Status:
     PROPOSED STANDARD) (DOI: 10.17487/RFC9748)
`

// numberedText returns a document of n lines "line 1".."line n".
func numberedText(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String()
}

// mockRemote implements driven.RemoteSource for testing.
type mockRemote struct {
	mu        sync.Mutex
	index     []byte
	indexErr  error
	docs      map[int]string
	docErr    error
	indexHits atomic.Int32
	docHits   atomic.Int32
	gate      chan struct{}
	indexGate chan struct{}
}

func newMockRemote() *mockRemote {
	return &mockRemote{
		index: []byte(sampleIndex),
		docs:  map[int]string{},
	}
}

func (m *mockRemote) FetchIndex(ctx context.Context) ([]byte, error) {
	m.indexHits.Add(1)
	if m.indexGate != nil {
		select {
		case <-m.indexGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexErr != nil {
		return nil, m.indexErr
	}
	return m.index, nil
}

func (m *mockRemote) FetchDocument(ctx context.Context, number int) ([]byte, error) {
	m.docHits.Add(1)
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docErr != nil {
		return nil, m.docErr
	}
	text, ok := m.docs[number]
	if !ok {
		return nil, fmt.Errorf("HTTP 404: %w", domain.ErrNotFound)
	}
	return []byte(text), nil
}

func (m *mockRemote) IndexLocator() string {
	return "https://example.test/rfc-index.txt"
}

func (m *mockRemote) setIndexErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexErr = err
}

// failingStore implements driven.BlobStore and fails every call.
type failingStore struct{}

var errDiskFull = fmt.Errorf("disk full: %w", domain.ErrIOFailure)

func (failingStore) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, errDiskFull
}

func (failingStore) Put(_ context.Context, _ string, _ []byte) error {
	return errDiskFull
}

func (failingStore) Keys(_ context.Context) ([]string, error) {
	return nil, errDiskFull
}

func (failingStore) Close() error {
	return nil
}

var errNetwork = errors.New("connection reset by peer")

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driven"
	"github.com/custodia-labs/rfcdocs/internal/logger"
)

// IndexKey is the blob key of the persisted index snapshot.
const IndexKey = "rfc-index.json"

// IndexManager owns the RFC index snapshot.
//
// The snapshot is loaded lazily from the blob store, or downloaded when the
// store has none, and then cached indefinitely. Only Refresh downloads a
// snapshot that is already present.
type IndexManager struct {
	store  driven.BlobStore
	remote driven.RemoteSource
	now    func() time.Time

	mu       sync.RWMutex
	snapshot *domain.IndexSnapshot
	group    singleflight.Group
}

// NewIndexManager creates a new index manager.
func NewIndexManager(store driven.BlobStore, remote driven.RemoteSource) *IndexManager {
	return &IndexManager{
		store:  store,
		remote: remote,
		now:    time.Now,
	}
}

// Snapshot returns the current snapshot, loading or downloading it on first use.
func (m *IndexManager) Snapshot(ctx context.Context) (*domain.IndexSnapshot, error) {
	if s := m.current(); s != nil {
		return s, nil
	}

	snap, _, err := shared(ctx, &m.group, "load", func(ctx context.Context) (*domain.IndexSnapshot, error) {
		if s := m.current(); s != nil {
			return s, nil
		}

		cached, err := m.readCache(ctx)
		if err != nil {
			logger.Warn("reading cached index: %v", err)
		}
		if cached != nil {
			logger.Debug("loaded cached index: %d entries fetched %s", cached.Len(), cached.FetchedAt.Format(time.RFC3339))
			m.set(cached)
			return cached, nil
		}

		return m.download(ctx)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Refresh downloads a new snapshot and replaces the current one.
// When the download fails and a snapshot exists, the stale snapshot is returned.
func (m *IndexManager) Refresh(ctx context.Context) (*domain.IndexSnapshot, error) {
	snap, _, err := shared(ctx, &m.group, "refresh", func(ctx context.Context) (*domain.IndexSnapshot, error) {
		fresh, err := m.download(ctx)
		if err == nil {
			return fresh, nil
		}

		prior := m.current()
		if prior == nil {
			cached, cacheErr := m.readCache(ctx)
			if cacheErr != nil {
				logger.Warn("reading cached index: %v", cacheErr)
			}
			prior = cached
		}
		if prior == nil {
			return nil, err
		}

		logger.Warn("index refresh failed, serving snapshot from %s: %v", prior.FetchedAt.Format(time.RFC3339), err)
		m.set(prior)
		return prior, nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Count returns the number of entries in the snapshot.
func (m *IndexManager) Count(ctx context.Context) (int, error) {
	s, err := m.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return s.Len(), nil
}

// Search returns entries whose title contains keyword, ignoring case,
// by ascending number. No match is an empty slice.
func (m *IndexManager) Search(ctx context.Context, keyword string) ([]domain.IndexEntry, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: keyword must not be empty", domain.ErrInvalidArgument)
	}

	s, err := m.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Filter(keyword), nil
}

// Lookup returns the entry for number.
func (m *IndexManager) Lookup(ctx context.Context, number int) (domain.IndexEntry, bool, error) {
	s, err := m.Snapshot(ctx)
	if err != nil {
		return domain.IndexEntry{}, false, err
	}
	e, ok := s.Lookup(number)
	return e, ok, nil
}

func (m *IndexManager) current() *domain.IndexSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

func (m *IndexManager) set(s *domain.IndexSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = s
}

// readCache returns the persisted snapshot, or nil when there is none
// or it is not structurally valid.
func (m *IndexManager) readCache(ctx context.Context) (*domain.IndexSnapshot, error) {
	data, ok, err := m.store.Get(ctx, IndexKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var s domain.IndexSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("ignoring corrupt cached index: %v", err)
		return nil, nil
	}
	s.Reindex()
	if s.Len() == 0 {
		logger.Warn("ignoring empty cached index")
		return nil, nil
	}
	return &s, nil
}

// download fetches, parses and persists a new snapshot.
func (m *IndexManager) download(ctx context.Context) (*domain.IndexSnapshot, error) {
	logger.Info("downloading RFC index from %s", m.remote.IndexLocator())

	data, err := m.remote.FetchIndex(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrFetchFailure) {
			return nil, fmt.Errorf("fetching index: %w", err)
		}
		return nil, fmt.Errorf("%w: fetching index: %v", domain.ErrFetchFailure, err)
	}

	entries, skipped, err := ParseIndex(data)
	if err != nil {
		return nil, err
	}

	s := domain.NewIndexSnapshot(entries, m.now().UTC(), m.remote.IndexLocator())
	logger.Info("parsed RFC index: %d entries, %d lines skipped", s.Len(), skipped)

	encoded, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding index: %w", err)
	}
	if err := m.store.Put(ctx, IndexKey, encoded); err != nil {
		logger.Warn("persisting index failed, serving from memory: %v", err)
	}

	m.set(s)
	return s, nil
}

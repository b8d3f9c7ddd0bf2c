package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driving"
	"github.com/custodia-labs/rfcdocs/internal/logger"
)

// Ensure RFCService implements the interface.
var _ driving.RFCService = (*RFCService)(nil)

// RFCService is the query facade over the index manager and document fetcher.
// It validates caller input and converts every failure to a *domain.Error.
type RFCService struct {
	index   *IndexManager
	fetcher *DocumentFetcher
}

// NewRFCService creates a new RFC service.
func NewRFCService(index *IndexManager, fetcher *DocumentFetcher) *RFCService {
	return &RFCService{
		index:   index,
		fetcher: fetcher,
	}
}

// ParseNumber parses a caller-supplied RFC identifier such as "1149",
// " 0791 " or "RFC 2616".
func ParseNumber(id string) (int, error) {
	s := strings.TrimSpace(id)
	if len(s) >= 3 && strings.EqualFold(s[:3], "rfc") {
		s = strings.TrimSpace(s[3:])
	}
	if s == "" {
		return 0, fmt.Errorf("%w: rfc number is required", domain.ErrInvalidArgument)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: rfc number must be a positive integer, got %q", domain.ErrInvalidArgument, id)
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: rfc number must be a positive integer, got %q", domain.ErrInvalidArgument, id)
	}
	return n, nil
}

// ListCount returns the number of entries in the current index snapshot.
func (s *RFCService) ListCount(ctx context.Context) (int, error) {
	n, err := s.index.Count(ctx)
	if err != nil {
		return 0, domain.AsError(err)
	}
	return n, nil
}

// FetchDocument returns a line window of the RFC identified by id.
func (s *RFCService) FetchDocument(
	ctx context.Context,
	id string,
	startLine, maxLines int,
) (*domain.DocumentPage, error) {
	number, err := ParseNumber(id)
	if err != nil {
		return nil, domain.AsError(err)
	}
	if startLine < 1 {
		return nil, domain.NewError(domain.KindInvalidArgument, "start_line must be 1 or greater, got %d", startLine)
	}
	if maxLines < 1 {
		return nil, domain.NewError(domain.KindInvalidArgument, "max_lines must be 1 or greater, got %d", maxLines)
	}

	var title string
	entry, ok, err := s.index.Lookup(ctx, number)
	switch {
	case err != nil:
		logger.Warn("index unavailable, fetching rfc %d without title: %v", number, err)
	case !ok:
		return nil, domain.NewError(domain.KindNotFound, "RFC %d not found in index", number)
	default:
		title = entry.Title
	}

	text, err := s.fetcher.Text(ctx, number)
	if err != nil {
		return nil, domain.AsError(err)
	}

	window, err := Paginate(text, startLine, maxLines)
	if err != nil {
		return nil, domain.AsError(err)
	}

	content := strings.Join(window.Lines, "\n")
	return &domain.DocumentPage{
		Number:        number,
		Title:         title,
		Content:       content,
		StartLine:     window.StartLine,
		EndLine:       window.EndLine(),
		MaxLines:      maxLines,
		ReturnedCount: window.ReturnedCount,
		TotalLines:    window.TotalLines,
		HasMore:       window.HasMore,
		NextStartLine: window.NextStartLine(),
		PageInfo:      ExtractPageInfo(content),
	}, nil
}

// Search returns index entries whose title contains keyword.
func (s *RFCService) Search(ctx context.Context, keyword string) ([]domain.IndexEntry, error) {
	results, err := s.index.Search(ctx, keyword)
	if err != nil {
		return nil, domain.AsError(err)
	}
	return results, nil
}

// RefreshIndex forces a remote download of the index.
func (s *RFCService) RefreshIndex(ctx context.Context) (*domain.IndexStatus, error) {
	snap, err := s.index.Refresh(ctx)
	if err != nil {
		return nil, domain.AsError(err)
	}
	return s.statusOf(ctx, snap), nil
}

// IndexStatus describes the snapshot currently served.
func (s *RFCService) IndexStatus(ctx context.Context) (*domain.IndexStatus, error) {
	snap, err := s.index.Snapshot(ctx)
	if err != nil {
		return nil, domain.AsError(err)
	}
	return s.statusOf(ctx, snap), nil
}

// statusOf reports a cached document count of zero when the store cannot be listed.
func (s *RFCService) statusOf(ctx context.Context, snap *domain.IndexSnapshot) *domain.IndexStatus {
	cached, err := s.fetcher.CachedCount(ctx)
	if err != nil {
		logger.Warn("counting cached documents: %v", err)
	}
	return &domain.IndexStatus{
		Count:           snap.Len(),
		FetchedAt:       snap.FetchedAt,
		Source:          snap.Source,
		CachedDocuments: cached,
	}
}

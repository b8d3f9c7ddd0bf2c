package mcp

import (
	"context"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// mockRFCService is a mock implementation of driving.RFCService.
type mockRFCService struct {
	count   int
	page    *domain.DocumentPage
	results []domain.IndexEntry
	status  *domain.IndexStatus
	err     error

	// Arguments of the last FetchDocument call.
	gotID        string
	gotStartLine int
	gotMaxLines  int
	gotKeyword   string
}

func (m *mockRFCService) ListCount(_ context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockRFCService) FetchDocument(
	_ context.Context,
	id string,
	startLine, maxLines int,
) (*domain.DocumentPage, error) {
	m.gotID = id
	m.gotStartLine = startLine
	m.gotMaxLines = maxLines
	return m.page, m.err
}

func (m *mockRFCService) Search(_ context.Context, keyword string) ([]domain.IndexEntry, error) {
	m.gotKeyword = keyword
	return m.results, m.err
}

func (m *mockRFCService) RefreshIndex(_ context.Context) (*domain.IndexStatus, error) {
	return m.status, m.err
}

func (m *mockRFCService) IndexStatus(_ context.Context) (*domain.IndexStatus, error) {
	return m.status, m.err
}

package cli

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

	gotID        string
	gotStartLine int
	gotMaxLines  int
	refreshed    bool
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

func (m *mockRFCService) Search(_ context.Context, _ string) ([]domain.IndexEntry, error) {
	return m.results, m.err
}

func (m *mockRFCService) RefreshIndex(_ context.Context) (*domain.IndexStatus, error) {
	m.refreshed = true
	return m.status, m.err
}

func (m *mockRFCService) IndexStatus(_ context.Context) (*domain.IndexStatus, error) {
	return m.status, m.err
}

// setupTestServices injects svc and resets command flags.
// The returned func restores the previous state.
func setupTestServices(svc *mockRFCService) func() {
	oldService := rfcService
	rfcService = svc

	getStartLine = 1
	getMaxLines = domain.DefaultMaxLines
	getJSON = false
	searchJSON = false

	return func() {
		rfcService = oldService
		rootCmd.SetArgs(nil)
	}
}

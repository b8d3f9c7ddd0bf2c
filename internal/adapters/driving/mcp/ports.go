package mcp

import (
	"github.com/custodia-labs/rfcdocs/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// RFC answers index and document queries.
	RFC driving.RFCService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.RFC == nil {
		return ErrMissingRFCService
	}
	return nil
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for RFC resources.
	uriScheme = "rfc://"

	// indexURI names the static index status resource.
	indexURI = uriScheme + "index"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource describing the index snapshot.
	s.server.AddResource(&mcp.Resource{
		URI:         indexURI,
		Name:        "rfc-index",
		Description: "Status of the cached RFC index",
		MIMEType:    "application/json",
	}, s.handleIndexResource)

	// Template for full RFC texts.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "{number}",
		Name:        "rfc-text",
		Description: "Full plain text of an RFC",
		MIMEType:    "text/plain",
	}, s.handleDocumentResource)
}

// handleIndexResource returns the status of the index snapshot as JSON.
func (s *Server) handleIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	status, err := s.ports.RFC.IndexStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index status: %w", err)
	}

	data, err := json.MarshalIndent(toIndexStatusOutput(status), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling index status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource returns the full text of one RFC.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract the number from URI: rfc://{number}
	id := extractNumber(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.RFC.FetchDocument(ctx, id, 1, math.MaxInt32)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidArgument) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("reading rfc %s: %w", id, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     page.Content,
		}},
	}, nil
}

// extractNumber extracts the RFC number from a URI like rfc://{number}.
func extractNumber(uri string) string {
	if !strings.HasPrefix(uri, uriScheme) {
		return ""
	}

	id := strings.TrimPrefix(uri, uriScheme)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

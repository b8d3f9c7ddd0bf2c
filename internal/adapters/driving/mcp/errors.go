// Package mcp provides an MCP (Model Context Protocol) server adapter for rfcdocs.
// It lets AI assistants count, search and read IETF RFCs through the local cache.
package mcp

import (
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// ErrMissingRFCService is returned when the RFC service is not provided.
var ErrMissingRFCService = errors.New("mcp: rfc service is required")

// ToolError is the structured error carried by a failed tool call.
type ToolError struct {
	Kind      string `json:"kind" jsonschema:"one of invalid_argument, not_found, fetch_failure, io_failure"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable" jsonschema:"whether repeating the same call may succeed"`
}

// toolFailure classifies err and builds an IsError result whose text
// content reads "kind: message". The structured form goes in the output.
func toolFailure(err error) (*mcp.CallToolResult, *ToolError) {
	var de *domain.Error
	if !errors.As(domain.AsError(err), &de) {
		de = domain.NewError(domain.KindOf(err), "%v", err)
	}

	res := &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: de.Error()}},
	}
	return res, &ToolError{
		Kind:      de.Kind.String(),
		Message:   de.Message,
		Retryable: de.Kind.Retryable(),
	}
}

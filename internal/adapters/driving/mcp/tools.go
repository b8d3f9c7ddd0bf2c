package mcp

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// Tool names.
const (
	ToolListDocsNumber = "list_docs_number"
	ToolGetDoc         = "get_doc"
	ToolSearchByKey    = "search_rfc_by_keyword"
	ToolRefreshIndex   = "refresh_rfc_index"
)

// CountInput is the input schema for the list_docs_number tool.
type CountInput struct{}

// CountOutput is the output schema for the list_docs_number tool.
type CountOutput struct {
	Count int        `json:"count"`
	Error *ToolError `json:"error,omitempty"`
}

// GetDocInput is the input schema for the get_doc tool.
type GetDocInput struct {
	Number    any  `json:"number" jsonschema:"the RFC number, as a string or integer"`
	StartLine *int `json:"start_line,omitempty" jsonschema:"1-indexed line to start from (default 1)"`
	MaxLines  *int `json:"max_lines,omitempty" jsonschema:"maximum number of lines to return (default 200)"`
}

// PageInfoOutput reports "[Page N]" footers seen in the returned lines.
type PageInfoOutput struct {
	PagesFound bool `json:"pages_found"`
	FirstPage  int  `json:"first_page,omitempty"`
	LastPage   int  `json:"last_page,omitempty"`
}

// GetDocOutput is the output schema for the get_doc tool.
type GetDocOutput struct {
	Number         int            `json:"number"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	StartLine      int            `json:"start_line"`
	EndLine        int            `json:"end_line"`
	MaxLines       int            `json:"max_lines"`
	ReturnedCount  int            `json:"returned_count"`
	TotalLines     int            `json:"total_lines"`
	HasMore        bool           `json:"has_more"`
	NextChunkStart int            `json:"next_chunk_start,omitempty"`
	PageInfo       PageInfoOutput `json:"page_info"`
	Error          *ToolError     `json:"error,omitempty"`
}

// SearchInput is the input schema for the search_rfc_by_keyword tool.
type SearchInput struct {
	Keyword string `json:"keyword" jsonschema:"case-insensitive substring to look for in RFC titles"`
}

// SearchOutput is the output schema for the search_rfc_by_keyword tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
	Error   *ToolError           `json:"error,omitempty"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// RefreshInput is the input schema for the refresh_rfc_index tool.
type RefreshInput struct{}

// IndexStatusOutput describes the index snapshot being served.
type IndexStatusOutput struct {
	Count           int        `json:"count"`
	FetchedAt       string     `json:"fetched_at"`
	Source          string     `json:"source"`
	CachedDocuments int        `json:"cached_documents"`
	Error           *ToolError `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolListDocsNumber,
		Description: "Get the total number of RFCs in the index",
	}, s.handleListDocsNumber)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolGetDoc,
		Description: "Get a window of lines from an RFC by number. " +
			"Use next_chunk_start as start_line to continue reading when has_more is true",
	}, s.handleGetDoc)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolSearchByKey,
		Description: "Search RFC titles for a keyword, case-insensitive",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolRefreshIndex,
		Description: "Download the latest RFC index from the RFC Editor",
	}, s.handleRefreshIndex)
}

// handleListDocsNumber handles the list_docs_number tool invocation.
func (s *Server) handleListDocsNumber(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CountInput,
) (*mcp.CallToolResult, CountOutput, error) {
	done := trace(ToolListDocsNumber)

	count, err := s.ports.RFC.ListCount(ctx)
	done(err)
	if err != nil {
		res, te := toolFailure(err)
		return res, CountOutput{Error: te}, nil
	}

	return nil, CountOutput{Count: count}, nil
}

// handleGetDoc handles the get_doc tool invocation.
func (s *Server) handleGetDoc(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocInput,
) (*mcp.CallToolResult, GetDocOutput, error) {
	done := trace(ToolGetDoc)

	id, err := numberArg(input.Number)
	if err != nil {
		done(err)
		res, te := toolFailure(err)
		return res, GetDocOutput{Error: te}, nil
	}

	startLine := 1
	if input.StartLine != nil {
		startLine = *input.StartLine
	}
	maxLines := domain.DefaultMaxLines
	if input.MaxLines != nil {
		maxLines = *input.MaxLines
	}

	page, err := s.ports.RFC.FetchDocument(ctx, id, startLine, maxLines)
	done(err)
	if err != nil {
		res, te := toolFailure(err)
		return res, GetDocOutput{Error: te}, nil
	}

	return nil, toGetDocOutput(page), nil
}

// handleSearch handles the search_rfc_by_keyword tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	done := trace(ToolSearchByKey)

	results, err := s.ports.RFC.Search(ctx, input.Keyword)
	done(err)
	if err != nil {
		res, te := toolFailure(err)
		return res, SearchOutput{Results: []SearchResultOutput{}, Error: te}, nil
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			Number: results[i].Number,
			Title:  results[i].Title,
		}
	}

	return nil, output, nil
}

// handleRefreshIndex handles the refresh_rfc_index tool invocation.
func (s *Server) handleRefreshIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RefreshInput,
) (*mcp.CallToolResult, IndexStatusOutput, error) {
	done := trace(ToolRefreshIndex)

	status, err := s.ports.RFC.RefreshIndex(ctx)
	done(err)
	if err != nil {
		res, te := toolFailure(err)
		return res, IndexStatusOutput{Error: te}, nil
	}

	return nil, toIndexStatusOutput(status), nil
}

// numberArg normalises the loosely typed number argument to an id string.
// JSON numbers arrive as float64 and must be whole.
func numberArg(v any) (string, error) {
	switch n := v.(type) {
	case nil:
		return "", domain.NewError(domain.KindInvalidArgument, "number is required")
	case string:
		return n, nil
	case float64:
		if n != math.Trunc(n) || n < 1 || n > math.MaxInt32 {
			return "", domain.NewError(domain.KindInvalidArgument, "number must be a positive integer, got %v", n)
		}
		return strconv.FormatInt(int64(n), 10), nil
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case json.Number:
		return n.String(), nil
	default:
		return "", domain.NewError(domain.KindInvalidArgument, "number must be a string or integer, got %T", v)
	}
}

func toGetDocOutput(page *domain.DocumentPage) GetDocOutput {
	return GetDocOutput{
		Number:         page.Number,
		Title:          page.Title,
		Content:        page.Content,
		StartLine:      page.StartLine,
		EndLine:        page.EndLine,
		MaxLines:       page.MaxLines,
		ReturnedCount:  page.ReturnedCount,
		TotalLines:     page.TotalLines,
		HasMore:        page.HasMore,
		NextChunkStart: page.NextStartLine,
		PageInfo: PageInfoOutput{
			PagesFound: page.PageInfo.Found,
			FirstPage:  page.PageInfo.First,
			LastPage:   page.PageInfo.Last,
		},
	}
}

func toIndexStatusOutput(status *domain.IndexStatus) IndexStatusOutput {
	return IndexStatusOutput{
		Count:           status.Count,
		FetchedAt:       status.FetchedAt.UTC().Format(time.RFC3339),
		Source:          status.Source,
		CachedDocuments: status.CachedDocuments,
	}
}

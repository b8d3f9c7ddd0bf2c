// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The index manager, document fetcher and pagination engine are composed
// by RFCService, the query facade that the MCP server and CLI call.
package services

// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/triage/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Triage MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Triage Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: get_hotspots ---
	s.AddTool(mcp.NewTool("get_hotspots",
		mcp.WithDescription("Rank files by composite hotspot score (complexity, centrality, churn)."),
		mcp.WithString("repo_path", mcp.Description("Path to the repository (defaults to the server's configured repository).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetHotspots)

	// --- 2. Tool: get_issues ---
	s.AddTool(mcp.NewTool("get_issues",
		mcp.WithDescription("Prioritize analyzer findings by severity and hotspot score."),
		mcp.WithString("repo_path", mcp.Description("Path to the repository.")),
		mcp.WithString("report", mcp.Description("Path to a JSON findings report produced by an external analyzer.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetIssues)

	// --- 3. Tool: query_code ---
	s.AddTool(mcp.NewTool("query_code",
		mcp.WithDescription("Search indexed code chunks and return ranked hits with line citations."),
		mcp.WithString("query", mcp.Description("Free-text query; matched against lower-cased word-boundary tokens."), mcp.Required()),
		mcp.WithString("repo_path", mcp.Description("Path to the repository.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleQueryCode)

	return s
}

// StartMCPServer starts the Triage MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}

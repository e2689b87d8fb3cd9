// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerOption customizes the MCP server.
type ServerOption func(*toolHandler)

// WithClock sets the clock read at the start of every calendar request.
func WithClock(now func() time.Time) ServerOption {
	return func(h *toolHandler) {
		h.now = now
	}
}

// NewMCPServer initializes and configures the gitlocalstats MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, opts ...ServerOption) *server.MCPServer {
	s := server.NewMCPServer(
		"Git Local Stats Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	// --- 1. Tool: get_contribution_calendar ---
	s.AddTool(mcp.NewTool("get_contribution_calendar",
		mcp.WithDescription("Count one author's commits per day over the last six months across every known local repository."),
		mcp.WithString("email", mcp.Description("Author email to filter commits by (defaults to the configured email).")),
		mcp.WithString("repos_file", mcp.Description("Path to the repository list file (defaults to ~/.gogitlocalstats).")),
	), h.handleGetContributionCalendar)

	// --- 2. Tool: list_repositories ---
	s.AddTool(mcp.NewTool("list_repositories",
		mcp.WithDescription("List the local repositories that contribution stats are collected from."),
		mcp.WithString("repos_file", mcp.Description("Path to the repository list file.")),
	), h.handleListRepositories)

	return s
}

// StartMCPServer starts the gitlocalstats MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

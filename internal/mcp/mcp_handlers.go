package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/huangsam/gitlocalstats/core"
	"github.com/huangsam/gitlocalstats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	now     func() time.Time // Read on every calendar request
}

// configFor applies the arguments shared by every tool to a copy of the base config.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repos_file", ""); p != "" {
		abs, err := filepath.Abs(contract.ExpandHome(p))
		if err != nil {
			return nil, fmt.Errorf("invalid repos_file: %w", err)
		}
		cfg.ReposFile = abs
	}
	return cfg, nil
}

func (h *toolHandler) handleGetContributionCalendar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.Now = h.now()
	if email := request.GetString("email", ""); email != "" {
		cfg.Author = email
	}
	if err := cfg.RequireAuthor(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	output, _, err := core.GetStatsResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(output.Result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRepositories(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.Prune = false // Listing never rewrites the file

	repos, err := core.ListRepositories(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(repos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Branchlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Branchlens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_branch_authors ---
	s.AddTool(mcp.NewTool("get_branch_authors",
		mcp.WithDescription("Attribute branch-exclusive commits to their authors with line-level diff stats."),
		mcp.WithString("repo_url", mcp.Description("GitHub repository URL or owner/repo shorthand."), mcp.Required()),
		mcp.WithString("branch", mcp.Description("Branch to analyze. Defaults to the repository's default branch.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of authors returned.")),
		mcp.WithString("details", mcp.Description("Fetch per-commit diff stats (yes/no). Slower but adds line counts."), mcp.Enum("yes", "no")),
	), h.handleGetBranchAuthors)

	// --- 2. Tool: get_branch_commits ---
	s.AddTool(mcp.NewTool("get_branch_commits",
		mcp.WithDescription("List the commits that belong to a branch's own history, excluding those inherited from the default branch."),
		mcp.WithString("repo_url", mcp.Description("GitHub repository URL or owner/repo shorthand."), mcp.Required()),
		mcp.WithString("branch", mcp.Description("Branch to analyze. Defaults to the repository's default branch.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of commits returned.")),
	), h.handleGetBranchCommits)

	return s
}

// StartMCPServer starts the Branchlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

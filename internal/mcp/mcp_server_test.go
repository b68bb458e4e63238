package mcp_test

import (
	"context"
	"testing"

	"github.com/gamsoft/branchlens/internal/contract"
	mcp_internal "github.com/gamsoft/branchlens/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		PerPage:     100,
		MaxPages:    10,
		RateLimit:   5,
		Workers:     2,
		ResultLimit: 25,
	}

	// Create a dummy manager, though we shouldn't hit it because we test validation errors
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("get_branch_authors invalid repo_url", func(t *testing.T) {
		tool := s.GetTool("get_branch_authors")
		require.NotNil(t, tool, "Tool get_branch_authors should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_branch_authors",
				Arguments: map[string]any{
					"repo_url": "https://gitlab.com/octocat/hello-world", // Wrong host
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid repository parameters")
	})

	t.Run("get_branch_authors invalid details", func(t *testing.T) {
		tool := s.GetTool("get_branch_authors")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_branch_authors",
				Arguments: map[string]any{
					"repo_url": "octocat/hello-world",
					"details":  "maybe", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid details parameter")
	})

	t.Run("get_branch_commits invalid repo_url", func(t *testing.T) {
		tool := s.GetTool("get_branch_commits")
		require.NotNil(t, tool, "Tool get_branch_commits should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_branch_commits",
				Arguments: map[string]any{
					"repo_url": "not-a-repo",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid repository parameters")
	})
}

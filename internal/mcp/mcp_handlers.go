package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gamsoft/branchlens/core"
	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/internal/ghsource"
	"github.com/gamsoft/branchlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// configForRequest clones the base config and applies the request's repository
// and branch parameters.
func (h *toolHandler) configForRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	repoURL := request.GetString("repo_url", "")
	owner, repo, branch, err := contract.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	cfg.Owner = owner
	cfg.Repo = repo
	cfg.Branch = branch

	if b := request.GetString("branch", ""); b != "" {
		cfg.Branch = b
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	return cfg, nil
}

func (h *toolHandler) handleGetBranchAuthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository parameters: %v", err)), nil
	}
	if d := request.GetString("details", ""); d != "" {
		details, err := contract.ParseBoolString(d)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid details parameter: %v", err)), nil
		}
		cfg.Details = details
	}

	source := ghsource.NewClient(cfg)
	analysis, err := core.AnalyzeBranch(core.WithSuppressHeader(ctx), cfg, source, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	enriched := schema.EnrichAuthors(analysis, cfg.ResultLimit, 0)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBranchCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository parameters: %v", err)), nil
	}

	source := ghsource.NewClient(cfg)
	analysis, err := core.AnalyzeBranch(core.WithSuppressHeader(ctx), cfg, source, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	commits := analysis.Exclusive
	if cfg.ResultLimit > 0 && len(commits) > cfg.ResultLimit {
		commits = commits[:cfg.ResultLimit]
	}

	listing := struct {
		Owner            string                `json:"owner"`
		Repo             string                `json:"repo"`
		Branch           string                `json:"branch"`
		DefaultBranch    string                `json:"default_branch"`
		Commits          []schema.CommitRecord `json:"commits"`
		TotalExclusive   int                   `json:"total_exclusive"`
		LineageConfirmed bool                  `json:"lineage_confirmed"`
		InputComplete    bool                  `json:"input_complete"`
	}{
		Owner:            analysis.Owner,
		Repo:             analysis.Repo,
		Branch:           analysis.Branch,
		DefaultBranch:    analysis.DefaultBranch,
		Commits:          commits,
		TotalExclusive:   len(analysis.Exclusive),
		LineageConfirmed: analysis.LineageConfirmed,
		InputComplete:    analysis.InputComplete,
	}

	jsonData, _ := json.MarshalIndent(listing, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

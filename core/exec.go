package core

import (
	"context"
	"time"

	"github.com/gamsoft/branchlens/internal/contract"
	"github.com/gamsoft/branchlens/internal/ghsource"
	"github.com/gamsoft/branchlens/internal/outwriter"
)

// ExecuteBranchAuthors runs the attribution pipeline and prints per-author results.
// It serves as the main entry point for the 'authors' command.
func ExecuteBranchAuthors(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	source := ghsource.NewClient(cfg)
	analysis, err := AnalyzeBranch(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteAuthors(analysis, cfg, time.Since(start))
}

// ExecuteBranchCommits runs the attribution pipeline and prints the exclusive
// commit listing. It serves as the main entry point for the 'commits' command.
func ExecuteBranchCommits(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	source := ghsource.NewClient(cfg)
	analysis, err := AnalyzeBranch(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCommits(analysis, cfg, time.Since(start))
}

// ExecuteBranchFiles runs the attribution pipeline and prints per-author file
// rankings. File data requires per-commit detail fetches, so this always runs
// with details enabled regardless of the flag.
func ExecuteBranchFiles(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	cfg = cfg.Clone()
	cfg.Details = true
	source := ghsource.NewClient(cfg)
	analysis, err := AnalyzeBranch(ctx, cfg, source, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteFiles(analysis, cfg, time.Since(start))
}
